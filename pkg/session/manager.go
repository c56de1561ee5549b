package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dukex/agentflow/pkg/log"
)

// Manager owns the open sessions.
type Manager struct {
	cfg    Config
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
}

func NewManager(cfg Config) *Manager {
	return &Manager{
		cfg:      cfg.withDefaults(),
		logger:   log.WithModule("session-manager"),
		sessions: make(map[string]*Session),
	}
}

// Create opens a new session on the landing page.
func (m *Manager) Create(ctx context.Context) *Session {
	s := New(ctx, m.cfg)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.order = append(m.order, s.ID())
	total := len(m.sessions)
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "Session created", "session_id", s.ID(), "open_sessions", total)

	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	return s, nil
}

// IDs returns the open session ids in creation order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.order)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// Close removes a session and cancels its pending actions.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.order = slices.DeleteFunc(m.order, func(open string) bool { return open == id })
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	s.Close(ctx)
	m.logger.InfoContext(ctx, "Session closed", "session_id", id)

	return nil
}

// CloseAll closes every open session.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	sessions := m.sessions
	order := m.order
	m.sessions = make(map[string]*Session)
	m.order = nil
	m.mu.Unlock()

	for _, id := range order {
		sessions[id].Close(ctx)
	}

	m.logger.InfoContext(ctx, "All sessions closed", "count", len(sessions))
}

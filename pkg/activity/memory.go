package activity

import (
	"context"
	"sync"

	"github.com/dukex/agentflow/pkg/events"
)

// Memory is a fixed size ring of activities.
type Memory struct {
	mu     sync.RWMutex
	items  []events.Activity
	next   int
	size   int
	closed bool
}

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Memory{items: make([]events.Activity, capacity)}
}

func (m *Memory) Append(_ context.Context, activity events.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.items[m.next] = activity
	m.next = (m.next + 1) % len(m.items)

	if m.size < len(m.items) {
		m.size++
	}

	return nil
}

func (m *Memory) Recent(_ context.Context, n int) ([]events.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	if n <= 0 || n > m.size {
		n = m.size
	}

	recent := make([]events.Activity, 0, n)

	for i := 1; i <= n; i++ {
		idx := (m.next - i + len(m.items)) % len(m.items)
		recent = append(recent, m.items[idx])
	}

	return recent, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = nil
	m.size = 0

	return nil
}

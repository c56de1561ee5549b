package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dukex/agentflow/pkg/catalog"
	"github.com/dukex/agentflow/pkg/events"
	"github.com/dukex/agentflow/pkg/models"
	"github.com/dukex/agentflow/pkg/routes"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Activity
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, event events.Activity) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]events.EventType, len(p.events))
	for i, event := range p.events {
		types[i] = event.Type
	}

	return types
}

func newTestSession(t *testing.T, cat *catalog.Catalog) (*Session, *clockwork.FakeClock, *recordingPublisher) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(testStart)
	publisher := &recordingPublisher{}

	s := New(t.Context(), Config{Catalog: cat, Clock: clock, Publisher: publisher})
	t.Cleanup(func() { s.Close(context.Background()) })

	return s, clock, publisher
}

func toastMessages(s *Session) []string {
	toasts := s.Toasts()

	messages := make([]string, len(toasts))
	for i, toast := range toasts {
		messages[i] = toast.Message
	}

	return messages
}

func lastToast(t *testing.T, s *Session) models.Toast {
	t.Helper()

	toasts := s.Toasts()
	require.NotEmpty(t, toasts)

	return toasts[len(toasts)-1]
}

func TestNew_StartsOnLanding(t *testing.T) {
	s, _, publisher := newTestSession(t, nil)

	view := s.View()
	assert.Equal(t, routes.PageLanding, view.Route.Page)
	assert.Equal(t, models.TestRunIdle, view.AgentBuilder.TestRun)
	assert.Empty(t, view.Toasts)
	require.Len(t, view.WorkflowBuilder.Steps, 1)
	assert.Equal(t, models.StepTypeTrigger, view.WorkflowBuilder.Steps[0].Type)
	assert.Equal(t, []events.EventType{events.SessionCreatedEvent}, publisher.types())
}

func TestNavigate(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	route, err := s.Navigate(t.Context(), "/templates")
	require.NoError(t, err)
	assert.Equal(t, routes.PageTemplates, route.Page)

	_, err = s.Navigate(t.Context(), "/nowhere")
	require.ErrorIs(t, err, ErrUnknownRoute)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, routes.PageTemplates, s.Route().Page)
}

func TestNavigate_EditPrefillsBuilder(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	_, err := s.Navigate(t.Context(), "/agent-builder?edit=3")
	require.NoError(t, err)

	draft := s.Draft()
	assert.Equal(t, "Stripe Customer Manager", draft.Name)
	assert.Equal(t, 3, draft.EditID)
	assert.NotEmpty(t, draft.Prompt)
}

func TestClose_IsIdempotentAndRejectsActions(t *testing.T) {
	s, _, publisher := newTestSession(t, nil)

	s.Close(t.Context())
	s.Close(t.Context())

	_, err := s.Navigate(t.Context(), "/dashboard")
	require.ErrorIs(t, err, ErrSessionClosed)
	assert.True(t, IsConflictError(err))

	closed := 0
	for _, eventType := range publisher.types() {
		if eventType == events.SessionClosedEvent {
			closed++
		}
	}

	assert.Equal(t, 1, closed)
}

func TestClose_CancelsPendingRedirect(t *testing.T) {
	s, clock, _ := newTestSession(t, nil)

	require.NoError(t, s.SaveAgent(t.Context(), models.AgentDraft{Name: "Digest", Prompt: "Summarize"}))
	assert.Equal(t, routes.Dashboard, s.View().PendingRedirect)

	s.Close(t.Context())
	clock.Advance(NavigateDelay)

	assert.Equal(t, routes.PageAgentBuilder, s.Route().Page)
	assert.Empty(t, s.View().PendingRedirect)
}

// Package session models the views a client has open and simulates the
// actions taken on them. Delayed outcomes run on a per-session task group,
// so closing a session or leaving a page cancels whatever is still pending.
package session

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/dukex/agentflow/pkg/catalog"
	"github.com/dukex/agentflow/pkg/eventbus"
	"github.com/dukex/agentflow/pkg/events"
	"github.com/dukex/agentflow/pkg/log"
	"github.com/dukex/agentflow/pkg/models"
	"github.com/dukex/agentflow/pkg/notifier"
	"github.com/dukex/agentflow/pkg/otelhelper"
	"github.com/dukex/agentflow/pkg/routes"
	"github.com/dukex/agentflow/pkg/tasks"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	TestRunDelay  = 3 * time.Second
	ToggleDelay   = time.Second
	RunDelay      = 2 * time.Second
	NavigateDelay = 1500 * time.Millisecond

	DefaultWebhookHost = "api.pipedream.com"
)

// Config carries the collaborators shared by every session.
type Config struct {
	Catalog     *catalog.Catalog
	Clock       clockwork.Clock
	Publisher   eventbus.EventPublisher // optional
	Tracer      trace.Tracer            // optional
	ToastTTL    time.Duration
	WebhookHost string
}

func (c Config) withDefaults() Config {
	if c.Catalog == nil {
		c.Catalog = catalog.Default()
	}

	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}

	if c.Tracer == nil {
		c.Tracer = noop.NewTracerProvider().Tracer("agentflow")
	}

	if c.ToastTTL <= 0 {
		c.ToastTTL = notifier.DefaultTTL
	}

	if c.WebhookHost == "" {
		c.WebhookHost = DefaultWebhookHost
	}

	return c
}

// Session is one client's set of views.
type Session struct {
	id        string
	createdAt time.Time
	cfg       Config
	logger    *slog.Logger
	notifier  *notifier.Notifier
	group     *tasks.Group

	mu          sync.Mutex
	closed      bool
	route       routes.Route
	redirect    *tasks.Task
	redirectTo  string
	redirectGen uint64

	builder  builderState
	detail   detailState
	workflow workflowState
}

// View is a snapshot of everything a client renders.
type View struct {
	ID              string               `json:"id"`
	CreatedAt       time.Time            `json:"createdAt"`
	Route           routes.Route         `json:"route"`
	PendingRedirect string               `json:"pendingRedirect,omitempty"`
	AgentBuilder    AgentBuilderView     `json:"agentBuilder"`
	AgentDetail     AgentDetailView      `json:"agentDetail"`
	WorkflowBuilder models.WorkflowDraft `json:"workflowBuilder"`
	Toasts          []models.Toast       `json:"toasts"`
}

// New opens a session on the landing page. ctx is only used to announce the session;
// pending actions outlive it and stop when the session is closed.
func New(ctx context.Context, cfg Config) *Session {
	cfg = cfg.withDefaults()

	s := &Session{
		id:        uuid.NewString(),
		createdAt: cfg.Clock.Now().UTC(),
		cfg:       cfg,
		notifier:  notifier.New(cfg.Clock, cfg.ToastTTL),
		group:     tasks.NewGroup(context.Background(), cfg.Clock),
		route:     routes.Route{Path: routes.Landing, Page: routes.PageLanding},
	}
	s.logger = log.WithModule("session").With("session_id", s.id)
	s.builder.reset()
	s.resetWorkflow()

	s.publish(ctx, s.activity(events.SessionCreatedEvent))

	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) Route() routes.Route {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.route
}

func (s *Session) View() View {
	s.mu.Lock()
	view := View{
		ID:              s.id,
		CreatedAt:       s.createdAt,
		Route:           s.route,
		PendingRedirect: s.redirectTo,
		AgentBuilder:    s.builder.view(),
		AgentDetail:     s.detail.view(),
		WorkflowBuilder: s.workflow.draft.Clone(),
	}
	s.mu.Unlock()

	view.Toasts = s.notifier.Toasts()

	return view
}

// Toasts returns the toasts currently on screen, oldest first.
func (s *Session) Toasts() []models.Toast {
	return s.notifier.Toasts()
}

func (s *Session) DismissToast(id string) bool {
	return s.notifier.Dismiss(id)
}

// SubscribeToasts registers a listener called with the full toast list on every change.
func (s *Session) SubscribeToasts(listener notifier.Listener) func() {
	return s.notifier.Subscribe(listener)
}

// Navigate moves the session to path. Leaving a page discards its state and
// cancels its pending actions; a scheduled redirect is dropped.
func (s *Session) Navigate(ctx context.Context, path string) (routes.Route, error) {
	var route routes.Route

	err := s.do(ctx, "navigate", func(fx *effects) error {
		resolved, err := routes.Resolve(path)
		if err != nil {
			return newActionError("navigate", "unknown_route", "", err)
		}

		s.navigateLocked(resolved, fx)
		route = s.route

		return nil
	}, attribute.String(otelhelper.RouteKey, path))

	return route, err
}

// Close tears down the current page and cancels pending timers. Closing twice is a no-op.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return
	}

	s.closed = true
	s.cancelRedirectLocked()
	s.leaveLocked(s.route.Page)
	s.mu.Unlock()

	s.group.Close()
	s.notifier.Close()

	s.publish(ctx, s.activity(events.SessionClosedEvent))
	s.logger.DebugContext(ctx, "Session closed")
}

func (s *Session) navigateLocked(route routes.Route, fx *effects) {
	previous := s.route
	s.cancelRedirectLocked()

	changed := !samePage(previous, route)
	if changed {
		s.leaveLocked(previous.Page)
	}

	s.route = route

	if changed {
		s.enterLocked(route, fx)
	}

	fx.emit(s.activity(events.SessionNavigatedEvent).WithSubject(route.Path))
}

// ensurePageLocked navigates to path unless the session is already on that page.
func (s *Session) ensurePageLocked(path string, fx *effects) {
	route := mustResolve(path)
	if s.route.Page != route.Page {
		s.navigateLocked(route, fx)
	}
}

func (s *Session) leaveLocked(page routes.Page) {
	switch page {
	case routes.PageAgentBuilder:
		s.builder.reset()
	case routes.PageAgentDetail:
		s.detail.reset()
	case routes.PageWorkflowBuilder:
		s.resetWorkflow()
	}
}

func (s *Session) enterLocked(route routes.Route, fx *effects) {
	switch route.Page {
	case routes.PageAgentDetail:
		_ = s.openLocked(route.AgentID, fx)
	case routes.PageAgentBuilder:
		s.prefillForEditLocked(route, fx)
	}
}

func (s *Session) scheduleRedirectLocked(path string) {
	s.cancelRedirectLocked()

	gen := s.redirectGen
	s.redirectTo = path
	s.redirect = s.group.After(NavigateDelay, func(ctx context.Context) {
		s.fire(ctx, func(fx *effects) {
			if s.redirectGen != gen {
				return
			}

			s.redirect = nil
			s.redirectTo = ""
			s.navigateLocked(mustResolve(path), fx)
		})
	})
}

func (s *Session) cancelRedirectLocked() {
	s.redirectGen++
	s.redirectTo = ""

	if s.redirect != nil {
		s.redirect.Cancel()
		s.redirect = nil
	}
}

// do runs an action under the session lock and applies its effects once the lock is released.
func (s *Session) do(ctx context.Context, op string, fn func(fx *effects) error, attrs ...attribute.KeyValue) error {
	attrs = append(attrs, attribute.String(otelhelper.SessionIDKey, s.id))

	ctx, span := otelhelper.StartSpan(ctx, s.cfg.Tracer, "agentflow.session."+op, attrs...)
	defer span.End()

	fx := &effects{}

	s.mu.Lock()

	var err error
	if s.closed {
		err = ErrSessionClosed
	} else {
		err = fn(fx)
	}

	s.mu.Unlock()

	s.apply(ctx, fx)

	if err != nil {
		otelhelper.SetError(span, err)
		s.logger.DebugContext(ctx, "Session action rejected", "op", op, "error", err)
	}

	return err
}

// fire applies the outcome of a delayed action.
func (s *Session) fire(ctx context.Context, fn func(fx *effects)) {
	fx := &effects{}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return
	}

	fn(fx)
	s.mu.Unlock()

	s.apply(context.WithoutCancel(ctx), fx)
}

func (s *Session) apply(ctx context.Context, fx *effects) {
	for _, toast := range fx.toasts {
		s.notifier.Notify(toast.kind, toast.message)
	}

	for _, activity := range fx.events {
		s.publish(ctx, activity)
	}
}

func (s *Session) publish(ctx context.Context, activity events.Activity) {
	if s.cfg.Publisher == nil {
		return
	}

	if err := s.cfg.Publisher.Publish(ctx, s.id, activity); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish activity", "error", err, "event_type", activity.Type)
	}
}

func (s *Session) activity(eventType events.EventType) events.Activity {
	return events.NewActivity(eventType, s.id, s.cfg.Clock.Now())
}

type pendingToast struct {
	kind    models.ToastType
	message string
}

// effects collects toasts and events produced while the session lock is held.
type effects struct {
	toasts []pendingToast
	events []events.Activity
}

func (fx *effects) toast(kind models.ToastType, message string) {
	fx.toasts = append(fx.toasts, pendingToast{kind: kind, message: message})
}

func (fx *effects) emit(activity events.Activity) {
	fx.events = append(fx.events, activity)
}

func samePage(a, b routes.Route) bool {
	return a.Path == b.Path && maps.Equal(a.Query, b.Query)
}

func mustResolve(path string) routes.Route {
	route, err := routes.Resolve(path)
	if err != nil {
		panic(err)
	}

	return route
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dukex/agentflow/pkg/events"
	"github.com/dukex/agentflow/pkg/models"
	"github.com/dukex/agentflow/pkg/otelhelper"
	"github.com/dukex/agentflow/pkg/routes"
	"github.com/dukex/agentflow/pkg/tasks"
	"go.opentelemetry.io/otel/attribute"
)

// Toast messages shown on the agent detail page.
const (
	MsgAgentNotFound     = "Agent not found"
	MsgAgentActivated    = "Agent activated successfully"
	MsgAgentPaused       = "Agent paused successfully"
	MsgAgentExecuted     = "Agent executed successfully"
	MsgWebhookCopied     = "Webhook URL copied to clipboard"
	MsgAgentDeleted      = "Agent deleted successfully"
	MsgCannotToggleError = "Agents in error state cannot be activated or paused"
)

// Action is the simulated agent action in flight, if any.
type Action string

const (
	ActionNone   Action = ""
	ActionToggle Action = "toggle"
	ActionRun    Action = "run"
)

type detailState struct {
	agent     *models.Agent
	requested int
	notFound  bool
	action    Action
	task      *tasks.Task
	gen       uint64
}

// AgentDetailView is the agent detail page. NotFound is set when the requested
// agent does not exist.
type AgentDetailView struct {
	Agent       *models.Agent `json:"agent"`
	RequestedID int           `json:"requestedId,omitempty"`
	NotFound    bool          `json:"notFound"`
	Loading     bool          `json:"loading"`
	Action      Action        `json:"action,omitempty"`
}

func (d *detailState) reset() {
	if d.task != nil {
		d.task.Cancel()
	}

	*d = detailState{gen: d.gen + 1}
}

func (d *detailState) view() AgentDetailView {
	view := AgentDetailView{
		RequestedID: d.requested,
		NotFound:    d.notFound,
		Loading:     d.action != ActionNone,
		Action:      d.action,
	}

	if d.agent != nil {
		agent := *d.agent
		view.Agent = &agent
	}

	return view
}

// OpenAgent navigates to the agent's detail page and copies the agent into the session.
func (s *Session) OpenAgent(ctx context.Context, id int) (models.Agent, error) {
	var agent models.Agent

	err := s.do(ctx, "open_agent", func(fx *effects) error {
		route := mustResolve(routes.AgentDetail(id))
		if samePage(s.route, route) && (s.detail.agent != nil || s.detail.notFound) {
			return s.currentAgentLocked(&agent)
		}

		s.navigateLocked(route, fx)

		return s.currentAgentLocked(&agent)
	}, attribute.Int(otelhelper.AgentIDKey, id))

	return agent, err
}

func (s *Session) currentAgentLocked(out *models.Agent) error {
	if s.detail.notFound {
		return newActionError("open_agent", "agent_not_found", MsgAgentNotFound, ErrAgentNotFound)
	}

	*out = *s.detail.agent

	return nil
}

func (s *Session) openLocked(id int, fx *effects) error {
	s.detail.requested = id

	agent, err := s.cfg.Catalog.Agent(id)
	if err != nil {
		s.detail.notFound = true
		fx.toast(models.ToastWarning, MsgAgentNotFound)

		return err
	}

	s.detail.agent = &agent

	return nil
}

// Agent returns the session copy of the open agent.
func (s *Session) Agent() (models.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent, err := s.openAgentLocked()
	if err != nil {
		return models.Agent{}, err
	}

	return *agent, nil
}

func (s *Session) openAgentLocked() (*models.Agent, error) {
	if s.route.Page != routes.PageAgentDetail {
		return nil, ErrNoAgentOpen
	}

	if s.detail.notFound || s.detail.agent == nil {
		return nil, newActionError("agent", "agent_not_found", MsgAgentNotFound, ErrAgentNotFound)
	}

	return s.detail.agent, nil
}

// ToggleStatus pauses an active agent or activates a paused one after ToggleDelay.
func (s *Session) ToggleStatus(ctx context.Context) error {
	return s.do(ctx, "toggle_status", func(fx *effects) error {
		agent, err := s.openAgentLocked()
		if err != nil {
			return err
		}

		if s.detail.action != ActionNone {
			return newActionError("toggle_status", "busy", "", ErrBusy)
		}

		next, err := agent.Status.Toggle()
		if err != nil {
			fx.toast(models.ToastError, MsgCannotToggleError)

			return newActionError("toggle_status", "invalid_status", MsgCannotToggleError,
				errors.Join(ErrInvalidStatus, err))
		}

		s.startActionLocked(ActionToggle, ToggleDelay, func(fx *effects) {
			previous := s.detail.agent.Status
			s.detail.agent.Status = next

			message := MsgAgentPaused
			if next == models.AgentStatusActive {
				message = MsgAgentActivated
			}

			fx.toast(models.ToastSuccess, message)
			fx.emit(s.activity(events.AgentStatusToggledEvent).
				WithAgent(s.detail.agent.ID, s.detail.agent.Name).
				WithMetadata("from", string(previous)).
				WithMetadata("to", string(next)))
		})

		return nil
	})
}

// RunAgent simulates a manual execution that completes after RunDelay.
func (s *Session) RunAgent(ctx context.Context) error {
	return s.do(ctx, "run_agent", func(fx *effects) error {
		if _, err := s.openAgentLocked(); err != nil {
			return err
		}

		if s.detail.action != ActionNone {
			return newActionError("run_agent", "busy", "", ErrBusy)
		}

		s.startActionLocked(ActionRun, RunDelay, func(fx *effects) {
			fx.toast(models.ToastSuccess, MsgAgentExecuted)
			fx.emit(s.activity(events.AgentRunEvent).WithAgent(s.detail.agent.ID, s.detail.agent.Name))
		})

		return nil
	})
}

func (s *Session) startActionLocked(action Action, delay time.Duration, complete func(fx *effects)) {
	s.detail.gen++
	gen := s.detail.gen
	s.detail.action = action
	s.detail.task = s.group.After(delay, func(ctx context.Context) {
		s.fire(ctx, func(fx *effects) {
			if s.detail.gen != gen {
				return
			}

			s.detail.action = ActionNone
			s.detail.task = nil
			complete(fx)
		})
	})
}

// WebhookURL returns the webhook address of the open agent.
func (s *Session) WebhookURL() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent, err := s.openAgentLocked()
	if err != nil {
		return "", err
	}

	return s.webhookURL(agent.ID), nil
}

// CopyWebhook returns the webhook address and confirms the copy with a toast.
func (s *Session) CopyWebhook(ctx context.Context) (string, error) {
	var url string

	err := s.do(ctx, "copy_webhook", func(fx *effects) error {
		agent, err := s.openAgentLocked()
		if err != nil {
			return err
		}

		url = s.webhookURL(agent.ID)
		fx.toast(models.ToastSuccess, MsgWebhookCopied)

		return nil
	})

	return url, err
}

func (s *Session) webhookURL(agentID int) string {
	return fmt.Sprintf("https://%s/webhook/agent-%d", s.cfg.WebhookHost, agentID)
}

// DeleteAgent confirms the deletion and returns to the dashboard immediately.
// The catalog keeps the agent.
func (s *Session) DeleteAgent(ctx context.Context) error {
	return s.do(ctx, "delete_agent", func(fx *effects) error {
		agent, err := s.openAgentLocked()
		if err != nil {
			return err
		}

		fx.toast(models.ToastSuccess, MsgAgentDeleted)
		fx.emit(s.activity(events.AgentDeletedEvent).WithAgent(agent.ID, agent.Name))
		s.navigateLocked(mustResolve(routes.Dashboard), fx)

		return nil
	})
}

// Logs returns the execution history of the open agent.
func (s *Session) Logs() ([]models.ExecutionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent, err := s.openAgentLocked()
	if err != nil {
		return nil, err
	}

	return s.cfg.Catalog.LogsForAgent(agent.ID), nil
}

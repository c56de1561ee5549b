package session

import (
	"context"
	"strconv"
	"strings"

	"github.com/dukex/agentflow/pkg/events"
	"github.com/dukex/agentflow/pkg/models"
	"github.com/dukex/agentflow/pkg/otelhelper"
	"github.com/dukex/agentflow/pkg/routes"
	"github.com/dukex/agentflow/pkg/tasks"
	"go.opentelemetry.io/otel/attribute"
)

// Toast messages shown by the agent builder.
const (
	MsgPromptRequired        = "Please enter a prompt to test"
	MsgNameAndPromptRequired = "Please fill in the agent name and prompt"
	MsgAgentSaved            = "Agent saved successfully!"
	MsgAgentDeployed         = "Agent deployed successfully!"
	MsgTestRunCompleted      = "Test run completed successfully!"
	MsgTemplateNotFound      = "Template not found"
	MsgPresetNotFound        = "Prompt preset not found"
)

const (
	testRunMessage       = "Test completed successfully!"
	testRunOutput        = "Agent processed the test input and generated the following response: This is a simulated response from your AI agent. The agent would use the DeepSeek model to process your input and provide intelligent responses based on your prompt configuration."
	testRunExecutionTime = 1247
	testRunTokensUsed    = 156
)

type builderState struct {
	draft  models.AgentDraft
	state  models.TestRunState
	result *models.TestRunResult
	task   *tasks.Task
	gen    uint64
}

// AgentBuilderView is the agent builder form and its test-run panel.
type AgentBuilderView struct {
	Draft   models.AgentDraft     `json:"draft"`
	TestRun models.TestRunState   `json:"testRun"`
	Result  *models.TestRunResult `json:"result"`
}

func (b *builderState) reset() {
	if b.task != nil {
		b.task.Cancel()
	}

	*b = builderState{state: models.TestRunIdle, gen: b.gen + 1}
}

func (b *builderState) view() AgentBuilderView {
	view := AgentBuilderView{Draft: b.draft, TestRun: b.state}
	if b.result != nil {
		result := *b.result
		view.Result = &result
	}

	return view
}

// SetDraft replaces the agent builder form.
func (s *Session) SetDraft(ctx context.Context, draft models.AgentDraft) error {
	return s.do(ctx, "set_draft", func(fx *effects) error {
		s.ensurePageLocked(routes.AgentBuilder, fx)
		s.builder.draft = draft

		return nil
	})
}

// Draft returns the agent builder form.
func (s *Session) Draft() models.AgentDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.builder.draft
}

// ApplyTemplate prefills the builder form from a catalog template.
func (s *Session) ApplyTemplate(ctx context.Context, templateID int) (models.AgentDraft, error) {
	var draft models.AgentDraft

	err := s.do(ctx, "apply_template", func(fx *effects) error {
		s.ensurePageLocked(routes.AgentBuilder, fx)

		template, err := s.cfg.Catalog.Template(templateID)
		if err != nil {
			fx.toast(models.ToastWarning, MsgTemplateNotFound)

			return newActionError("apply_template", "template_not_found", MsgTemplateNotFound, err)
		}

		s.builder.draft.Name = template.Name
		s.builder.draft.Description = template.Description
		s.builder.draft.Category = template.Category
		s.builder.draft.Prompt = template.DefaultPrompt
		s.builder.draft.Template = template.Name
		draft = s.builder.draft

		return nil
	}, attribute.Int(otelhelper.TemplateIDKey, templateID))

	return draft, err
}

// ApplyPreset replaces the draft prompt with a named prompt preset.
func (s *Session) ApplyPreset(ctx context.Context, name string) (models.AgentDraft, error) {
	var draft models.AgentDraft

	err := s.do(ctx, "apply_preset", func(fx *effects) error {
		s.ensurePageLocked(routes.AgentBuilder, fx)

		preset, err := s.cfg.Catalog.PromptPreset(name)
		if err != nil {
			fx.toast(models.ToastWarning, MsgPresetNotFound)

			return newActionError("apply_preset", "preset_not_found", MsgPresetNotFound, err)
		}

		s.builder.draft.Prompt = preset.Prompt
		draft = s.builder.draft

		return nil
	})

	return draft, err
}

// TestRun simulates running the draft prompt. The result lands after TestRunDelay.
func (s *Session) TestRun(ctx context.Context, draft models.AgentDraft) error {
	return s.do(ctx, "test_run", func(fx *effects) error {
		s.ensurePageLocked(routes.AgentBuilder, fx)

		if s.builder.state == models.TestRunRunning {
			return newActionError("test_run", "run_in_progress", "", ErrRunInProgress)
		}

		s.builder.draft = draft

		if strings.TrimSpace(draft.Prompt) == "" {
			fx.toast(models.ToastError, MsgPromptRequired)

			return newActionError("test_run", "prompt_required", MsgPromptRequired, ErrPromptRequired)
		}

		s.builder.gen++
		gen := s.builder.gen
		s.builder.state = models.TestRunRunning
		s.builder.result = nil
		s.builder.task = s.group.After(TestRunDelay, func(ctx context.Context) {
			s.fire(ctx, func(fx *effects) { s.completeTestRunLocked(gen, fx) })
		})

		fx.emit(s.activity(events.AgentTestRunStartedEvent).WithSubject(draft.Name))

		return nil
	})
}

func (s *Session) completeTestRunLocked(gen uint64, fx *effects) {
	if s.builder.gen != gen {
		return
	}

	s.builder.task = nil
	s.builder.state = models.TestRunSucceeded
	s.builder.result = &models.TestRunResult{
		Status:        models.RunStatusSuccess,
		Message:       testRunMessage,
		Output:        testRunOutput,
		ExecutionTime: testRunExecutionTime,
		TokensUsed:    testRunTokensUsed,
	}

	fx.toast(models.ToastSuccess, MsgTestRunCompleted)
	fx.emit(s.activity(events.AgentTestRunCompletedEvent).
		WithSubject(s.builder.draft.Name).
		WithMetadata("tokensUsed", testRunTokensUsed).
		WithMetadata("executionTime", testRunExecutionTime))
}

// TestRunStatus returns the test-run state and its result, if any.
func (s *Session) TestRunStatus() (models.TestRunState, *models.TestRunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.builder.view()

	return view.TestRun, view.Result
}

// SaveAgent validates the draft and redirects to the dashboard. The catalog is not modified.
func (s *Session) SaveAgent(ctx context.Context, draft models.AgentDraft) error {
	return s.submitDraft(ctx, "save_agent", draft, MsgAgentSaved, events.AgentSavedEvent)
}

// DeployAgent behaves like SaveAgent with its own confirmation.
func (s *Session) DeployAgent(ctx context.Context, draft models.AgentDraft) error {
	return s.submitDraft(ctx, "deploy_agent", draft, MsgAgentDeployed, events.AgentDeployedEvent)
}

func (s *Session) submitDraft(ctx context.Context, op string, draft models.AgentDraft, message string, eventType events.EventType) error {
	return s.do(ctx, op, func(fx *effects) error {
		s.ensurePageLocked(routes.AgentBuilder, fx)
		s.builder.draft = draft

		if strings.TrimSpace(draft.Name) == "" || strings.TrimSpace(draft.Prompt) == "" {
			fx.toast(models.ToastError, MsgNameAndPromptRequired)

			return newActionError(op, "name_and_prompt_required", MsgNameAndPromptRequired, ErrNameAndPromptRequired)
		}

		fx.toast(models.ToastSuccess, message)

		activity := s.activity(eventType).WithSubject(draft.Name)
		if draft.EditID != 0 {
			activity = activity.WithAgent(draft.EditID, draft.Name)
		}

		fx.emit(activity)
		s.scheduleRedirectLocked(routes.Dashboard)

		return nil
	})
}

// prefillForEditLocked loads the agent named by ?edit=<id> into the form.
func (s *Session) prefillForEditLocked(route routes.Route, fx *effects) {
	raw, ok := route.Query["edit"]
	if !ok {
		return
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return
	}

	agent, err := s.cfg.Catalog.Agent(id)
	if err != nil {
		fx.toast(models.ToastWarning, MsgAgentNotFound)

		return
	}

	s.builder.draft = models.AgentDraft{
		Name:        agent.Name,
		Description: agent.Description,
		Prompt:      agent.Prompt,
		Category:    agent.Category,
		Template:    agent.Template,
		EditID:      agent.ID,
	}
}

package session

import (
	"context"
	"strings"

	"github.com/dukex/agentflow/pkg/events"
	"github.com/dukex/agentflow/pkg/models"
	"github.com/dukex/agentflow/pkg/otelhelper"
	"github.com/dukex/agentflow/pkg/routes"
	"go.opentelemetry.io/otel/attribute"
)

// Toast messages shown by the workflow builder.
const (
	MsgWorkflowNameRequired = "Please enter a workflow name"
	MsgWorkflowSaved        = "Workflow saved successfully!"
	MsgStepsRequired        = "Please add at least one step"
	MsgWorkflowTestStarted  = "Workflow test started!"
)

const copySuffix = " (Copy)"

type workflowState struct {
	draft  models.WorkflowDraft
	lastID int64
}

// resetWorkflow starts a fresh workflow holding the first catalog step.
func (s *Session) resetWorkflow() {
	steps := s.cfg.Catalog.WorkflowSteps()

	draft := models.WorkflowDraft{Steps: []models.WorkflowStep{}}
	if len(steps) > 0 {
		draft.Steps = append(draft.Steps, steps[0])
	}

	lastID := s.workflow.lastID
	for _, step := range draft.Steps {
		lastID = max(lastID, step.ID)
	}

	s.workflow = workflowState{draft: draft, lastID: lastID}
}

// nextStepIDLocked returns a step id derived from the clock in milliseconds,
// bumped past the last one handed out.
func (s *Session) nextStepIDLocked() int64 {
	id := s.cfg.Clock.Now().UnixMilli()
	if id <= s.workflow.lastID {
		id = s.workflow.lastID + 1
	}

	s.workflow.lastID = id

	return id
}

// Workflow returns the workflow builder state.
func (s *Session) Workflow() models.WorkflowDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.workflow.draft.Clone()
}

func (s *Session) SetWorkflowInfo(ctx context.Context, name, description string) error {
	return s.do(ctx, "set_workflow_info", func(fx *effects) error {
		s.ensurePageLocked(routes.WorkflowBuilder, fx)
		s.workflow.draft.Name = name
		s.workflow.draft.Description = description

		return nil
	})
}

// AddStep appends a step built from the palette entry at paletteIndex and selects it.
func (s *Session) AddStep(ctx context.Context, paletteIndex int) (models.WorkflowStep, error) {
	var step models.WorkflowStep

	err := s.do(ctx, "add_step", func(fx *effects) error {
		s.ensurePageLocked(routes.WorkflowBuilder, fx)

		palette := s.cfg.Catalog.StepPalette()
		if paletteIndex < 0 || paletteIndex >= len(palette) {
			return newActionError("add_step", "invalid_palette_index", "", ErrInvalidPaletteIndex)
		}

		entry := palette[paletteIndex]

		config, err := models.NewStepConfig(entry.Type)
		if err != nil {
			return newActionError("add_step", "invalid_step", "", err)
		}

		step = models.WorkflowStep{
			ID:          s.nextStepIDLocked(),
			Type:        entry.Type,
			Title:       entry.Title,
			Description: entry.Description,
			Icon:        entry.Icon,
			Config:      config,
		}

		s.workflow.draft.Steps = append(s.workflow.draft.Steps, step)
		s.selectLocked(step.ID)

		return nil
	})

	return step, err
}

// RemoveStep deletes a step, clearing the selection when it pointed at it.
func (s *Session) RemoveStep(ctx context.Context, id int64) error {
	return s.do(ctx, "remove_step", func(fx *effects) error {
		s.ensurePageLocked(routes.WorkflowBuilder, fx)

		idx := s.workflow.draft.StepIndex(id)
		if idx < 0 {
			return newActionError("remove_step", "step_not_found", "", ErrStepNotFound)
		}

		steps := s.workflow.draft.Steps
		s.workflow.draft.Steps = append(steps[:idx:idx], steps[idx+1:]...)

		if selected := s.workflow.draft.SelectedStep; selected != nil && *selected == id {
			s.workflow.draft.SelectedStep = nil
		}

		return nil
	}, attribute.Int64(otelhelper.StepIDKey, id))
}

// DuplicateStep appends a copy of a step with a fresh id. The selection is unchanged.
func (s *Session) DuplicateStep(ctx context.Context, id int64) (models.WorkflowStep, error) {
	var duplicate models.WorkflowStep

	err := s.do(ctx, "duplicate_step", func(fx *effects) error {
		s.ensurePageLocked(routes.WorkflowBuilder, fx)

		idx := s.workflow.draft.StepIndex(id)
		if idx < 0 {
			return newActionError("duplicate_step", "step_not_found", "", ErrStepNotFound)
		}

		duplicate = s.workflow.draft.Steps[idx].Clone()
		duplicate.ID = s.nextStepIDLocked()
		duplicate.Title += copySuffix

		s.workflow.draft.Steps = append(s.workflow.draft.Steps, duplicate)

		return nil
	}, attribute.Int64(otelhelper.StepIDKey, id))

	return duplicate, err
}

// SelectStep marks a step as selected for configuration.
func (s *Session) SelectStep(ctx context.Context, id int64) error {
	return s.do(ctx, "select_step", func(fx *effects) error {
		s.ensurePageLocked(routes.WorkflowBuilder, fx)

		if s.workflow.draft.StepIndex(id) < 0 {
			return newActionError("select_step", "step_not_found", "", ErrStepNotFound)
		}

		s.selectLocked(id)

		return nil
	}, attribute.Int64(otelhelper.StepIDKey, id))
}

func (s *Session) selectLocked(id int64) {
	selected := id
	s.workflow.draft.SelectedStep = &selected
}

// ConfigureStep replaces the configuration of a step. The config variant must
// match the step type.
func (s *Session) ConfigureStep(ctx context.Context, id int64, config models.StepConfig) (models.WorkflowStep, error) {
	var updated models.WorkflowStep

	err := s.do(ctx, "configure_step", func(fx *effects) error {
		s.ensurePageLocked(routes.WorkflowBuilder, fx)

		idx := s.workflow.draft.StepIndex(id)
		if idx < 0 {
			return newActionError("configure_step", "step_not_found", "", ErrStepNotFound)
		}

		candidate := s.workflow.draft.Steps[idx].Clone()
		candidate.Config = config

		if err := candidate.Validate(); err != nil {
			return newActionError("configure_step", "invalid_step_config", "", err)
		}

		s.workflow.draft.Steps[idx] = candidate
		updated = candidate.Clone()

		return nil
	}, attribute.Int64(otelhelper.StepIDKey, id))

	return updated, err
}

// SaveWorkflow requires a name and redirects to the dashboard after NavigateDelay.
func (s *Session) SaveWorkflow(ctx context.Context) error {
	return s.do(ctx, "save_workflow", func(fx *effects) error {
		s.ensurePageLocked(routes.WorkflowBuilder, fx)

		name := s.workflow.draft.Name
		if strings.TrimSpace(name) == "" {
			fx.toast(models.ToastError, MsgWorkflowNameRequired)

			return newActionError("save_workflow", "workflow_name_required", MsgWorkflowNameRequired, ErrWorkflowNameRequired)
		}

		fx.toast(models.ToastSuccess, MsgWorkflowSaved)
		fx.emit(s.activity(events.WorkflowSavedEvent).
			WithSubject(name).
			WithMetadata("steps", len(s.workflow.draft.Steps)))
		s.scheduleRedirectLocked(routes.Dashboard)

		return nil
	})
}

// TestWorkflow starts a simulated test of the workflow.
func (s *Session) TestWorkflow(ctx context.Context) error {
	return s.do(ctx, "test_workflow", func(fx *effects) error {
		s.ensurePageLocked(routes.WorkflowBuilder, fx)

		if len(s.workflow.draft.Steps) == 0 {
			fx.toast(models.ToastError, MsgStepsRequired)

			return newActionError("test_workflow", "steps_required", MsgStepsRequired, ErrStepsRequired)
		}

		fx.toast(models.ToastSuccess, MsgWorkflowTestStarted)
		fx.emit(s.activity(events.WorkflowTestStartedEvent).
			WithSubject(s.workflow.draft.Name).
			WithMetadata("steps", len(s.workflow.draft.Steps)))

		return nil
	})
}

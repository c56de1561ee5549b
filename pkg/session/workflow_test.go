package session

import (
	"testing"
	"time"

	"github.com/dukex/agentflow/pkg/events"
	"github.com/dukex/agentflow/pkg/models"
	"github.com/dukex/agentflow/pkg/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStep_SelectsNewStep(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	step, err := s.AddStep(t.Context(), 3)
	require.NoError(t, err)
	assert.Equal(t, models.StepTypeAction, step.Type)
	assert.Equal(t, "AI Processing", step.Title)
	assert.Equal(t, models.ActionConfig{}, step.Config)

	workflow := s.Workflow()
	require.Len(t, workflow.Steps, 2)
	require.NotNil(t, workflow.SelectedStep)
	assert.Equal(t, step.ID, *workflow.SelectedStep)
	assert.Equal(t, routes.PageWorkflowBuilder, s.Route().Page)

	_, err = s.AddStep(t.Context(), 42)
	assert.ErrorIs(t, err, ErrInvalidPaletteIndex)
}

func TestAddStep_IDsNeverCollide(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	seen := map[int64]bool{}
	for _, step := range s.Workflow().Steps {
		seen[step.ID] = true
	}

	for range 20 {
		step, err := s.AddStep(t.Context(), 0)
		require.NoError(t, err)
		assert.False(t, seen[step.ID], "duplicate id %d", step.ID)
		seen[step.ID] = true
	}

	assert.Equal(t, testStart.UnixMilli(), s.Workflow().Steps[1].ID)
}

func TestRemoveStep_ClearsSelection(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	step, err := s.AddStep(t.Context(), 4)
	require.NoError(t, err)

	require.NoError(t, s.RemoveStep(t.Context(), step.ID))

	workflow := s.Workflow()
	assert.Len(t, workflow.Steps, 1)
	assert.Nil(t, workflow.SelectedStep)

	assert.ErrorIs(t, s.RemoveStep(t.Context(), step.ID), ErrStepNotFound)
}

func TestRemoveStep_KeepsOtherSelection(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	first := s.Workflow().Steps[0]
	added, err := s.AddStep(t.Context(), 4)
	require.NoError(t, err)

	require.NoError(t, s.RemoveStep(t.Context(), first.ID))

	workflow := s.Workflow()
	require.NotNil(t, workflow.SelectedStep)
	assert.Equal(t, added.ID, *workflow.SelectedStep)
}

func TestDuplicateStep(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	original := s.Workflow().Steps[0]

	duplicate, err := s.DuplicateStep(t.Context(), original.ID)
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, duplicate.ID)
	assert.Equal(t, original.Title+" (Copy)", duplicate.Title)
	assert.Equal(t, original.Config, duplicate.Config)

	workflow := s.Workflow()
	assert.Len(t, workflow.Steps, 2)
	assert.Nil(t, workflow.SelectedStep)
}

func TestSelectAndConfigureStep(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	trigger := s.Workflow().Steps[0]

	require.NoError(t, s.SelectStep(t.Context(), trigger.ID))
	assert.Equal(t, trigger.ID, *s.Workflow().SelectedStep)
	assert.ErrorIs(t, s.SelectStep(t.Context(), -1), ErrStepNotFound)

	updated, err := s.ConfigureStep(t.Context(), trigger.ID, models.TriggerConfig{Schedule: "0 9 * * 1-5"})
	require.NoError(t, err)
	assert.Equal(t, "0 9 * * 1-5", updated.Config.(models.TriggerConfig).Schedule)

	_, err = s.ConfigureStep(t.Context(), trigger.ID, models.TriggerConfig{Schedule: "every day"})
	require.ErrorIs(t, err, models.ErrInvalidSchedule)

	_, err = s.ConfigureStep(t.Context(), trigger.ID, models.ActionConfig{Model: "deepseek"})
	require.ErrorIs(t, err, models.ErrInvalidStepConfig)

	assert.Equal(t, "0 9 * * 1-5", s.Workflow().Steps[0].Config.(models.TriggerConfig).Schedule)
}

func TestSaveWorkflow(t *testing.T) {
	s, clock, publisher := newTestSession(t, nil)

	err := s.SaveWorkflow(t.Context())
	require.ErrorIs(t, err, ErrWorkflowNameRequired)
	assert.Equal(t, MsgWorkflowNameRequired, lastToast(t, s).Message)

	require.NoError(t, s.SetWorkflowInfo(t.Context(), "Nightly digest", "Summaries at night"))
	require.NoError(t, s.SaveWorkflow(t.Context()))
	assert.Equal(t, MsgWorkflowSaved, lastToast(t, s).Message)

	clock.Advance(NavigateDelay)

	require.Eventually(t, func() bool {
		return s.Route().Page == routes.PageDashboard
	}, time.Second, 5*time.Millisecond)

	assert.Contains(t, publisher.types(), events.WorkflowSavedEvent)
	assert.Empty(t, s.Workflow().Name)
}

func TestTestWorkflow(t *testing.T) {
	s, _, publisher := newTestSession(t, nil)

	require.NoError(t, s.TestWorkflow(t.Context()))
	assert.Equal(t, MsgWorkflowTestStarted, lastToast(t, s).Message)
	assert.Contains(t, publisher.types(), events.WorkflowTestStartedEvent)

	require.NoError(t, s.RemoveStep(t.Context(), s.Workflow().Steps[0].ID))

	err := s.TestWorkflow(t.Context())
	require.ErrorIs(t, err, ErrStepsRequired)
	assert.Equal(t, MsgStepsRequired, lastToast(t, s).Message)
}

func TestWorkflow_ResetWhenLeavingPage(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	_, err := s.AddStep(t.Context(), 1)
	require.NoError(t, err)
	require.NoError(t, s.SetWorkflowInfo(t.Context(), "Draft", ""))

	_, err = s.Navigate(t.Context(), routes.Templates)
	require.NoError(t, err)

	workflow := s.Workflow()
	assert.Empty(t, workflow.Name)
	assert.Len(t, workflow.Steps, 1)
}

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

func TestTestRun_BlankPromptStaysIdle(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	err := s.TestRun(t.Context(), models.AgentDraft{Name: "Digest", Prompt: "   "})
	require.ErrorIs(t, err, ErrPromptRequired)
	assert.True(t, IsValidationError(err))

	state, result := s.TestRunStatus()
	assert.Equal(t, models.TestRunIdle, state)
	assert.Nil(t, result)

	toast := lastToast(t, s)
	assert.Equal(t, models.ToastError, toast.Type)
	assert.Equal(t, MsgPromptRequired, toast.Message)
	assert.Equal(t, routes.PageAgentBuilder, s.Route().Page)
}

func TestTestRun_CompletesAfterDelay(t *testing.T) {
	s, clock, publisher := newTestSession(t, nil)

	require.NoError(t, s.TestRun(t.Context(), models.AgentDraft{Name: "Digest", Prompt: "Summarize my inbox"}))

	state, result := s.TestRunStatus()
	assert.Equal(t, models.TestRunRunning, state)
	assert.Nil(t, result)

	clock.Advance(TestRunDelay - time.Millisecond)
	state, _ = s.TestRunStatus()
	assert.Equal(t, models.TestRunRunning, state)

	clock.Advance(time.Millisecond)

	require.Eventually(t, func() bool {
		state, _ := s.TestRunStatus()

		return state == models.TestRunSucceeded
	}, time.Second, 5*time.Millisecond)

	_, result = s.TestRunStatus()
	require.NotNil(t, result)
	assert.Equal(t, models.RunStatusSuccess, result.Status)
	assert.Equal(t, "Test completed successfully!", result.Message)
	assert.NotEmpty(t, result.Output)
	assert.Equal(t, int64(1247), result.ExecutionTime)
	assert.Equal(t, 156, result.TokensUsed)

	assert.Contains(t, toastMessages(s), MsgTestRunCompleted)
	assert.Contains(t, publisher.types(), events.AgentTestRunStartedEvent)
	assert.Contains(t, publisher.types(), events.AgentTestRunCompletedEvent)
}

func TestTestRun_SecondRunWhileRunning(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	draft := models.AgentDraft{Name: "Digest", Prompt: "Summarize"}
	require.NoError(t, s.TestRun(t.Context(), draft))

	err := s.TestRun(t.Context(), draft)
	require.ErrorIs(t, err, ErrRunInProgress)
	assert.True(t, IsConflictError(err))
}

func TestTestRun_CancelledByNavigation(t *testing.T) {
	s, clock, publisher := newTestSession(t, nil)

	require.NoError(t, s.TestRun(t.Context(), models.AgentDraft{Name: "Digest", Prompt: "Summarize"}))

	_, err := s.Navigate(t.Context(), routes.Dashboard)
	require.NoError(t, err)

	clock.Advance(TestRunDelay)

	assert.Never(t, func() bool {
		return len(s.Toasts()) > 0
	}, 50*time.Millisecond, 5*time.Millisecond)

	state, result := s.TestRunStatus()
	assert.Equal(t, models.TestRunIdle, state)
	assert.Nil(t, result)
	assert.NotContains(t, publisher.types(), events.AgentTestRunCompletedEvent)
}

func TestTestRun_CancelledByClose(t *testing.T) {
	s, clock, _ := newTestSession(t, nil)

	require.NoError(t, s.TestRun(t.Context(), models.AgentDraft{Name: "Digest", Prompt: "Summarize"}))

	s.Close(t.Context())
	clock.Advance(TestRunDelay)

	state, _ := s.TestRunStatus()
	assert.Equal(t, models.TestRunIdle, state)
	assert.NotContains(t, toastMessages(s), MsgTestRunCompleted)
}

func TestSaveAgent_RequiresNameAndPrompt(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	for _, draft := range []models.AgentDraft{
		{Name: "", Prompt: "Summarize"},
		{Name: "Digest", Prompt: "\t"},
	} {
		err := s.SaveAgent(t.Context(), draft)
		require.ErrorIs(t, err, ErrNameAndPromptRequired)
	}

	err := s.DeployAgent(t.Context(), models.AgentDraft{})
	require.ErrorIs(t, err, ErrNameAndPromptRequired)

	assert.Equal(t, []string{MsgNameAndPromptRequired, MsgNameAndPromptRequired, MsgNameAndPromptRequired}, toastMessages(s))
	assert.Empty(t, s.View().PendingRedirect)
}

func TestSaveAgent_RedirectsToDashboard(t *testing.T) {
	s, clock, publisher := newTestSession(t, nil)

	before := len(s.cfg.Catalog.Agents())

	require.NoError(t, s.SaveAgent(t.Context(), models.AgentDraft{Name: "Digest", Prompt: "Summarize"}))
	assert.Equal(t, MsgAgentSaved, lastToast(t, s).Message)
	assert.Equal(t, routes.PageAgentBuilder, s.Route().Page)

	clock.Advance(NavigateDelay)

	require.Eventually(t, func() bool {
		return s.Route().Page == routes.PageDashboard
	}, time.Second, 5*time.Millisecond)

	assert.Len(t, s.cfg.Catalog.Agents(), before)
	assert.Contains(t, publisher.types(), events.AgentSavedEvent)
}

func TestDeployAgent_Succeeds(t *testing.T) {
	s, _, publisher := newTestSession(t, nil)

	require.NoError(t, s.DeployAgent(t.Context(), models.AgentDraft{Name: "Digest", Prompt: "Summarize"}))

	assert.Equal(t, MsgAgentDeployed, lastToast(t, s).Message)
	assert.Contains(t, publisher.types(), events.AgentDeployedEvent)
}

func TestApplyTemplate(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	draft, err := s.ApplyTemplate(t.Context(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Stripe to HubSpot", draft.Name)
	assert.Equal(t, "sales", draft.Category)
	assert.Equal(t, "Stripe to HubSpot", draft.Template)
	assert.Equal(t, draft, s.Draft())

	_, err = s.ApplyTemplate(t.Context(), 404)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, models.ToastWarning, lastToast(t, s).Type)
}

func TestApplyPreset(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	draft, err := s.ApplyPreset(t.Context(), "code assistant")
	require.NoError(t, err)
	assert.Contains(t, draft.Prompt, "programming assistant")

	_, err = s.ApplyPreset(t.Context(), "Poet")
	assert.True(t, IsNotFound(err))
}

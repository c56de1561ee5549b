package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dukex/agentflow/pkg/filter"
	"github.com/dukex/agentflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Collections(t *testing.T) {
	c := Default()

	assert.Len(t, c.Agents(), 5)
	assert.Len(t, c.Templates(), 12)
	assert.Len(t, c.WorkflowSteps(), 3)
	assert.Len(t, c.Categories(), 9)
	assert.Len(t, c.StepPalette(), 11)
	assert.Len(t, c.PromptPresets(), 4)
	assert.Len(t, c.AgentCategories(), 7)
	assert.Len(t, c.RecentLogs(), 2)

	for _, step := range c.WorkflowSteps() {
		assert.NoError(t, step.Validate())
	}
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := Default()

	agents := c.Agents()
	agents[0].Name = "Renamed"
	agents[0].Status = models.AgentStatusPaused

	templates := c.Templates()
	templates[0].Tags[0] = "changed"

	logs := c.LogsForAgent(1)
	logs[0].StepLogs[0].Message = "changed"

	agent, err := c.Agent(1)
	require.NoError(t, err)
	assert.Equal(t, "Google Sheets Auto-Updater", agent.Name)
	assert.Equal(t, models.AgentStatusActive, agent.Status)
	assert.Equal(t, "google-sheets", c.Templates()[0].Tags[0])
	assert.Equal(t, "Form submission received", c.LogsForAgent(1)[0].StepLogs[0].Message)
}

func TestCatalog_AgentNotFound(t *testing.T) {
	_, err := Default().Agent(42)
	require.ErrorIs(t, err, ErrAgentNotFound)
	assert.True(t, IsNotFound(err))
}

func TestCatalog_Template(t *testing.T) {
	template, err := Default().Template(4)
	require.NoError(t, err)
	assert.Equal(t, "Webhook Proxy", template.Name)

	_, err = Default().Template(99)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestCatalog_PromptPreset(t *testing.T) {
	preset, err := Default().PromptPreset("code assistant")
	require.NoError(t, err)
	assert.Contains(t, preset.Prompt, "programming assistant")

	_, err = Default().PromptPreset("poet")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestCatalog_LogsForAgent(t *testing.T) {
	c := Default()

	logs := c.LogsForAgent(2)
	require.Len(t, logs, 1)
	assert.Equal(t, models.RunStatusError, logs[0].Status)
	assert.Equal(t, "linear-create", logs[0].StepLogs[2].Step)

	assert.Empty(t, c.LogsForAgent(5))
}

func TestCatalog_SearchAgents(t *testing.T) {
	result := Default().SearchAgents(filter.Criteria{Category: "sales"})
	require.Len(t, result, 1)
	assert.Equal(t, 3, result[0].ID)
}

func TestCatalog_CountsAndStats(t *testing.T) {
	c := Default()

	assert.Equal(t, []models.Category{
		{ID: "all", Name: "All", Count: 5},
		{ID: "productivity", Name: "Productivity", Count: 2},
		{ID: "development", Name: "Development", Count: 1},
		{ID: "sales", Name: "Sales", Count: 1},
		{ID: "marketing", Name: "Marketing", Count: 1},
	}, c.Counts())

	stats := c.Stats()
	assert.Equal(t, 5, stats.TotalAgents)
	assert.Equal(t, 4, stats.ActiveAgents)
	assert.Equal(t, 1247+856+432+2341+1876, stats.TotalRuns)
}

const fixtureYAML = `
agents:
  - id: 7
    name: Invoice Chaser
    description: Remind customers about overdue invoices
    status: paused
    category: finance
    runs: 12
    prompt: Send a polite reminder for every invoice overdue by 7 days.
templates:
  - id: 1
    name: Invoice Reminders
    category: finance
    difficulty: Easy
    tags: [finance, email]
workflowSteps:
  - id: 1
    type: trigger
    title: Schedule
    config:
      schedule: "0 9 * * 1-5"
executionLogs:
  - id: 1
    agentId: 7
    timestamp: 2024-02-01T09:00:00Z
    status: success
    duration: 640
    stepLogs:
      - step: trigger
        status: success
        message: Schedule fired
`

func TestLoad_YAMLFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	agent, err := c.Agent(7)
	require.NoError(t, err)
	assert.Equal(t, "Invoice Chaser", agent.Name)
	assert.Equal(t, models.AgentStatusPaused, agent.Status)

	steps := c.WorkflowSteps()
	require.Len(t, steps, 1)
	assert.Equal(t, models.TriggerConfig{Schedule: "0 9 * * 1-5"}, steps[0].Config)

	logs := c.LogsForAgent(7)
	require.Len(t, logs, 1)
	assert.Equal(t, 2024, logs[0].Timestamp.Year())
}

func TestLoad_SchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{"agents":[{"id":1,"name":"Broken","status":"sleeping"}],"templates":[]}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidCatalog)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.NotEmpty(t, schemaErr.Details)
}

func TestLoad_InvalidSchedule(t *testing.T) {
	payload := `{"agents":[],"templates":[],"workflowSteps":[{"id":1,"type":"trigger","title":"Cron","config":{"schedule":"whenever"}}]}`

	_, err := Parse("inline", []byte(payload), FormatJSON)
	require.ErrorIs(t, err, ErrInvalidCatalog)
	assert.ErrorIs(t, err, models.ErrInvalidSchedule)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "catalog.toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExport_ParsesBack(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Default().Export(&buf, format))

			loaded, err := Parse("export", buf.Bytes(), format)
			require.NoError(t, err)
			assert.Equal(t, Default().Document(), loaded.Document())
		})
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dukex/agentflow/pkg/catalog"
	"github.com/dukex/agentflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	app := newApp()
	app.Writer = &out

	err := app.Run(context.Background(), append([]string{"agentflow"}, args...))

	return out.String(), err
}

func TestAgentsCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "agents", "--category", "productivity", "--output", "json")
	require.NoError(t, err)

	var agents []models.Agent
	require.NoError(t, json.Unmarshal([]byte(out), &agents))
	require.Len(t, agents, 2)
	assert.Equal(t, "Google Sheets Auto-Updater", agents[0].Name)
	assert.Equal(t, "Email Categorizer", agents[1].Name)
}

func TestAgentsCommand_Table(t *testing.T) {
	out, err := runCLI(t, "agents", "-q", "stripe")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Stripe Customer Manager")
	assert.NotContains(t, out, "Brand Monitor")
}

func TestAgentsCommand_UnknownOutput(t *testing.T) {
	_, err := runCLI(t, "agents", "--output", "xml")
	assert.ErrorIs(t, err, errOutputFormat)
}

func TestTemplatesCommand_MatchesTags(t *testing.T) {
	out, err := runCLI(t, "templates", "-q", "crm", "-c", "SALES", "-o", "json")
	require.NoError(t, err)

	var templates []models.Template
	require.NoError(t, json.Unmarshal([]byte(out), &templates))
	require.Len(t, templates, 1)
	assert.Equal(t, "Stripe to HubSpot", templates[0].Name)
}

func TestValidateCommand(t *testing.T) {
	_, err := runCLI(t, "validate")
	require.ErrorIs(t, err, errMissingPath)

	path := filepath.Join(t.TempDir(), "catalog.yaml")

	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, catalog.Default().Export(file, catalog.FormatYAML))
	require.NoError(t, file.Close())

	out, err := runCLI(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (5 agents, 12 templates, 3 workflow steps)")

	broken := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"agents": "nope"}`), 0o600))

	_, err = runCLI(t, "validate", broken)
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}

func TestExportCommand_RoundTrips(t *testing.T) {
	out, err := runCLI(t, "export", "--format", "json")
	require.NoError(t, err)

	c, err := catalog.Parse("stdout", []byte(out), catalog.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Agents(), c.Agents())
}

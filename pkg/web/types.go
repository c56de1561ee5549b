// Package web provides the HTTP request and response types of the agentflow API.
package web

import (
	"encoding/json"

	"github.com/dukex/agentflow/pkg/catalog"
	"github.com/dukex/agentflow/pkg/events"
	"github.com/dukex/agentflow/pkg/models"
)

// DraftRequest is the agent builder form. Blank names and prompts are accepted
// here and rejected by the builder actions so the session records the toast.
type DraftRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
	Category    string `json:"category"          validate:"omitempty,lowercase"`
	Template    string `json:"template,omitempty"`
	EditID      int    `json:"editId,omitempty"  validate:"gte=0"`
}

func (r DraftRequest) Draft() models.AgentDraft {
	return models.AgentDraft{
		Name:        r.Name,
		Description: r.Description,
		Prompt:      r.Prompt,
		Category:    r.Category,
		Template:    r.Template,
		EditID:      r.EditID,
	}
}

// NavigateRequest moves a session to a client path such as /agent/3.
type NavigateRequest struct {
	Path string `json:"path" validate:"required,notblank,startswith=/"`
}

// PresetRequest applies a named prompt preset to the agent builder.
type PresetRequest struct {
	Name string `json:"name" validate:"required,notblank"`
}

// WorkflowInfoRequest sets the workflow name and description.
type WorkflowInfoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description" validate:"max=500"`
}

// AddStepRequest adds the palette entry at PaletteIndex to the workflow.
type AddStepRequest struct {
	PaletteIndex *int `json:"paletteIndex" validate:"required,gte=0"`
}

// ConfigureStepRequest replaces a step configuration. Type selects the config variant.
type ConfigureStepRequest struct {
	Type   models.StepType `json:"type"   validate:"required,oneof=trigger action condition"`
	Config json.RawMessage `json:"config" validate:"required"`
}

type AgentListResponse struct {
	Agents []models.Agent `json:"agents"`
	Total  int            `json:"total"`
}

type TemplateListResponse struct {
	Templates []models.Template `json:"templates"`
	Total     int               `json:"total"`
}

type CategoriesResponse struct {
	Categories      []models.Category      `json:"categories"`
	AgentCategories []models.AgentCategory `json:"agentCategories"`
	Counts          []models.Category      `json:"counts"`
}

type StatsResponse struct {
	catalog.Stats

	RecentLogs []models.ExecutionLog `json:"recentLogs"`
}

type ActivityResponse struct {
	Activities []events.Activity `json:"activities"`
}

type WebhookResponse struct {
	URL string `json:"url"`
}

type TestRunResponse struct {
	State  models.TestRunState   `json:"state"`
	Result *models.TestRunResult `json:"result"`
}

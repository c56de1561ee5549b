// Package catalog provides the read-only mock collections served by agentflow.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dukex/agentflow/pkg/filter"
	"github.com/dukex/agentflow/pkg/models"
)

// Document is the serialized form of a catalog, used by fixtures and exports.
type Document struct {
	Agents          []models.Agent         `json:"agents"`
	Templates       []models.Template      `json:"templates"`
	WorkflowSteps   []models.WorkflowStep  `json:"workflowSteps"`
	StepPalette     []models.PaletteStep   `json:"stepPalette"`
	Categories      []models.Category      `json:"categories"`
	AgentCategories []models.AgentCategory `json:"agentCategories"`
	PromptPresets   []models.PromptPreset  `json:"promptPresets"`
	ExecutionLogs   []models.ExecutionLog  `json:"executionLogs"`
}

// Catalog holds the mock collections. Accessors return copies, so the underlying
// collections cannot be mutated by callers.
type Catalog struct {
	doc Document
}

// Default returns the catalog built from the built-in mock data.
func Default() *Catalog {
	return &Catalog{doc: defaultDocument()}
}

// New builds a catalog from a document, checking every workflow step.
func New(doc Document) (*Catalog, error) {
	for _, step := range doc.WorkflowSteps {
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%w: workflow step %d: %w", ErrInvalidCatalog, step.ID, err)
		}
	}

	return &Catalog{doc: cloneDocument(doc)}, nil
}

// Document returns a copy of the catalog contents.
func (c *Catalog) Document() Document {
	return cloneDocument(c.doc)
}

// Agents returns every agent in catalog order.
func (c *Catalog) Agents() []models.Agent {
	return slices.Clone(c.doc.Agents)
}

// Agent returns the agent with the given id.
func (c *Catalog) Agent(id int) (models.Agent, error) {
	for _, agent := range c.doc.Agents {
		if agent.ID == id {
			return agent, nil
		}
	}

	return models.Agent{}, fmt.Errorf("%w: %d", ErrAgentNotFound, id)
}

// SearchAgents filters agents by query and category.
func (c *Catalog) SearchAgents(criteria filter.Criteria) []models.Agent {
	return filter.ApplyCriteria(c.doc.Agents, criteria)
}

// Templates returns every template in catalog order.
func (c *Catalog) Templates() []models.Template {
	return cloneTemplates(c.doc.Templates)
}

// Template returns the template with the given id.
func (c *Catalog) Template(id int) (models.Template, error) {
	for _, template := range c.doc.Templates {
		if template.ID == id {
			template.Tags = slices.Clone(template.Tags)

			return template, nil
		}
	}

	return models.Template{}, fmt.Errorf("%w: %d", ErrTemplateNotFound, id)
}

// SearchTemplates filters templates by query and category.
func (c *Catalog) SearchTemplates(criteria filter.Criteria) []models.Template {
	return cloneTemplates(filter.ApplyCriteria(c.doc.Templates, criteria))
}

// WorkflowSteps returns the sample workflow.
func (c *Catalog) WorkflowSteps() []models.WorkflowStep {
	return cloneSteps(c.doc.WorkflowSteps)
}

// StepPalette returns the steps that can be added in the workflow builder.
func (c *Catalog) StepPalette() []models.PaletteStep {
	return slices.Clone(c.doc.StepPalette)
}

// Categories returns the template categories with their display counts.
func (c *Catalog) Categories() []models.Category {
	return slices.Clone(c.doc.Categories)
}

// AgentCategories returns the categories selectable in the agent builder.
func (c *Catalog) AgentCategories() []models.AgentCategory {
	return slices.Clone(c.doc.AgentCategories)
}

// PromptPresets returns the canned prompts offered by the agent builder.
func (c *Catalog) PromptPresets() []models.PromptPreset {
	return slices.Clone(c.doc.PromptPresets)
}

// PromptPreset returns the preset with the given name, case-insensitively.
func (c *Catalog) PromptPreset(name string) (models.PromptPreset, error) {
	for _, preset := range c.doc.PromptPresets {
		if strings.EqualFold(preset.Name, name) {
			return preset, nil
		}
	}

	return models.PromptPreset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
}

// LogsForAgent returns the execution logs of one agent, newest first as stored.
func (c *Catalog) LogsForAgent(agentID int) []models.ExecutionLog {
	logs := make([]models.ExecutionLog, 0)

	for _, log := range c.doc.ExecutionLogs {
		if log.AgentID == agentID {
			logs = append(logs, cloneLog(log))
		}
	}

	return logs
}

// RecentLogs returns every execution log.
func (c *Catalog) RecentLogs() []models.ExecutionLog {
	logs := make([]models.ExecutionLog, len(c.doc.ExecutionLogs))
	for i, log := range c.doc.ExecutionLogs {
		logs[i] = cloneLog(log)
	}

	return logs
}

// Counts computes the dashboard category list from the agents: an "all" entry followed by
// one entry per agent category in order of first appearance.
func (c *Catalog) Counts() []models.Category {
	counts := []models.Category{{ID: filter.AllCategories, Name: "All", Count: len(c.doc.Agents)}}
	index := map[string]int{}

	for _, agent := range c.doc.Agents {
		key := strings.ToLower(agent.Category)
		if i, ok := index[key]; ok {
			counts[i].Count++

			continue
		}

		index[key] = len(counts)
		counts = append(counts, models.Category{ID: key, Name: c.categoryLabel(key), Count: 1})
	}

	return counts
}

// Stats summarizes the agents for the dashboard header.
type Stats struct {
	TotalAgents  int               `json:"totalAgents"`
	ActiveAgents int               `json:"activeAgents"`
	TotalRuns    int               `json:"totalRuns"`
	Categories   []models.Category `json:"categories"`
}

// Stats computes the dashboard statistics.
func (c *Catalog) Stats() Stats {
	stats := Stats{TotalAgents: len(c.doc.Agents), Categories: c.Counts()}

	for _, agent := range c.doc.Agents {
		if agent.Status == models.AgentStatusActive {
			stats.ActiveAgents++
		}

		stats.TotalRuns += agent.Runs
	}

	return stats
}

func (c *Catalog) categoryLabel(key string) string {
	for _, category := range c.doc.AgentCategories {
		if category.Value == key {
			return category.Label
		}
	}

	for _, category := range c.doc.Categories {
		if category.ID == key {
			return category.Name
		}
	}

	if key == "" {
		return key
	}

	return strings.ToUpper(key[:1]) + key[1:]
}

func cloneDocument(doc Document) Document {
	logs := make([]models.ExecutionLog, len(doc.ExecutionLogs))
	for i, log := range doc.ExecutionLogs {
		logs[i] = cloneLog(log)
	}

	return Document{
		Agents:          slices.Clone(doc.Agents),
		Templates:       cloneTemplates(doc.Templates),
		WorkflowSteps:   cloneSteps(doc.WorkflowSteps),
		StepPalette:     slices.Clone(doc.StepPalette),
		Categories:      slices.Clone(doc.Categories),
		AgentCategories: slices.Clone(doc.AgentCategories),
		PromptPresets:   slices.Clone(doc.PromptPresets),
		ExecutionLogs:   logs,
	}
}

func cloneTemplates(templates []models.Template) []models.Template {
	cloned := make([]models.Template, len(templates))
	for i, template := range templates {
		template.Tags = slices.Clone(template.Tags)
		cloned[i] = template
	}

	return cloned
}

func cloneSteps(steps []models.WorkflowStep) []models.WorkflowStep {
	cloned := make([]models.WorkflowStep, len(steps))
	for i, step := range steps {
		cloned[i] = step.Clone()
	}

	return cloned
}

func cloneLog(log models.ExecutionLog) models.ExecutionLog {
	log.StepLogs = slices.Clone(log.StepLogs)

	return log
}

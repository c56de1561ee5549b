// Package models defines the domain records served by agentflow: agents, templates,
// workflow steps, execution logs and toast notifications.
package models

// AgentStatus represents the operational state of an agent.
type AgentStatus string

const (
	AgentStatusActive AgentStatus = "active"
	AgentStatusPaused AgentStatus = "paused"
	AgentStatusError  AgentStatus = "error" // Present in data, no transition leads here
)

// Valid reports whether s is a known agent status.
func (s AgentStatus) Valid() bool {
	switch s {
	case AgentStatusActive, AgentStatusPaused, AgentStatusError:
		return true
	default:
		return false
	}
}

// Toggle returns the status reached by the pause/activate switch.
// Only active and paused agents can be toggled.
func (s AgentStatus) Toggle() (AgentStatus, error) {
	switch s {
	case AgentStatusActive:
		return AgentStatusPaused, nil
	case AgentStatusPaused:
		return AgentStatusActive, nil
	default:
		return s, ErrInvalidStatusTransition
	}
}

// Agent is a configured automation unit with a prompt and a status.
type Agent struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      AgentStatus `json:"status"`
	LastRun     string      `json:"lastRun"`
	Category    string      `json:"category"`
	Template    string      `json:"template"`
	Runs        int         `json:"runs"`
	Prompt      string      `json:"prompt"`
}

// SearchFields returns the fields matched by free-text search.
func (a Agent) SearchFields() []string {
	return []string{a.Name, a.Description}
}

// CategoryKey returns the category used by category filters.
func (a Agent) CategoryKey() string {
	return a.Category
}

// AgentDraft is the agent builder form state.
type AgentDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
	Category    string `json:"category"`
	Template    string `json:"template,omitempty"`
	EditID      int    `json:"editId,omitempty"`
}

package models

// Difficulty grades how much setup a template needs.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Template is a reusable starting configuration for an agent.
type Template struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Icon          string     `json:"icon"`
	Difficulty    Difficulty `json:"difficulty"`
	EstimatedTime string     `json:"estimatedTime"`
	Tags          []string   `json:"tags"`
	DefaultPrompt string     `json:"defaultPrompt"`
}

// SearchFields returns the fields matched by free-text search. Tags are searched too.
func (t Template) SearchFields() []string {
	fields := make([]string, 0, len(t.Tags)+2)
	fields = append(fields, t.Name, t.Description)

	return append(fields, t.Tags...)
}

// CategoryKey returns the category used by category filters.
func (t Template) CategoryKey() string {
	return t.Category
}

// Category is a catalog grouping with a display count.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AgentCategory is a category selectable in the agent builder.
type AgentCategory struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// PromptPreset is a canned system prompt offered by the agent builder.
type PromptPreset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

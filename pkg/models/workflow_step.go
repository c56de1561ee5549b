package models

import (
	"encoding/json"
	"fmt"
	"slices"
)

// StepType identifies the role of a step in a linear workflow.
type StepType string

const (
	StepTypeTrigger   StepType = "trigger"
	StepTypeAction    StepType = "action"
	StepTypeCondition StepType = "condition"
)

// StepConfig is the type-specific configuration carried by a workflow step.
// Exactly one variant exists per StepType.
type StepConfig interface {
	StepType() StepType
}

// TriggerConfig configures what starts a workflow.
type TriggerConfig struct {
	Source   string `json:"source,omitempty"`
	URL      string `json:"url,omitempty"`
	Schedule string `json:"schedule,omitempty"` // 5-field cron expression
}

func (TriggerConfig) StepType() StepType { return StepTypeTrigger }

// ActionConfig configures a unit of work performed by a workflow.
type ActionConfig struct {
	Model         string `json:"model,omitempty"`
	Prompt        string `json:"prompt,omitempty"`
	SpreadsheetID string `json:"spreadsheetId,omitempty"`
	Worksheet     string `json:"worksheet,omitempty"`
	URL           string `json:"url,omitempty"`
	Method        string `json:"method,omitempty"`
	Channel       string `json:"channel,omitempty"`
	To            string `json:"to,omitempty"`
}

func (ActionConfig) StepType() StepType { return StepTypeAction }

// ConditionConfig configures filtering or branching.
type ConditionConfig struct {
	Expression string   `json:"expression,omitempty"`
	Branches   []string `json:"branches,omitempty"`
}

func (ConditionConfig) StepType() StepType { return StepTypeCondition }

// WorkflowStep is one node of a linear workflow.
type WorkflowStep struct {
	ID          int64      `json:"id"`
	Type        StepType   `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Config      StepConfig `json:"config"`
}

// NewStepConfig returns the empty config variant for a step type.
func NewStepConfig(stepType StepType) (StepConfig, error) {
	switch stepType {
	case StepTypeTrigger:
		return TriggerConfig{}, nil
	case StepTypeAction:
		return ActionConfig{}, nil
	case StepTypeCondition:
		return ConditionConfig{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStepType, stepType)
	}
}

// Validate checks that the config variant matches the step type.
func (s WorkflowStep) Validate() error {
	if _, err := NewStepConfig(s.Type); err != nil {
		return err
	}

	if s.Config == nil {
		return nil
	}

	if s.Config.StepType() != s.Type {
		return fmt.Errorf("%w: %s step carries %s config", ErrInvalidStepConfig, s.Type, s.Config.StepType())
	}

	if trigger, ok := s.Config.(TriggerConfig); ok && trigger.Schedule != "" {
		if _, err := ParseSchedule(trigger.Schedule); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns a deep copy of the step.
func (s WorkflowStep) Clone() WorkflowStep {
	if condition, ok := s.Config.(ConditionConfig); ok {
		condition.Branches = slices.Clone(condition.Branches)
		s.Config = condition
	}

	return s
}

// UnmarshalJSON decodes the config variant selected by the step type.
func (s *WorkflowStep) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          int64           `json:"id"`
		Type        StepType        `json:"type"`
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Icon        string          `json:"icon"`
		Config      json.RawMessage `json:"config"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	config, err := DecodeStepConfig(raw.Type, raw.Config)
	if err != nil {
		return err
	}

	*s = WorkflowStep{
		ID:          raw.ID,
		Type:        raw.Type,
		Title:       raw.Title,
		Description: raw.Description,
		Icon:        raw.Icon,
		Config:      config,
	}

	return nil
}

// DecodeStepConfig decodes a JSON config into the variant for stepType. Empty or null data
// yields the zero variant.
func DecodeStepConfig(stepType StepType, data json.RawMessage) (StepConfig, error) {
	empty := len(data) == 0 || string(data) == "null"

	switch stepType {
	case StepTypeTrigger:
		var config TriggerConfig
		if !empty {
			if err := json.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidStepConfig, err)
			}
		}

		return config, nil
	case StepTypeAction:
		var config ActionConfig
		if !empty {
			if err := json.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidStepConfig, err)
			}
		}

		return config, nil
	case StepTypeCondition:
		var config ConditionConfig
		if !empty {
			if err := json.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidStepConfig, err)
			}
		}

		return config, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStepType, stepType)
	}
}

// PaletteStep is an entry of the workflow builder step palette.
type PaletteStep struct {
	Type        StepType `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
}

package models

import "slices"

// WorkflowDraft is the workflow builder state of a session.
type WorkflowDraft struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Steps        []WorkflowStep `json:"steps"`
	SelectedStep *int64         `json:"selectedStep,omitempty"`
}

// StepIndex returns the position of the step with the given id, or -1.
func (d *WorkflowDraft) StepIndex(id int64) int {
	return slices.IndexFunc(d.Steps, func(step WorkflowStep) bool {
		return step.ID == id
	})
}

// Clone returns a deep copy of the draft.
func (d WorkflowDraft) Clone() WorkflowDraft {
	steps := make([]WorkflowStep, len(d.Steps))
	for i, step := range d.Steps {
		steps[i] = step.Clone()
	}

	d.Steps = steps
	if d.SelectedStep != nil {
		selected := *d.SelectedStep
		d.SelectedStep = &selected
	}

	return d
}

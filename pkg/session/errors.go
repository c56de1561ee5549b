package session

import (
	"errors"
	"fmt"

	"github.com/dukex/agentflow/pkg/catalog"
	"github.com/dukex/agentflow/pkg/models"
	"github.com/dukex/agentflow/pkg/routes"
)

// Validation errors (400). The matching error toast is left on the session.
var (
	ErrPromptRequired        = errors.New("prompt is required")
	ErrNameAndPromptRequired = errors.New("agent name and prompt are required")
	ErrWorkflowNameRequired  = errors.New("workflow name is required")
	ErrStepsRequired         = errors.New("workflow must have at least one step")
	ErrInvalidStatus         = errors.New("agent status cannot be toggled")
	ErrInvalidPaletteIndex   = errors.New("invalid step palette index")
)

// Conflicts (409).
var (
	ErrRunInProgress = errors.New("test run already in progress")
	ErrBusy          = errors.New("another action is in progress")
	ErrNoAgentOpen   = errors.New("no agent is open")
)

// Not found (404).
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrStepNotFound    = errors.New("workflow step not found")
	ErrUnknownRoute    = routes.ErrUnknownRoute
	ErrAgentNotFound   = catalog.ErrAgentNotFound
)

var ErrSessionClosed = errors.New("session closed")

// ActionError wraps a failed session action with the code sent to clients.
type ActionError struct {
	Op      string // Action name
	Code    string // Error code for API responses
	Message string // Human-readable message, usually the toast text
	Err     error  // Underlying error
}

func (e *ActionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func (e *ActionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newActionError(op, code, message string, err error) *ActionError {
	return &ActionError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsValidationError checks if an error should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrPromptRequired) ||
		errors.Is(err, ErrNameAndPromptRequired) ||
		errors.Is(err, ErrWorkflowNameRequired) ||
		errors.Is(err, ErrStepsRequired) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidPaletteIndex) ||
		errors.Is(err, models.ErrInvalidStepConfig) ||
		errors.Is(err, models.ErrUnknownStepType) ||
		errors.Is(err, models.ErrInvalidSchedule)
}

// IsConflictError checks if an error should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrRunInProgress) ||
		errors.Is(err, ErrBusy) ||
		errors.Is(err, ErrNoAgentOpen) ||
		errors.Is(err, ErrSessionClosed)
}

// IsNotFound checks if an error should return HTTP 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrStepNotFound) ||
		errors.Is(err, ErrUnknownRoute) ||
		catalog.IsNotFound(err)
}

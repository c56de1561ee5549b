package models

import "errors"

var (
	// ErrInvalidStatusTransition is returned when toggling an agent whose status has no counterpart.
	ErrInvalidStatusTransition = errors.New("invalid agent status transition")

	// ErrInvalidStepConfig is returned when a step config does not fit its step type.
	ErrInvalidStepConfig = errors.New("invalid workflow step config")

	// ErrUnknownStepType is returned for step types other than trigger, action and condition.
	ErrUnknownStepType = errors.New("unknown workflow step type")

	// ErrInvalidSchedule is returned when a trigger schedule is not a valid cron expression.
	ErrInvalidSchedule = errors.New("invalid schedule configuration")
)

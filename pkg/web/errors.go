package web

import (
	"errors"

	"github.com/dukex/agentflow/pkg/catalog"
	"github.com/dukex/agentflow/pkg/session"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, kind, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType(kind).
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleSessionError maps catalog and session errors to problems. Validation
// failures keep the toast text as detail so clients can show it.
func handleSessionError(c fiber.Ctx, err error) error {
	switch {
	case session.IsValidationError(err):
		problem := problems.NewStatusProblem(400).
			WithInstance(c.Path()).
			WithType(errorCode(err, "validation_error")).
			WithDetail(errorDetail(err))

		return c.Status(fiber.StatusBadRequest).JSON(problem)

	case session.IsConflictError(err):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType(errorCode(err, "conflict")).
			WithDetail(errorDetail(err))

		return c.Status(fiber.StatusConflict).JSON(problem)

	case errors.Is(err, session.ErrSessionNotFound):
		return notFound(c, "session_not_found", "session not found")

	case errors.Is(err, catalog.ErrAgentNotFound):
		return notFound(c, "agent_not_found", "agent not found")

	case errors.Is(err, catalog.ErrTemplateNotFound):
		return notFound(c, "template_not_found", "template not found")

	case errors.Is(err, catalog.ErrPresetNotFound):
		return notFound(c, "preset_not_found", "prompt preset not found")

	case errors.Is(err, session.ErrStepNotFound):
		return notFound(c, "step_not_found", "workflow step not found")

	case errors.Is(err, session.ErrUnknownRoute):
		return notFound(c, "unknown_route", err.Error())

	default:
		return internalError(c, err)
	}
}

func errorCode(err error, fallback string) string {
	var actionErr *session.ActionError
	if errors.As(err, &actionErr) && actionErr.Code != "" {
		return actionErr.Code
	}

	return fallback
}

func errorDetail(err error) string {
	var actionErr *session.ActionError
	if errors.As(err, &actionErr) && actionErr.Message != "" {
		return actionErr.Message
	}

	return err.Error()
}

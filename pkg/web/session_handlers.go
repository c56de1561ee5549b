package web

import (
	"errors"
	"strconv"

	"github.com/dukex/agentflow/pkg/models"
	"github.com/dukex/agentflow/pkg/session"
	"github.com/gofiber/fiber/v3"
)

// agentSession returns the session with the agent named in the path open,
// opening it first when the session shows another page.
func (h *APIHandlers) agentSession(c fiber.Ctx) (*session.Session, error) {
	s, err := h.session(c)
	if err != nil {
		return nil, err
	}

	id, err := intParam(c, "id")
	if err != nil {
		return nil, errAgentID
	}

	if _, err := s.OpenAgent(c.Context(), id); err != nil {
		return nil, err
	}

	return s, nil
}

func (h *APIHandlers) agentError(c fiber.Ctx, err error) error {
	if errors.Is(err, errAgentID) {
		return badRequest(c, "Agent ID must be an integer")
	}

	return handleSessionError(c, err)
}

func (h *APIHandlers) OpenAgent(c fiber.Ctx) error {
	s, err := h.agentSession(c)
	if err != nil {
		return h.agentError(c, err)
	}

	return c.JSON(s.View().AgentDetail)
}

func (h *APIHandlers) ToggleAgent(c fiber.Ctx) error {
	s, err := h.agentSession(c)
	if err != nil {
		return h.agentError(c, err)
	}

	if err := s.ToggleStatus(c.Context()); err != nil {
		return handleSessionError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(s.View().AgentDetail)
}

func (h *APIHandlers) RunAgent(c fiber.Ctx) error {
	s, err := h.agentSession(c)
	if err != nil {
		return h.agentError(c, err)
	}

	if err := s.RunAgent(c.Context()); err != nil {
		return handleSessionError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(s.View().AgentDetail)
}

func (h *APIHandlers) CopyWebhook(c fiber.Ctx) error {
	s, err := h.agentSession(c)
	if err != nil {
		return h.agentError(c, err)
	}

	url, err := s.CopyWebhook(c.Context())
	if err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(WebhookResponse{URL: url})
}

func (h *APIHandlers) DeleteAgent(c fiber.Ctx) error {
	s, err := h.agentSession(c)
	if err != nil {
		return h.agentError(c, err)
	}

	if err := s.DeleteAgent(c.Context()); err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(s.View())
}

func (h *APIHandlers) GetOpenAgentLogs(c fiber.Ctx) error {
	s, err := h.agentSession(c)
	if err != nil {
		return h.agentError(c, err)
	}

	logs, err := s.Logs()
	if err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(fiber.Map{"logs": logs})
}

func (h *APIHandlers) GetWorkflowBuilder(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(s.Workflow())
}

func (h *APIHandlers) PutWorkflowInfo(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	var req WorkflowInfoRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := s.SetWorkflowInfo(c.Context(), req.Name, req.Description); err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(s.Workflow())
}

func (h *APIHandlers) AddStep(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	var req AddStepRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	step, err := s.AddStep(c.Context(), *req.PaletteIndex)
	if err != nil {
		return handleSessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(step)
}

func stepID(c fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("stepId"), 10, 64)
}

func (h *APIHandlers) RemoveStep(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	id, err := stepID(c)
	if err != nil {
		return badRequest(c, "Step ID must be an integer")
	}

	if err := s.RemoveStep(c.Context(), id); err != nil {
		return handleSessionError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) DuplicateStep(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	id, err := stepID(c)
	if err != nil {
		return badRequest(c, "Step ID must be an integer")
	}

	step, err := s.DuplicateStep(c.Context(), id)
	if err != nil {
		return handleSessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(step)
}

func (h *APIHandlers) SelectStep(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	id, err := stepID(c)
	if err != nil {
		return badRequest(c, "Step ID must be an integer")
	}

	if err := s.SelectStep(c.Context(), id); err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(s.Workflow())
}

func (h *APIHandlers) ConfigureStep(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	id, err := stepID(c)
	if err != nil {
		return badRequest(c, "Step ID must be an integer")
	}

	var req ConfigureStepRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	config, err := models.DecodeStepConfig(req.Type, req.Config)
	if err != nil {
		return badRequest(c, err.Error())
	}

	step, err := s.ConfigureStep(c.Context(), id, config)
	if err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(step)
}

func (h *APIHandlers) SaveWorkflow(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	if err := s.SaveWorkflow(c.Context()); err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(s.View())
}

func (h *APIHandlers) TestWorkflow(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	if err := s.TestWorkflow(c.Context()); err != nil {
		return handleSessionError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(s.Workflow())
}

package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dukex/agentflow/pkg/activity"
	"github.com/dukex/agentflow/pkg/catalog"
	"github.com/dukex/agentflow/pkg/filter"
	"github.com/dukex/agentflow/pkg/models"
	"github.com/dukex/agentflow/pkg/session"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v3"
)

var (
	errInvalidJSON = errors.New("invalid JSON format")
	errAgentID     = errors.New("agent ID must be an integer")
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type APIHandlers struct {
	catalog   *catalog.Catalog
	sessions  *session.Manager
	feed      activity.Feed
	validator *validator.Validate
}

func NewAPIHandlers(
	catalog *catalog.Catalog,
	sessions *session.Manager,
	feed activity.Feed,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		catalog:   catalog,
		sessions:  sessions,
		feed:      feed,
		validator: validator,
	}
}

// NewValidator returns the request validator, with notblank registered.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}

	return validate
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	status := "healthy"
	message := "agentflow API is healthy"
	httpStatus := http.StatusOK

	feedCheck := "ok"
	if _, err := h.feed.Recent(c.Context(), 1); err != nil {
		feedCheck = err.Error()
		status = "unhealthy"
		message = "agentflow API is unhealthy"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"catalog":  fiber.Map{"agents": len(h.catalog.Agents()), "templates": len(h.catalog.Templates())},
			"activity": feedCheck,
			"sessions": h.sessions.Len(),
		},
		"timestamp": time.Now().UTC(),
	})
}

func criteria(c fiber.Ctx) filter.Criteria {
	return filter.Criteria{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}
}

func intParam(c fiber.Ctx, name string) (int, error) {
	return strconv.Atoi(c.Params(name))
}

func (h *APIHandlers) GetAgents(c fiber.Ctx) error {
	agents := h.catalog.SearchAgents(criteria(c))

	return c.JSON(AgentListResponse{Agents: agents, Total: len(agents)})
}

func (h *APIHandlers) GetAgent(c fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return badRequest(c, "Agent ID must be an integer")
	}

	agent, err := h.catalog.Agent(id)
	if err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(agent)
}

func (h *APIHandlers) GetAgentLogs(c fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return badRequest(c, "Agent ID must be an integer")
	}

	if _, err := h.catalog.Agent(id); err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(fiber.Map{"logs": h.catalog.LogsForAgent(id)})
}

func (h *APIHandlers) GetTemplates(c fiber.Ctx) error {
	templates := h.catalog.SearchTemplates(criteria(c))

	return c.JSON(TemplateListResponse{Templates: templates, Total: len(templates)})
}

func (h *APIHandlers) GetTemplate(c fiber.Ctx) error {
	id, err := intParam(c, "id")
	if err != nil {
		return badRequest(c, "Template ID must be an integer")
	}

	template, err := h.catalog.Template(id)
	if err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(template)
}

func (h *APIHandlers) GetCategories(c fiber.Ctx) error {
	return c.JSON(CategoriesResponse{
		Categories:      h.catalog.Categories(),
		AgentCategories: h.catalog.AgentCategories(),
		Counts:          h.catalog.Counts(),
	})
}

func (h *APIHandlers) GetWorkflowSteps(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"steps": h.catalog.WorkflowSteps()})
}

func (h *APIHandlers) GetStepPalette(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"palette": h.catalog.StepPalette()})
}

func (h *APIHandlers) GetPromptPresets(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"presets": h.catalog.PromptPresets()})
}

func (h *APIHandlers) GetStats(c fiber.Ctx) error {
	return c.JSON(StatsResponse{
		Stats:      h.catalog.Stats(),
		RecentLogs: h.catalog.RecentLogs(),
	})
}

func (h *APIHandlers) GetActivity(c fiber.Ctx) error {
	limit := defaultActivityLimit

	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return badRequest(c, "limit must be a positive integer")
		}

		limit = min(parsed, maxActivityLimit)
	}

	activities, err := h.feed.Recent(c.Context(), limit)
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(ActivityResponse{Activities: activities})
}

func (h *APIHandlers) session(c fiber.Ctx) (*session.Session, error) {
	return h.sessions.Get(c.Params("sid"))
}

func (h *APIHandlers) CreateSession(c fiber.Ctx) error {
	s := h.sessions.Create(c.Context())

	return c.Status(fiber.StatusCreated).JSON(s.View())
}

func (h *APIHandlers) GetSession(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(s.View())
}

func (h *APIHandlers) DeleteSession(c fiber.Ctx) error {
	if err := h.sessions.Close(c.Context(), c.Params("sid")); err != nil {
		return handleSessionError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) Navigate(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	var req NavigateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := s.Navigate(c.Context(), req.Path); err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(s.View())
}

func (h *APIHandlers) GetToasts(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(fiber.Map{"toasts": s.Toasts()})
}

func (h *APIHandlers) DismissToast(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	if !s.DismissToast(c.Params("toastId")) {
		return notFound(c, "toast_not_found", "toast not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// draftFromBody reads an optional draft; an empty body keeps the session draft.
func (h *APIHandlers) draftFromBody(c fiber.Ctx, s *session.Session) (models.AgentDraft, error) {
	if len(c.Body()) == 0 {
		return s.Draft(), nil
	}

	var req DraftRequest
	if err := c.Bind().JSON(&req); err != nil {
		return models.AgentDraft{}, errInvalidJSON
	}

	if err := h.validator.Struct(req); err != nil {
		return models.AgentDraft{}, err
	}

	return req.Draft(), nil
}

func (h *APIHandlers) PutDraft(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	var req DraftRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if err := s.SetDraft(c.Context(), req.Draft()); err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(s.View().AgentBuilder)
}

func (h *APIHandlers) ApplyTemplate(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	id, err := intParam(c, "templateId")
	if err != nil {
		return badRequest(c, "Template ID must be an integer")
	}

	if _, err := s.ApplyTemplate(c.Context(), id); err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(s.View().AgentBuilder)
}

func (h *APIHandlers) ApplyPreset(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	var req PresetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	if _, err := s.ApplyPreset(c.Context(), req.Name); err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(s.View().AgentBuilder)
}

func (h *APIHandlers) StartTestRun(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	draft, err := h.draftFromBody(c, s)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := s.TestRun(c.Context(), draft); err != nil {
		return handleSessionError(c, err)
	}

	state, result := s.TestRunStatus()

	return c.Status(fiber.StatusAccepted).JSON(TestRunResponse{State: state, Result: result})
}

func (h *APIHandlers) GetTestRun(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	state, result := s.TestRunStatus()

	return c.JSON(TestRunResponse{State: state, Result: result})
}

func (h *APIHandlers) SaveAgent(c fiber.Ctx) error {
	return h.submitDraft(c, (*session.Session).SaveAgent)
}

func (h *APIHandlers) DeployAgent(c fiber.Ctx) error {
	return h.submitDraft(c, (*session.Session).DeployAgent)
}

func (h *APIHandlers) submitDraft(c fiber.Ctx, submit func(*session.Session, context.Context, models.AgentDraft) error) error {
	s, err := h.session(c)
	if err != nil {
		return handleSessionError(c, err)
	}

	draft, err := h.draftFromBody(c, s)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := submit(s, c.Context(), draft); err != nil {
		return handleSessionError(c, err)
	}

	return c.JSON(s.View())
}

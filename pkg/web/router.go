package web

import "github.com/gofiber/fiber/v3"

// Register mounts the catalog, activity and session endpoints on router.
func (h *APIHandlers) Register(router fiber.Router) {
	agents := router.Group("/agents")
	agents.Get("/", h.GetAgents)
	agents.Get("/:id", h.GetAgent)
	agents.Get("/:id/logs", h.GetAgentLogs)

	templates := router.Group("/templates")
	templates.Get("/", h.GetTemplates)
	templates.Get("/:id", h.GetTemplate)

	router.Get("/categories", h.GetCategories)
	router.Get("/workflow-steps", h.GetWorkflowSteps)
	router.Get("/workflow-steps/palette", h.GetStepPalette)
	router.Get("/prompt-presets", h.GetPromptPresets)
	router.Get("/stats", h.GetStats)
	router.Get("/activity", h.GetActivity)
	router.Get("/health", h.HealthCheck)

	sessions := router.Group("/sessions")
	sessions.Post("/", h.CreateSession)
	sessions.Get("/:sid", h.GetSession)
	sessions.Delete("/:sid", h.DeleteSession)
	sessions.Post("/:sid/navigate", h.Navigate)
	sessions.Get("/:sid/toasts", h.GetToasts)
	sessions.Delete("/:sid/toasts/:toastId", h.DismissToast)

	builder := sessions.Group("/:sid/agent-builder")
	builder.Put("/draft", h.PutDraft)
	builder.Post("/template/:templateId", h.ApplyTemplate)
	builder.Post("/preset", h.ApplyPreset)
	builder.Post("/test-run", h.StartTestRun)
	builder.Get("/test-run", h.GetTestRun)
	builder.Post("/save", h.SaveAgent)
	builder.Post("/deploy", h.DeployAgent)

	detail := sessions.Group("/:sid/agents/:id")
	detail.Post("/open", h.OpenAgent)
	detail.Get("/logs", h.GetOpenAgentLogs)
	detail.Post("/toggle", h.ToggleAgent)
	detail.Post("/run", h.RunAgent)
	detail.Post("/webhook", h.CopyWebhook)
	detail.Delete("/", h.DeleteAgent)

	workflow := sessions.Group("/:sid/workflow-builder")
	workflow.Get("/", h.GetWorkflowBuilder)
	workflow.Put("/info", h.PutWorkflowInfo)
	workflow.Post("/steps", h.AddStep)
	workflow.Delete("/steps/:stepId", h.RemoveStep)
	workflow.Post("/steps/:stepId/duplicate", h.DuplicateStep)
	workflow.Post("/steps/:stepId/select", h.SelectStep)
	workflow.Put("/steps/:stepId", h.ConfigureStep)
	workflow.Post("/save", h.SaveWorkflow)
	workflow.Post("/test", h.TestWorkflow)
}

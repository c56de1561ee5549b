// Package main provides the agentflow API server and catalog tooling.
package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dukex/agentflow/pkg/activity"
	"github.com/dukex/agentflow/pkg/catalog"
	"github.com/dukex/agentflow/pkg/session"
	"github.com/dukex/agentflow/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger   *slog.Logger
	catalog  *catalog.Catalog
	sessions *session.Manager
	feed     activity.Feed
	validate *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	catalog *catalog.Catalog,
	sessions *session.Manager,
	feed activity.Feed,
) *API {
	return &API{
		logger:   logger,
		catalog:  catalog,
		sessions: sessions,
		feed:     feed,
		validate: web.NewValidator(),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.catalog, a.sessions, a.feed, a.validate)

	app := fiber.New(fiber.Config{AppName: "agentflow"})
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("agentflow API")
	})

	handlers.Register(app)

	return app
}

// Start serves the API until ctx is cancelled.
func (a *API) Start(ctx context.Context, port int) error {
	app := a.App()

	go func() {
		<-ctx.Done()

		a.logger.Info("Shutting down API server")

		if err := app.Shutdown(); err != nil {
			a.logger.Error("Failed to shut down API server", "error", err)
		}
	}()

	return app.Listen(":"+strconv.Itoa(port), fiber.ListenConfig{DisableStartupMessage: true})
}

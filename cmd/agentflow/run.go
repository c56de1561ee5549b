package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukex/agentflow/pkg/activity"
	"github.com/dukex/agentflow/pkg/channels/kafka"
	"github.com/dukex/agentflow/pkg/cmd"
	"github.com/dukex/agentflow/pkg/log"
	"github.com/dukex/agentflow/pkg/notifier"
	"github.com/dukex/agentflow/pkg/otelhelper"
	"github.com/dukex/agentflow/pkg/session"
	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v3"
)

const defaultPort = 9091

func catalogFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "catalog",
		Usage:   "Path to a YAML or JSON catalog fixture (built-in catalog when empty)",
		Sources: cli.EnvVars("CATALOG_PATH"),
	}
}

func RunCommand() *cli.Command {
	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Start the API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				Value:   log.FormatText,
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
			catalogFlag(),
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "kafka-brokers",
				Usage:   "Comma separated Kafka brokers",
				Value:   "localhost:9092",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
			&cli.StringFlag{
				Name:    "activity-url",
				Usage:   "Activity feed storage (memory, redis://host:port/db)",
				Value:   "memory",
				Sources: cli.EnvVars("ACTIVITY_URL"),
			},
			&cli.IntFlag{
				Name:    "activity-capacity",
				Usage:   "Number of recent activities kept",
				Value:   activity.DefaultCapacity,
				Sources: cli.EnvVars("ACTIVITY_CAPACITY"),
			},
			&cli.StringFlag{
				Name:    "webhook-host",
				Usage:   "Host used to build agent webhook URLs",
				Value:   session.DefaultWebhookHost,
				Sources: cli.EnvVars("WEBHOOK_HOST"),
			},
			&cli.DurationFlag{
				Name:    "toast-ttl",
				Usage:   "How long toast notifications stay visible",
				Value:   notifier.DefaultTTL,
				Sources: cli.EnvVars("TOAST_TTL"),
			},
			&cli.BoolFlag{
				Name:    "otel-enabled",
				Usage:   "Export traces over OTLP/HTTP",
				Sources: cli.EnvVars("OTEL_ENABLED"),
			},
		},
		Action: runAPI,
	}
}

func runAPI(ctx context.Context, command *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Setup(command.String("log-level"), command.String("log-format"))

	logger := log.WithModule("api")

	logger.InfoContext(ctx, "Initializing agentflow API")

	tracer, shutdownTracer, err := otelhelper.NewTracer(ctx, "agentflow", command.Bool("otel-enabled"))
	if err != nil {
		return fmt.Errorf("failed to initialize tracer: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}()

	cat, err := cmd.NewCatalog(command.String("catalog"), logger)
	if err != nil {
		return err
	}

	eventBus, err := cmd.NewEventBus(
		command.String("event-bus"),
		kafka.ParseBrokers(command.String("kafka-brokers")),
		logger,
	)
	if err != nil {
		return err
	}

	defer func() {
		if err := eventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", "error", err)
		}
	}()

	feed, err := activity.New(ctx, command.String("activity-url"), command.Int("activity-capacity"))
	if err != nil {
		return err
	}

	defer func() {
		if err := feed.Close(); err != nil {
			logger.Error("Failed to close activity feed", "error", err)
		}
	}()

	if err := activity.Attach(eventBus, feed); err != nil {
		return err
	}

	if err := eventBus.Subscribe(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to activity events: %w", err)
	}

	sessions := session.NewManager(session.Config{
		Catalog:     cat,
		Clock:       clockwork.NewRealClock(),
		Publisher:   eventBus,
		Tracer:      tracer,
		ToastTTL:    command.Duration("toast-ttl"),
		WebhookHost: command.String("webhook-host"),
	})

	defer sessions.CloseAll(context.Background())

	api := NewAPI(logger, cat, sessions, feed)

	port := command.Int("port")
	logger.InfoContext(ctx, "Starting API server", "port", port)

	if err := api.Start(ctx, port); err != nil {
		logger.Error("Failed to start API server", "error", err)

		return err
	}

	return nil
}

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/tabshare/pkg/app"
	"github.com/ghuser/tabshare/pkg/cache"
	"github.com/ghuser/tabshare/pkg/config"
	"github.com/ghuser/tabshare/pkg/database"
	"github.com/ghuser/tabshare/pkg/events"
	"github.com/ghuser/tabshare/pkg/logger"
	"github.com/ghuser/tabshare/pkg/telemetry"
	"github.com/ghuser/tabshare/pkg/workflows"
	appsvcs "github.com/ghuser/tabshare/services/ordering/application/services"
	orderingworkflows "github.com/ghuser/tabshare/services/ordering/application/workflows"
	orderingEvents "github.com/ghuser/tabshare/services/ordering/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		log.Error("failed to initialize temporal client", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer temporalClient.Close()

	appConfig := &app.Application{
		Db:             pool,
		Logger:         log,
		EventBus:       eventBus,
		Redis:          redisClient,
		TemporalClient: temporalClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	temporalWorker, err := startTemporalWorker(ctx, appConfig, cfg)
	if err != nil {
		log.Error("failed to start temporal worker", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer temporalWorker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := map[string]func(context.Context, *message.Message) error{
		orderingEvents.TopicSessionCreated: handleSessionCreated(a),
		orderingEvents.TopicSessionClosed:  handleSessionClosed(a),
	}

	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		topic := topic
		go func() {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
	}

	a.Logger.Info("event subscribers registered",
		"topics", []string{orderingEvents.TopicSessionCreated, orderingEvents.TopicSessionClosed})
	return nil
}

// handleSessionCreated returns a handler for session.created events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Warms the Redis PIN cache so joins resolve without hitting Postgres.
func handleSessionCreated(a *app.Application) func(context.Context, *message.Message) error {
	sessionCache := cache.NewSessionCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt orderingEvents.SessionCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := sessionCache.Set(ctx, &cache.CachedSession{
			ID:        evt.SessionID,
			Pin:       evt.Pin,
			Name:      evt.Name,
			CreatedBy: evt.CreatedBy,
			Status:    "active",
			CreatedAt: evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for session.created",
				"session_id", evt.SessionID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "pin cache warmed",
				"session_id", evt.SessionID, "pin", evt.Pin)
		}

		return nil
	}
}

// handleSessionClosed evicts the PIN cache entry so a stale active session
// never serves a join.
func handleSessionClosed(a *app.Application) func(context.Context, *message.Message) error {
	sessionCache := cache.NewSessionCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt orderingEvents.SessionClosedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := sessionCache.Delete(ctx, evt.Pin); err != nil {
			a.Logger.WarnContext(ctx, "cache evict failed for session.closed",
				"session_id", evt.SessionID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "pin cache evicted",
				"session_id", evt.SessionID, "pin", evt.Pin)
		}

		return nil
	}
}

// startTemporalWorker registers the auto-close workflow plus activities and
// kicks off (idempotently) the hourly cron schedule.
func startTemporalWorker(ctx context.Context, a *app.Application, cfg *config.Config) (worker.Worker, error) {
	svcs := appsvcs.New(a)

	w := worker.New(a.TemporalClient.Client, orderingworkflows.TaskQueue, worker.Options{})
	w.RegisterWorkflow(orderingworkflows.AutoCloseWorkflow)
	w.RegisterActivity(&orderingworkflows.Activities{Sessions: svcs.Session})

	if err := w.Start(); err != nil {
		return nil, err
	}

	// WorkflowIDReusePolicy rejects duplicates, so restarting the worker
	// while the cron is already scheduled is fine.
	_, err := a.TemporalClient.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           orderingworkflows.AutoCloseWorkflowID,
		TaskQueue:    orderingworkflows.TaskQueue,
		CronSchedule: orderingworkflows.AutoCloseCronSchedule,
	}, orderingworkflows.AutoCloseWorkflow, orderingworkflows.AutoCloseInput{
		MaxAge: cfg.SessionMaxAge,
	})
	if err != nil {
		a.Logger.Warn("auto-close cron not (re)started, may already be running", "error", err)
	} else {
		a.Logger.Info("auto-close cron scheduled",
			"schedule", orderingworkflows.AutoCloseCronSchedule, "max_age", cfg.SessionMaxAge)
	}

	return w, nil
}

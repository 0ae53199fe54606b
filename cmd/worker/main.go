package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	orderspostgres "github.com/Apurer/cafe-api/internal/domains/orders/adapters/persistence/postgres"
	"github.com/Apurer/cafe-api/internal/domains/sales/adapters/orderstats"
	salespostgres "github.com/Apurer/cafe-api/internal/domains/sales/adapters/persistence/postgres"
	salesapp "github.com/Apurer/cafe-api/internal/domains/sales/application"
	"github.com/Apurer/cafe-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/cafe-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/cafe-api/internal/platform/postgres"
	platformtemporal "github.com/Apurer/cafe-api/internal/platform/temporal"
	salesactivities "github.com/Apurer/cafe-api/internal/platform/temporal/activities/sales"
	salesworkflows "github.com/Apurer/cafe-api/internal/platform/temporal/workflows/sales"
)

func main() {
	ctx := context.Background()
	const serviceName = "cafe-worker"
	instruments, shutdown, err := platformobservability.Init(ctx,
		platformobservability.SettingsFromEnv(serviceName, envOrDefault("APP_ENV", "production")))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	// The worker reads the API's database; there is no in-memory fallback.
	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db == nil {
		logger.Error("worker requires POSTGRES_DSN")
		os.Exit(1)
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	salesService := salesapp.NewService(salespostgres.NewRepository(db), orderstats.New(orderspostgres.NewRepository(db)))
	activities := salesactivities.NewActivities(salesService)

	namespace := envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	temporalClient, err := platformtemporal.Dial(
		platformtemporal.Config{Address: os.Getenv("TEMPORAL_ADDRESS"), Namespace: namespace},
		logger,
		instruments.Tracer("temporal-worker"),
	)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, salesworkflows.SnapshotTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(salesworkflows.SnapshotWorkflow, workflow.RegisterOptions{Name: salesworkflows.SnapshotWorkflowName})
	w.RegisterActivityWithOptions(activities.Capture, activity.RegisterOptions{Name: salesactivities.CaptureActivityName})

	logger.Info("worker listening", slog.String("taskQueue", salesworkflows.SnapshotTaskQueue), slog.String("namespace", namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	orderspostgres "github.com/Apurer/cafe-api/internal/domains/orders/adapters/persistence/postgres"
	"github.com/Apurer/cafe-api/internal/domains/sales/adapters/orderstats"
	salespostgres "github.com/Apurer/cafe-api/internal/domains/sales/adapters/persistence/postgres"
	salesapp "github.com/Apurer/cafe-api/internal/domains/sales/application"
	platformobservability "github.com/Apurer/cafe-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/cafe-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: platformobservability.ParseLevel(os.Getenv("LOG_LEVEL")),
	}))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot capture sales snapshot")
	}

	service := salesapp.NewService(salespostgres.NewRepository(db), orderstats.New(orderspostgres.NewRepository(db)))
	snapshot, err := service.Capture(ctx)
	if err != nil {
		log.Fatalf("failed to capture sales snapshot: %v", err)
	}
	logger.Info("sales snapshot captured",
		slog.Int64("snapshot.id", snapshot.ID),
		slog.Int64("orders.total", snapshot.TotalOrders),
		slog.Int64("items.sold", snapshot.TotalItemsSold))
}

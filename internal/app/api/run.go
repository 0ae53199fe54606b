package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	cafeserver "github.com/Apurer/cafe-api/go"

	"github.com/Apurer/cafe-api/internal/auth"
	catalogapp "github.com/Apurer/cafe-api/internal/domains/catalog/application"
	contactapp "github.com/Apurer/cafe-api/internal/domains/contact/application"
	identityobs "github.com/Apurer/cafe-api/internal/domains/identity/adapters/observability"
	identityapp "github.com/Apurer/cafe-api/internal/domains/identity/application"
	"github.com/Apurer/cafe-api/internal/domains/orders/adapters/directory"
	ordersevents "github.com/Apurer/cafe-api/internal/domains/orders/adapters/events"
	ordersobs "github.com/Apurer/cafe-api/internal/domains/orders/adapters/observability"
	ordersapp "github.com/Apurer/cafe-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/cafe-api/internal/domains/orders/ports"
	"github.com/Apurer/cafe-api/internal/domains/sales/adapters/orderstats"
	salesworkflows "github.com/Apurer/cafe-api/internal/domains/sales/adapters/workflows"
	salesapp "github.com/Apurer/cafe-api/internal/domains/sales/application"
	salesports "github.com/Apurer/cafe-api/internal/domains/sales/ports"
	platformkafka "github.com/Apurer/cafe-api/internal/platform/kafka"
	"github.com/Apurer/cafe-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/cafe-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/cafe-api/internal/platform/postgres"
	platformtemporal "github.com/Apurer/cafe-api/internal/platform/temporal"
)

const serviceName = "cafe-api"

// Run boots the café HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.SettingsFromEnv(serviceName, cfg.AppEnv))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	if cfg.GeneratedSecret {
		logger.Warn("JWT_SECRET not set, signing with a generated development secret")
	}

	db, cleanupDB := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	repos := buildStores(db, logger)

	issuer, err := auth.NewTokenIssuer(auth.TokenConfig{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL, Issuer: cfg.JWTIssuer})
	if err != nil {
		return fmt.Errorf("failed to configure token issuer: %w", err)
	}
	policy, err := loadPolicy(cfg)
	if err != nil {
		return err
	}

	catalogService := catalogapp.NewService(repos.products)
	if cfg.SeedMenu {
		seedMenu(ctx, catalogService, logger)
	}

	identityService := identityobs.New(
		identityapp.NewService(repos.identities, issuer),
		identityobs.WithLogger(logger),
		identityobs.WithTracer(instruments.Tracer("internal.identity.application")),
		identityobs.WithMeter(instruments.Meter("internal.identity.application")),
	)

	publisher, closePublisher := buildOrderPublisher(cfg, logger)
	defer closePublisher()
	orderService := ordersobs.New(
		ordersapp.NewService(
			repos.orders,
			directory.NewCatalogPrices(catalogService),
			directory.NewIdentities(identityService),
			ordersapp.WithEventPublisher(publisher),
			ordersapp.WithIdempotencyStore(repos.idempotency),
			ordersapp.WithLogger(logger),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	salesService := salesapp.NewService(repos.snapshots, orderstats.New(repos.orders))
	var snapshots salesports.SnapshotOrchestrator = salesworkflows.NewInlineSnapshots(salesService)
	if cfg.TemporalDisabled {
		logger.Info("Temporal disabled via TEMPORAL_DISABLED, capturing sales snapshots inline")
	} else if temporalClient, err := platformtemporal.Dial(
		platformtemporal.Config{Address: cfg.TemporalAddress, Namespace: cfg.TemporalNamespace},
		logger,
		instruments.Tracer("temporal-client"),
	); err != nil {
		logger.Warn("Temporal workflows unavailable, capturing sales snapshots inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		snapshots = salesworkflows.NewTemporalSnapshots(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	contactService := contactapp.NewService(repos.contact)

	handlers := cafeserver.ApiHandleFunctions{
		AuthAPI:    cafeserver.NewAuthAPI(identityService),
		MenuAPI:    cafeserver.NewMenuAPI(catalogService),
		CartAPI:    cafeserver.NewCartAPI(catalogService, orderService),
		OrdersAPI:  cafeserver.NewOrdersAPI(orderService),
		AdminAPI:   cafeserver.NewAdminAPI(catalogService, orderService, salesService, snapshots, contactService),
		ContactAPI: cafeserver.NewContactAPI(contactService),
	}
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router = cafeserver.NewRouterWithGinEngine(router, handlers,
		cafeserver.WithAllowedOrigin(cfg.AllowedOrigin),
		cafeserver.WithLogger(logger),
		cafeserver.WithGate(auth.NewGate(issuer, policy, auth.WithGateLogger(logger)).Middleware()),
	)

	return serve(ctx, ":"+cfg.Port, router, logger)
}

func serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	server := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("café API listening", slog.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("café API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("café API shutting down")
	return server.Shutdown(shutdownCtx)
}

func loadPolicy(cfg Config) (auth.Policy, error) {
	if cfg.AuthPolicyFile == "" {
		return auth.DefaultPolicy(), nil
	}
	policy, err := auth.LoadPolicyFile(cfg.AuthPolicyFile)
	if err != nil {
		return auth.Policy{}, fmt.Errorf("failed to load AUTH_POLICY_FILE: %w", err)
	}
	return policy, nil
}

// seedMenu writes the house menu only when the catalog is empty.
func seedMenu(ctx context.Context, catalog *catalogapp.Service, logger *slog.Logger) {
	existing, err := catalog.ListProducts(ctx, "")
	if err != nil {
		logger.Warn("failed to inspect catalog before seeding", slog.String("error", err.Error()))
		return
	}
	if len(existing) > 0 {
		return
	}
	written, err := catalog.SeedDefaultMenu(ctx)
	if err != nil {
		logger.Warn("failed to seed default menu", slog.String("error", err.Error()))
		return
	}
	logger.Info("seeded default menu", slog.Int("products", written))
}

func buildOrderPublisher(cfg Config, logger *slog.Logger) (ordersports.EventPublisher, func()) {
	writer := platformkafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
	if writer == nil {
		logger.Info("KAFKA_BROKERS not set, order events are not published")
		return ordersports.NoopPublisher{}, func() {}
	}
	logger.Info("publishing order events to kafka", slog.String("topic", writer.Topic))
	return ordersevents.NewKafkaPublisher(writer), func() {
		if err := writer.Close(); err != nil {
			logger.Warn("failed to close kafka writer", slog.String("error", err.Error()))
		}
	}
}

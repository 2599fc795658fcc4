package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	ordersserver "github.com/musicstore/orders-api/go"

	catalogclient "github.com/musicstore/orders-api/internal/clients/http/catalog"
	customersclient "github.com/musicstore/orders-api/internal/clients/http/customers"
	storesclient "github.com/musicstore/orders-api/internal/clients/http/stores"
	ordersmemory "github.com/musicstore/orders-api/internal/orders/adapters/memory"
	ordersobs "github.com/musicstore/orders-api/internal/orders/adapters/observability"
	orderspostgres "github.com/musicstore/orders-api/internal/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/musicstore/orders-api/internal/orders/adapters/workflows"
	ordersapp "github.com/musicstore/orders-api/internal/orders/application"
	ordersports "github.com/musicstore/orders-api/internal/orders/ports"
	platformobservability "github.com/musicstore/orders-api/internal/platform/observability"
	platformpostgres "github.com/musicstore/orders-api/internal/platform/postgres"
)

// Run boots the orders HTTP API with observability, repositories, upstream
// gateways, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "orders-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	orderRepo, cleanupRepo := buildOrderRepository(ctx, cfg, logger)
	defer cleanupRepo()

	customersGateway, err := customersclient.NewClient(cfg.CustomersServiceURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build customers gateway: %w", err)
	}
	catalogGateway, err := catalogclient.NewClient(cfg.CatalogServiceURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog gateway: %w", err)
	}
	storesGateway, err := storesclient.NewClient(cfg.StoresServiceURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build stores gateway: %w", err)
	}

	coreOrderService := ordersapp.NewService(orderRepo, customersGateway, catalogGateway, storesGateway)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline order placement", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := ordersserver.ApiHandleFunctions{
		OrdersAPI: ordersserver.NewOrdersAPI(orderService, orderWorkflows),
	}

	router := ordersserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("Orders API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Orders API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return memoryRepository(cfg, logger), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memoryRepository(cfg, logger), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memoryRepository(cfg, logger), func() {}
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func memoryRepository(cfg Config, logger *slog.Logger) *ordersmemory.Repository {
	repo := ordersmemory.NewRepository()
	if cfg.SeedSampleData {
		repo.Seed()
		logger.Info("in-memory order repository seeded with sample data")
	}
	return repo
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

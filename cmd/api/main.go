package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/supply-portal/internal/api/http"
	"github.com/spec-kit/supply-portal/internal/api/http/handlers"
	"github.com/spec-kit/supply-portal/internal/auth"
	"github.com/spec-kit/supply-portal/internal/config"
	"github.com/spec-kit/supply-portal/internal/events"
	"github.com/spec-kit/supply-portal/internal/observability"
	"github.com/spec-kit/supply-portal/internal/persistence"
	"github.com/spec-kit/supply-portal/internal/repository"
	"github.com/spec-kit/supply-portal/internal/service"
	"github.com/spec-kit/supply-portal/internal/session"
	"github.com/spec-kit/supply-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	readiness := map[string]handlers.Pinger{"postgres": pg}

	var store session.Store
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		store = session.NewRedisStore(redis.Client, nil)
		readiness["redis"] = redis
	default:
		store = session.NewMemoryStore()
	}
	logger.Info("session store ready", zap.String("backend", string(cfg.Session.Backend)))

	authenticator := session.NewAuthenticator(store, nil, logger)
	go session.RunJanitor(ctx, store, cfg.Session.SweepInterval, logger, metrics.RecordSweep)

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	supplierRepo := repository.NewSupplierRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	historyRepo := repository.NewApplicationHistoryRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	authService, err := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo:   accountRepo,
		Authenticator: authenticator,
		Metrics:       metrics,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	accountService := service.NewAccountService(accountRepo, authenticator, cfg.Auth.BcryptCost, logger)
	supplierService := service.NewSupplierService(supplierRepo, logger)
	productService := service.NewProductService(productRepo, supplierRepo, logger)
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: applicationRepo,
		ProductRepo:     productRepo,
		HistoryRepo:     historyRepo,
		Transactor:      repository.NewApplicationTransactor(pool),
		Dispatcher:      dispatcher,
		Logger:          logger,
	})

	app := httptransport.NewApp(httptransport.MiddlewareConfig{
		AppName: cfg.App.Name,
		Logger:  logger,
		Metrics: metrics,
		Timeout: cfg.App.RequestTimeout(),
		CORS:    cfg.CORS,
	}, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readiness),
		Auth:           handlers.NewAuthHandler(authService),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Suppliers:      handlers.NewSuppliersHandler(supplierService),
		Products:       handlers.NewProductsHandler(productService),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		AuthMiddleware: auth.NewAuthMiddleware(authenticator, metrics, logger),
		Metrics:        metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

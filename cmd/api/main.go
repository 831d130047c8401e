package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/mkulimalink/internal/api/http"
	"github.com/spec-kit/mkulimalink/internal/api/http/handlers"
	"github.com/spec-kit/mkulimalink/internal/auth"
	"github.com/spec-kit/mkulimalink/internal/cache"
	"github.com/spec-kit/mkulimalink/internal/config"
	"github.com/spec-kit/mkulimalink/internal/events"
	"github.com/spec-kit/mkulimalink/internal/observability"
	"github.com/spec-kit/mkulimalink/internal/persistence"
	"github.com/spec-kit/mkulimalink/internal/repository"
	"github.com/spec-kit/mkulimalink/internal/service"
	"github.com/spec-kit/mkulimalink/internal/sms"
	"github.com/spec-kit/mkulimalink/internal/worker"
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

	metrics := observability.NewMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	produceRepo := repository.NewProduceRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	smsClient := sms.NewClient(cfg.SMS, logger, metrics)
	notifier := sms.NewRetryingSender(smsClient, cfg.SMS.MaxAttempts, cfg.SMS.RetryBackoff(), logger)

	produceCache := cache.NewProduceCache(redis.Client, cfg.Redis.ProduceCacheTTL, logger)

	accountService := service.NewAccountService(*cfg, service.AccountDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Notifier:   notifier,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		ProduceRepo: produceRepo,
		UserRepo:    userRepo,
		Cache:       produceCache,
		Dispatcher:  dispatcher,
	})
	orderService := service.NewOrderService(orderRepo, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, notifier, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(
		auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		userRepo,
	)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Admin:          handlers.NewAdminHandler(accountService),
		Produce:        handlers.NewProduceHandler(catalogService),
		Orders:         handlers.NewOrdersHandler(orderService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

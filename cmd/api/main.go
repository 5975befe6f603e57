package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/micorpx/acquisitions/internal/api/http"
	"github.com/micorpx/acquisitions/internal/api/http/handlers"
	"github.com/micorpx/acquisitions/internal/auth"
	"github.com/micorpx/acquisitions/internal/config"
	"github.com/micorpx/acquisitions/internal/events"
	"github.com/micorpx/acquisitions/internal/observability"
	"github.com/micorpx/acquisitions/internal/persistence"
	"github.com/micorpx/acquisitions/internal/repository"
	"github.com/micorpx/acquisitions/internal/security"
	"github.com/micorpx/acquisitions/internal/service"
	"github.com/micorpx/acquisitions/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	userService := service.NewUserService(*cfg, service.UserDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})

	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	gate := auth.NewGate(userService.TokenManager())
	cookies := auth.NewSessionCookies(userService.TokenManager().TTL(), !cfg.App.IsDevelopment())

	limiter := security.NewRateLimiter(redis.Client, cfg.Security)
	shield := security.NewShield(cfg.Security.Enabled, cfg.Security.BackendTimeout(), security.ShieldDeps{
		Limiter:    limiter,
		Logger:     logger,
		Metrics:    metrics,
		Dispatcher: dispatcher,
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareDeps{
		Logger:  logger,
		Metrics: metrics,
		Gate:    gate,
		Shield:  shield,
		Timeout: cfg.App.RequestTimeout(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		AppName: cfg.App.Name,
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(userService, cookies),
		Users:   handlers.NewUsersHandler(userService),
		Gate:    gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

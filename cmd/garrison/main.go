package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/siege-works/garrison/internal/app"
	"github.com/siege-works/garrison/internal/auth"
	"github.com/siege-works/garrison/internal/bases"
	"github.com/siege-works/garrison/internal/missions"
	"github.com/siege-works/garrison/internal/observability"
	"github.com/siege-works/garrison/internal/platform/cache"
	"github.com/siege-works/garrison/internal/platform/db"
	"github.com/siege-works/garrison/internal/rbac"
	"github.com/siege-works/garrison/internal/shared"
	"github.com/siege-works/garrison/internal/users"
	"github.com/siege-works/garrison/internal/warapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessions := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, sessions, cfg.TokenSecret, cfg.TokenTTL)
	gateway := auth.NewGateway(logger, authRepo, sessions, authService.TokenSecret())
	authHandler := auth.NewHandler(logger, authService, gateway, sessions, cfg.IsProduction())

	rbacMW := rbac.Middleware{Logger: logger}

	usersService := users.NewService(users.NewRepository(pool))
	usersHandler := users.NewHandler(logger, usersService, rbacMW)

	warClient := warapi.NewClient(cfg.WarAPIBaseURL, cfg.WarAPITimeout, warapi.NewMemoryStore(), logger)
	basesService := bases.NewService(bases.NewRepository(pool), warClient, logger)
	basesHandler := bases.NewHandler(logger, basesService, rbacMW)

	missionsService := missions.NewService(missions.NewRepository(pool))
	missionsHandler := missions.NewHandler(logger, missionsService, rbacMW)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Gateway:         gateway,
		AuthHandler:     authHandler,
		UsersHandler:    usersHandler,
		BasesHandler:    basesHandler,
		MissionsHandler: missionsHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
}

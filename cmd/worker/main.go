package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/siege-works/garrison/internal/app"
	"github.com/siege-works/garrison/internal/bases"
	"github.com/siege-works/garrison/internal/platform/db"
	"github.com/siege-works/garrison/internal/warapi"
	"github.com/siege-works/garrison/jobs"
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

	warClient := warapi.NewClient(cfg.WarAPIBaseURL, cfg.WarAPITimeout, warapi.NewMemoryStore(), logger)
	basesService := bases.NewService(bases.NewRepository(pool), warClient, logger)
	refreshJob := jobs.NewAlertsRefreshJob(basesService, logger)

	var cron []jobs.CronRegistration
	if cfg.AlertRefreshCron != "" {
		cron = append(cron, jobs.CronRegistration{
			Spec:    cfg.AlertRefreshCron,
			Task:    jobs.NewAlertsRefreshTask(),
			Options: []asynq.Option{asynq.MaxRetry(3)},
		})
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskAlertsRefresh, Handler: refreshJob.Handle},
		},
		Cron: cron,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/siege-works/garrison/internal/bases"
)

const refreshConcurrency = 4

// AlertsRefreshJob periodically re-fetches threat intel for every base. Each
// base is refreshed independently; one failing hex never blocks the rest.
type AlertsRefreshJob struct {
	service *bases.Service
	logger  *slog.Logger
}

// NewAlertsRefreshJob constructs the job.
func NewAlertsRefreshJob(service *bases.Service, logger *slog.Logger) *AlertsRefreshJob {
	return &AlertsRefreshJob{service: service, logger: logger}
}

// Handle processes TaskAlertsRefresh tasks.
func (j *AlertsRefreshJob) Handle(ctx context.Context, t *asynq.Task) error {
	list, err := j.service.List(ctx)
	if err != nil {
		return err
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(refreshConcurrency)
	for _, base := range list {
		if base.HexName() == "" {
			continue
		}
		group.Go(func() error {
			if _, err := j.service.RefreshAlerts(ctx, base.ID); err != nil {
				// Opportunistic refresh: log and move on, prior cached
				// alerts stay untouched.
				j.logger.Warn("alert refresh failed",
					slog.Int64("base_id", base.ID),
					slog.String("hex", base.HexName()),
					slog.Any("error", err))
			}
			return nil
		})
	}
	return group.Wait()
}

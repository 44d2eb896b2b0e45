// Package jobs holds background task definitions and the Asynq worker.
package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAlertsRefresh is the task type for re-fetching threat intel for
	// every base with a configured map region.
	TaskAlertsRefresh = "bases:alerts_refresh"
)

// NewAlertsRefreshTask constructs an Asynq task. The task carries no payload;
// the handler walks all current bases.
func NewAlertsRefreshTask() *asynq.Task {
	return asynq.NewTask(TaskAlertsRefresh, nil)
}

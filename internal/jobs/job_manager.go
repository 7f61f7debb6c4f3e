package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	historyAuditJob *HistoryAuditJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	auditHistoryHandler AuditHistoryHandler,
	historyAuditSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		historyAuditJob: NewHistoryAuditJob(auditHistoryHandler, historyAuditSchedule, time.Time{}, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.historyAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start history audit job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.historyAuditJob.Stop()
}

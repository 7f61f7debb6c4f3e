package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	DefaultHistoryAuditSchedule = "0 */5 * * * *"
	historyAuditBatch           = 200
	historyAuditMaxBatches      = 50

	// historyAuditSettle is how far behind now a run stops; orders stamped
	// later are picked up by the next run.
	historyAuditSettle = time.Minute
)

type AuditHistoryHandler interface {
	Handle(ctx context.Context, cmd commands.AuditHistoryCommand) (commands.AuditHistoryResult, error)
}

// HistoryAuditJob periodically replays the audit trail of every order updated
// since its previous run and logs orders whose history does not lead to their
// stored status.
type HistoryAuditJob struct {
	handler  AuditHistoryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu        sync.Mutex
	watermark ports.UpdateCursor
}

// NewHistoryAuditJob creates the job. The schedule uses the six-field cron
// format with seconds; an empty schedule selects DefaultHistoryAuditSchedule.
// The first run audits everything updated after since.
func NewHistoryAuditJob(handler AuditHistoryHandler, schedule string, since time.Time, logger *slog.Logger) *HistoryAuditJob {
	if schedule == "" {
		schedule = DefaultHistoryAuditSchedule
	}
	return &HistoryAuditJob{
		handler:  handler,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger:    logger.With("component", "history_audit_job"),
		watermark: ports.UpdateCursor{UpdatedAt: since},
	}
}

// Start registers the audit with the scheduler and starts it.
func (j *HistoryAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "History audit job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running audit to finish.
func (j *HistoryAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "History audit job stopped")
}

// RunOnce audits batches until the backlog up to a settle period before now is
// drained or the batch cap is hit, advancing the watermark after every
// successful batch.
func (j *HistoryAuditJob) RunOnce(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()

	until := time.Now().UTC().Add(-historyAuditSettle)
	checked, violations := 0, 0
	for range historyAuditMaxBatches {
		cmd, err := commands.NewAuditHistoryCommand(j.watermark, until, historyAuditBatch)
		if err != nil {
			j.logger.ErrorContext(ctx, "History audit job failed", "error", err)
			return
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "History audit job failed", "error", err, "since", j.watermark.UpdatedAt)
			return
		}

		for _, v := range result.Violations {
			j.logger.WarnContext(ctx, "Order history does not replay to stored status",
				"order_id", v.OrderID.String(),
				"error", v.Err,
			)
		}
		checked += result.Checked
		violations += len(result.Violations)
		j.watermark = result.Watermark

		if result.Exhausted {
			break
		}
	}

	j.logger.DebugContext(ctx, "History audit finished",
		"checked", checked,
		"violations", violations,
		"watermark", j.watermark.UpdatedAt,
	)
}

// Watermark returns the position the next run continues from.
func (j *HistoryAuditJob) Watermark() ports.UpdateCursor {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.watermark
}

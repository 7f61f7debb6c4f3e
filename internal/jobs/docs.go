// Package jobs provides scheduled background tasks for the storefront order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// HistoryAuditJob replays the audit trail of every order updated since its
// previous run and logs orders whose history is not a legal walk through the
// transition table ending in the stored status. It never repairs anything.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(&auditHandler, cfg.HistoryAuditSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field format with seconds. The default
// "0 */5 * * * *" runs every five minutes. Overlapping runs are skipped.
package jobs

// Package jobs provides scheduled background tasks for the production service.
//
// Jobs are cron-driven with github.com/robfig/cron/v3 (standard five-field
// specs and descriptors such as "@every 1h").
//
// # Available Jobs
//
// 1. SchedulingJob - runs the automatic scheduling pass as of today
// 2. HealthMonitorJob - classifies active orders and publishes CRITICAL and
// CANNOT_MEET_DUE alerts
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewSchedulingJob(runSchedulerHandler, cfg.SchedulingSpec, loc, log),
//		jobs.NewHealthMonitorJob(pipelineHandler, publisher, cfg.HealthMonitorSpec, loc, log),
//		log,
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. A pass skipped because
// another replica holds the scheduler lock is not an error.
package jobs

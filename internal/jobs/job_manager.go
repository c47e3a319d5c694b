package jobs

import (
	"fmt"

	"production/internal/pkg/logger"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	schedulingJob    *SchedulingJob
	healthMonitorJob *HealthMonitorJob
	logger           *zap.Logger
}

// NewJobManager creates a job manager. A nil healthMonitorJob is allowed when
// alert publishing is not configured.
func NewJobManager(schedulingJob *SchedulingJob, healthMonitorJob *HealthMonitorJob, log *zap.Logger) *JobManager {
	return &JobManager{
		schedulingJob:    schedulingJob,
		healthMonitorJob: healthMonitorJob,
		logger:           logger.Component(log, "job_manager"),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.schedulingJob.Start(); err != nil {
		return fmt.Errorf("failed to start scheduling job: %w", err)
	}

	if jm.healthMonitorJob == nil {
		jm.logger.Warn("health monitor job disabled")
		return nil
	}

	if err := jm.healthMonitorJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.schedulingJob.Stop()
		return fmt.Errorf("failed to start health monitor job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.healthMonitorJob != nil {
		jm.healthMonitorJob.Stop()
	}
	jm.schedulingJob.Stop()
}

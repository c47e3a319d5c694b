package jobs

import (
	"context"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSchedulingSpec runs the pass every working-day morning.
const DefaultSchedulingSpec = "0 5 * * 1-5"

// SchedulePassRunner runs one scheduling pass.
type SchedulePassRunner interface {
	Handle(ctx context.Context, cmd commands.RunSchedulerCommand) (commands.SchedulePassResult, error)
}

// SchedulingJob triggers the automatic scheduling pass on a cron schedule.
// Replicas may all run it; the pass lock lets only one of them do the work.
type SchedulingJob struct {
	handler  SchedulePassRunner
	spec     string
	location *time.Location
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewSchedulingJob creates the job. An empty spec uses DefaultSchedulingSpec
// and a nil location means UTC.
func NewSchedulingJob(handler SchedulePassRunner, spec string, location *time.Location, log *zap.Logger) *SchedulingJob {
	if spec == "" {
		spec = DefaultSchedulingSpec
	}
	if location == nil {
		location = time.UTC
	}
	return &SchedulingJob{
		handler:  handler,
		spec:     spec,
		location: location,
		cron:     cron.New(cron.WithLocation(location)),
		logger:   logger.Component(log, "scheduling_job"),
	}
}

// Start registers the pass and starts the cron scheduler.
func (j *SchedulingJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("scheduling job started", zap.String("spec", j.spec))
	return nil
}

// RunOnce runs a pass as of today in the job's location.
func (j *SchedulingJob) RunOnce(ctx context.Context) (commands.SchedulePassResult, error) {
	cmd, err := commands.NewRunSchedulerCommand(kernel.Today(j.location))
	if err != nil {
		return commands.SchedulePassResult{}, err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("scheduling pass failed", zap.Error(err))
		return commands.SchedulePassResult{}, err
	}

	return result, nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *SchedulingJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("scheduling job stopped")
}

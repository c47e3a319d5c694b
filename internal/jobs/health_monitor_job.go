package jobs

import (
	"context"
	"time"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/health"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
	"production/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultHealthMonitorSpec classifies the pipeline once an hour.
const DefaultHealthMonitorSpec = "@every 1h"

// PipelineReader reads the classified active orders.
type PipelineReader interface {
	Handle(ctx context.Context, query queries.GetPipelineHealthQuery) ([]queries.GetPipelineHealthQueryResponse, error)
}

// HealthMonitorJob classifies every active order and publishes the alerting
// ones (CRITICAL and CANNOT_MEET_DUE).
type HealthMonitorJob struct {
	reader    PipelineReader
	publisher ports.HealthAlertPublisher
	spec      string
	location  *time.Location
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewHealthMonitorJob creates the job. An empty spec uses
// DefaultHealthMonitorSpec and a nil location means UTC.
func NewHealthMonitorJob(
	reader PipelineReader,
	publisher ports.HealthAlertPublisher,
	spec string,
	location *time.Location,
	log *zap.Logger,
) *HealthMonitorJob {
	if spec == "" {
		spec = DefaultHealthMonitorSpec
	}
	if location == nil {
		location = time.UTC
	}
	return &HealthMonitorJob{
		reader:    reader,
		publisher: publisher,
		spec:      spec,
		location:  location,
		cron:      cron.New(cron.WithLocation(location)),
		logger:    logger.Component(log, "health_monitor_job"),
	}
}

// Start registers the check and starts the cron scheduler.
func (j *HealthMonitorJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("health monitor job started", zap.String("spec", j.spec))
	return nil
}

// RunOnce classifies the pipeline as of today and returns the number of alerts published.
func (j *HealthMonitorJob) RunOnce(ctx context.Context) (int, error) {
	today := kernel.Today(j.location)
	query, err := queries.NewGetPipelineHealthQuery(today, "")
	if err != nil {
		return 0, err
	}

	items, err := j.reader.Handle(ctx, query)
	if err != nil {
		j.logger.Error("pipeline health read failed", zap.Error(err))
		return 0, err
	}

	alerts := make([]health.Alert, 0)
	for _, item := range items {
		if !item.Health.IsAlerting() {
			continue
		}
		alerts = append(alerts, health.Alert{
			OrderID:             item.OrderID,
			Status:              item.Health,
			Department:          item.CurrentDepartment,
			DueDate:             item.DueDate,
			DwellDays:           item.DwellDays,
			ExpectedDwellDays:   item.ExpectedDwellDays,
			RemainingLeadDays:   item.RemainingLeadDays,
			ProjectedCompletion: item.ProjectedCompletion,
			DetectedOn:          today,
		})
	}

	if err = j.publisher.Publish(ctx, alerts); err != nil {
		j.logger.Error("publishing health alerts failed", zap.Int("alerts", len(alerts)), zap.Error(err))
		return 0, err
	}

	if len(alerts) > 0 {
		j.logger.Info("health alerts published", zap.Int("alerts", len(alerts)), zap.Int("activeOrders", len(items)))
	}
	return len(alerts), nil
}

// Stop stops the scheduler and waits for a running check to finish.
func (j *HealthMonitorJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("health monitor job stopped")
}

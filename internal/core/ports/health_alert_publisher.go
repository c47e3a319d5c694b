package ports

import (
	"context"

	"production/internal/core/domain/model/health"
)

// HealthAlertPublisher delivers schedule-health alerts to downstream consumers.
type HealthAlertPublisher interface {
	Publish(ctx context.Context, alerts []health.Alert) error
}

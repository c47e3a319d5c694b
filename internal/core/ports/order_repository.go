// Package ports defines the contracts between the production domain and its
// infrastructure: repositories, the unit of work, the scheduler pass lock and
// the health alert publisher.
package ports

import (
	"context"

	"production/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. A duplicate id is reported as an error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its id.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id string) (*order.Order, error)

	// GetAwaitingSchedule returns FINALIZED orders that currently sit in one of departments.
	GetAwaitingSchedule(ctx context.Context, departments []string) ([]*order.Order, error)

	// GetActive returns every order that is not SHIPPED or CANCELLED.
	GetActive(ctx context.Context) ([]*order.Order, error)
}

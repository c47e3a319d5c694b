package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/schedule"
)

// AssignmentRepository defines the persistence contract for schedule assignments.
//
// Implementations must make AddWithinCapacity safe against concurrent writers
// of the same (fixture, date) slot, and must reject a second active
// assignment for the same order.
type AssignmentRepository interface {
	// AddWithinCapacity locks the assignment's slot, recounts it and inserts
	// the assignment only if fewer than capacity assignments exist.
	// Returns services.ErrFixtureDayFull when the slot is full and
	// ErrOrderAlreadyAssigned when the order already holds a slot.
	AddWithinCapacity(ctx context.Context, assignment *schedule.Assignment, capacity int) error

	// Remove deletes an assignment by id.
	Remove(ctx context.Context, id kernel.UUID) error

	// GetByOrder returns the active assignment of an order, or
	// errs.ObjectNotFoundError when it has none.
	GetByOrder(ctx context.Context, orderID string) (*schedule.Assignment, error)

	// GetFrom returns assignments dated on or after from. It is the snapshot
	// the schedule engine seeds its capacity counts with.
	GetFrom(ctx context.Context, from kernel.Date) ([]*schedule.Assignment, error)

	// GetAll returns every active assignment regardless of date.
	GetAll(ctx context.Context) ([]*schedule.Assignment, error)
}

// Package commands contains the write operations of the production service.
// Every handler validates its command, opens a unit of work, works through the
// repositories and commits; a deferred Rollback cleans up on any early return.
package commands

import (
	"context"

	"production/internal/core/ports"
)

// Each handler depends on the narrowest unit of work that covers the
// repositories it touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	FixtureRepoFactory interface {
		FixtureRepository() ports.FixtureRepository
	}

	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	SequenceRepoFactory interface {
		SequenceRepository() ports.SequenceRepository
	}

	// OrderUoW covers order-only state changes.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderIDUoW covers order creation: the sequence row lock and the insert
	// share one transaction.
	OrderIDUoW interface {
		TxManager
		OrderRepoFactory
		SequenceRepoFactory
	}

	OrderIDUoWFactory interface {
		Create() OrderIDUoW
	}

	// SequenceUoW covers customer serial allocation.
	SequenceUoW interface {
		TxManager
		SequenceRepoFactory
	}

	SequenceUoWFactory interface {
		Create() SequenceUoW
	}

	// FixtureUoW covers fixture configuration.
	FixtureUoW interface {
		TxManager
		FixtureRepoFactory
	}

	FixtureUoWFactory interface {
		Create() FixtureUoW
	}

	// OrderAssignmentUoW covers order changes that release the order's slot.
	OrderAssignmentUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
	}

	OrderAssignmentUoWFactory interface {
		Create() OrderAssignmentUoW
	}

	// ScheduleUoW covers scheduling passes and manual reassignment.
	//
	//	uow := factory.Create()
	//	err := uow.Begin(ctx)
	//	defer uow.Rollback(ctx)
	//
	//	o, err := uow.OrderRepository().Get(ctx, id)
	//	f, err := uow.FixtureRepository().Get(ctx, fixtureID)
	//	err = uow.AssignmentRepository().AddWithinCapacity(ctx, a, f.DailyCapacity())
	//
	//	err = uow.Commit(ctx)
	ScheduleUoW interface {
		TxManager
		OrderRepoFactory
		FixtureRepoFactory
		AssignmentRepoFactory
	}

	ScheduleUoWFactory interface {
		Create() ScheduleUoW
	}
)

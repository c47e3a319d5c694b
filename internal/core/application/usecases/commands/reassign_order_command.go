package commands

import (
	"context"
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/schedule"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrReassignOrderCommandIsNotConstructed = errors.New(
	"ReassignOrderCommand must be created via NewReassignOrderCommand constructor",
)

// ReassignOrderCommand is a planner moving one order to a chosen fixture and
// day. With override the placement may use an excluded weekday and ignore
// the adjustment weekday.
type ReassignOrderCommand struct {
	orderID   string
	fixtureID string
	date      kernel.Date
	override  bool
	asOf      kernel.Date
	guard     guard.ConstructorGuard
}

func NewReassignOrderCommand(
	orderID, fixtureID string,
	date kernel.Date,
	override bool,
	asOf kernel.Date,
) (ReassignOrderCommand, error) {
	id, idErr := requireOrderID(orderID)

	var fixtureErr error
	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		fixtureErr = errs.NewValueIsRequiredError("fixtureId")
	}

	if err := errors.Join(idErr, fixtureErr, date.Validate(), asOf.Validate()); err != nil {
		return ReassignOrderCommand{}, err
	}

	return ReassignOrderCommand{
		orderID:   id,
		fixtureID: fixtureID,
		date:      date,
		override:  override,
		asOf:      asOf,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ReassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderCommandIsNotConstructed)
}

func (c ReassignOrderCommand) OrderID() string {
	return c.orderID
}

func (c ReassignOrderCommand) FixtureID() string {
	return c.fixtureID
}

func (c ReassignOrderCommand) Date() kernel.Date {
	return c.date
}

func (c ReassignOrderCommand) Override() bool {
	return c.override
}

func (c ReassignOrderCommand) AsOf() kernel.Date {
	return c.asOf
}

// ReassignOrderCommandHandler replaces an order's active assignment with a
// manual one. The engine validates the placement against a fresh view of the
// target day; the insert then re-checks capacity under the slot lock.
type ReassignOrderCommandHandler struct {
	uowFactory ScheduleUoWFactory
	engine     *services.ScheduleEngine
}

func NewReassignOrderCommandHandler(uowFactory ScheduleUoWFactory, engine *services.ScheduleEngine) ReassignOrderCommandHandler {
	return ReassignOrderCommandHandler{uowFactory: uowFactory, engine: engine}
}

func (h ReassignOrderCommandHandler) Handle(ctx context.Context, cmd ReassignOrderCommand) (*schedule.Assignment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	f, err := uow.FixtureRepository().Get(ctx, cmd.FixtureID())
	if err != nil {
		return nil, err
	}

	assignments := uow.AssignmentRepository()
	current, err := assignments.GetByOrder(ctx, o.ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	existing, err := assignments.GetFrom(ctx, cmd.Date())
	if err != nil {
		return nil, err
	}

	replacement, err := h.engine.Reassign(o, f, cmd.Date(), current, schedule.NewLoad(existing), cmd.AsOf(), cmd.Override())
	if err != nil {
		return nil, err
	}

	if current != nil {
		if err = assignments.Remove(ctx, current.ID()); err != nil {
			return nil, err
		}
	}

	if err = assignments.AddWithinCapacity(ctx, replacement, f.DailyCapacity()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return replacement, nil
}

package commands

import (
	"context"
	"errors"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/schedule"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrRequireAdjustmentCommandIsNotConstructed = errors.New(
	"RequireAdjustmentCommand must be created via NewRequireAdjustmentCommand constructor",
)

// RequireAdjustmentCommand flags or clears pending length-of-pull rework.
// Flagged orders receive ADJUSTMENT assignments and the adjusted dwell times.
type RequireAdjustmentCommand struct {
	orderID string
	needed  bool
	guard   guard.ConstructorGuard
}

func NewRequireAdjustmentCommand(orderID string, needed bool) (RequireAdjustmentCommand, error) {
	id, err := requireOrderID(orderID)
	if err != nil {
		return RequireAdjustmentCommand{}, err
	}
	return RequireAdjustmentCommand{orderID: id, needed: needed, guard: guard.NewConstructorGuard()}, nil
}

func (c RequireAdjustmentCommand) Validate() error {
	return c.guard.Validate(ErrRequireAdjustmentCommandIsNotConstructed)
}

func (c RequireAdjustmentCommand) OrderID() string {
	return c.orderID
}

func (c RequireAdjustmentCommand) Needed() bool {
	return c.needed
}

// RequireAdjustmentCommandHandler updates the flag. Flagging a FINALIZED
// order also releases its PRODUCTION slot in the same transaction, so the next
// pass places it again as ADJUSTMENT work. Orders already in production keep
// their assignment.
type RequireAdjustmentCommandHandler struct {
	uowFactory OrderAssignmentUoWFactory
}

func NewRequireAdjustmentCommandHandler(uowFactory OrderAssignmentUoWFactory) RequireAdjustmentCommandHandler {
	return RequireAdjustmentCommandHandler{uowFactory: uowFactory}
}

func (h RequireAdjustmentCommandHandler) Handle(ctx context.Context, cmd RequireAdjustmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.RequireAdjustment(cmd.Needed()); err != nil {
		return err
	}

	if cmd.Needed() && o.Status() == order.Finalized {
		if err = releaseProductionSlot(ctx, uow, o.ID()); err != nil {
			return err
		}
	}

	if err = orders.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func releaseProductionSlot(ctx context.Context, uow OrderAssignmentUoW, orderID string) error {
	assignments := uow.AssignmentRepository()
	current, err := assignments.GetByOrder(ctx, orderID)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return nil
	case err != nil:
		return err
	case current.Kind() != schedule.Production:
		return nil
	}
	return assignments.Remove(ctx, current.ID())
}

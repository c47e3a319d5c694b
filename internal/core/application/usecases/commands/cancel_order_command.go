package commands

import (
	"context"
	"errors"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

type CancelOrderCommand struct {
	orderID string
	guard   guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID string) (CancelOrderCommand, error) {
	id, err := requireOrderID(orderID)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() string {
	return c.orderID
}

// CancelOrderCommandHandler cancels the order and frees its fixture slot in
// the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory OrderAssignmentUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderAssignmentUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = o.Cancel(); err != nil {
		return err
	}

	assignments := uow.AssignmentRepository()
	current, err := assignments.GetByOrder(ctx, o.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return err
	default:
		if err = assignments.Remove(ctx, current.ID()); err != nil {
			return err
		}
	}

	if err = orders.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

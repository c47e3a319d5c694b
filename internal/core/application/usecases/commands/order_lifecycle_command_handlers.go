package commands

import (
	"context"

	"production/internal/core/domain/model/order"
)

// updateOrder loads one order, applies change and stores it in a single
// transaction.
func updateOrder(ctx context.Context, factory OrderUoWFactory, orderID string, change func(*order.Order) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = change(o); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type FinalizeOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewFinalizeOrderCommandHandler(uowFactory OrderUoWFactory) FinalizeOrderCommandHandler {
	return FinalizeOrderCommandHandler{uowFactory: uowFactory}
}

func (h FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), (*order.Order).Finalize)
}

type EscalateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewEscalateOrderCommandHandler(uowFactory OrderUoWFactory) EscalateOrderCommandHandler {
	return EscalateOrderCommandHandler{uowFactory: uowFactory}
}

func (h EscalateOrderCommandHandler) Handle(ctx context.Context, cmd EscalateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), (*order.Order).Escalate)
}

// ShipOrderCommandHandler keeps the order's assignment as production history.
type ShipOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewShipOrderCommandHandler(uowFactory OrderUoWFactory) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{uowFactory: uowFactory}
}

func (h ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), (*order.Order).Ship)
}

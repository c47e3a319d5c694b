package commands

import (
	"context"

	"production/internal/core/domain/model/identifier"
	"production/internal/core/domain/model/order"

	"go.uber.org/zap"
)

// CreateOrderCommandHandler allocates the next order id and stores the new
// order. The sequence row stays locked from the read until commit, so two
// concurrent creations never see the same last id.
type CreateOrderCommandHandler struct {
	uowFactory OrderIDUoWFactory
	scheme     identifier.OrderIDScheme
	logger     *zap.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderIDUoWFactory,
	scheme identifier.OrderIDScheme,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		scheme:     scheme,
		logger:     logger,
	}
}

// Handle returns the id issued to the new order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sequences := uow.SequenceRepository()
	state, err := sequences.Lock(ctx, h.scheme.SequenceKey())
	if err != nil {
		return "", err
	}

	allocation := h.scheme.Next(cmd.OrderDate(), state.LastIssuedID)
	h.logAllocation(state, allocation)

	o, err := order.NewOrder(allocation.ID, cmd.OrderDate(), cmd.Department(), cmd.Details())
	if err != nil {
		return "", err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return "", err
	}

	if err = sequences.Save(ctx, state.Issue(allocation.ID, nil)); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return o.ID(), nil
}

func (h CreateOrderCommandHandler) logAllocation(state identifier.SequenceState, allocation identifier.Allocation) {
	if h.logger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("scheme", h.scheme.Name()),
		zap.String("lastIssuedId", state.LastIssuedID),
		zap.String("orderId", allocation.ID),
		zap.Stringer("outcome", allocation.Outcome),
	}

	switch allocation.Outcome {
	case identifier.Malformed:
		h.logger.Warn("discarded malformed sequence state, starting a fresh sequence", fields...)
	case identifier.FirstIssue:
		h.logger.Info("issuing first order id for scheme", fields...)
	case identifier.NewPrefix:
		h.logger.Debug("order id prefix rolled over", fields...)
	}
}

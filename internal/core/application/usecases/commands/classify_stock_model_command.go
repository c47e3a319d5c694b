package commands

import (
	"context"
	"errors"
	"strings"

	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrClassifyStockModelCommandIsNotConstructed = errors.New(
	"ClassifyStockModelCommand must be created via NewClassifyStockModelCommand constructor",
)

// ClassifyStockModelCommand resolves an order reported as needing
// classification by giving it an explicit stock model.
type ClassifyStockModelCommand struct {
	orderID      string
	stockModelID string
	guard        guard.ConstructorGuard
}

func NewClassifyStockModelCommand(orderID, stockModelID string) (ClassifyStockModelCommand, error) {
	id, idErr := requireOrderID(orderID)

	var modelErr error
	stockModelID = strings.TrimSpace(stockModelID)
	if stockModelID == "" {
		modelErr = errs.NewValueIsRequiredError("stockModelId")
	}

	if err := errors.Join(idErr, modelErr); err != nil {
		return ClassifyStockModelCommand{}, err
	}

	return ClassifyStockModelCommand{
		orderID:      id,
		stockModelID: stockModelID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ClassifyStockModelCommand) Validate() error {
	return c.guard.Validate(ErrClassifyStockModelCommandIsNotConstructed)
}

func (c ClassifyStockModelCommand) OrderID() string {
	return c.orderID
}

func (c ClassifyStockModelCommand) StockModelID() string {
	return c.stockModelID
}

// ClassifyStockModelCommandHandler rejects models outside the catalog when a
// catalog is configured, so a classified order is always schedulable.
type ClassifyStockModelCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    map[string]struct{}
}

func NewClassifyStockModelCommandHandler(uowFactory OrderUoWFactory, catalog []string) ClassifyStockModelCommandHandler {
	set := make(map[string]struct{}, len(catalog))
	for _, model := range catalog {
		set[model] = struct{}{}
	}
	return ClassifyStockModelCommandHandler{uowFactory: uowFactory, catalog: set}
}

func (h ClassifyStockModelCommandHandler) Handle(ctx context.Context, cmd ClassifyStockModelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if strings.EqualFold(cmd.StockModelID(), "none") {
		return errs.NewValueIsInvalidError("stockModelId")
	}
	if len(h.catalog) > 0 {
		if _, ok := h.catalog[cmd.StockModelID()]; !ok {
			return errs.NewValueIsInvalidError("stockModelId")
		}
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.ClassifyStockModel(cmd.StockModelID())
	})
}

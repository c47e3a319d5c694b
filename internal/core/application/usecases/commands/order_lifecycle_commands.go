package commands

import (
	"errors"
	"strings"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	ErrFinalizeOrderCommandIsNotConstructed = errors.New(
		"FinalizeOrderCommand must be created via NewFinalizeOrderCommand constructor",
	)
	ErrEscalateOrderCommandIsNotConstructed = errors.New(
		"EscalateOrderCommand must be created via NewEscalateOrderCommand constructor",
	)
	ErrShipOrderCommandIsNotConstructed = errors.New(
		"ShipOrderCommand must be created via NewShipOrderCommand constructor",
	)
)

// FinalizeOrderCommand moves a DRAFT order to FINALIZED, making it eligible
// for scheduling while it sits in an entry department.
type FinalizeOrderCommand struct {
	orderID string
	guard   guard.ConstructorGuard
}

func NewFinalizeOrderCommand(orderID string) (FinalizeOrderCommand, error) {
	id, err := requireOrderID(orderID)
	if err != nil {
		return FinalizeOrderCommand{}, err
	}
	return FinalizeOrderCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c FinalizeOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeOrderCommandIsNotConstructed)
}

func (c FinalizeOrderCommand) OrderID() string {
	return c.orderID
}

// EscalateOrderCommand raises the priority-escalated flag. An escalated order
// needing adjustment may be placed on any working day, once.
type EscalateOrderCommand struct {
	orderID string
	guard   guard.ConstructorGuard
}

func NewEscalateOrderCommand(orderID string) (EscalateOrderCommand, error) {
	id, err := requireOrderID(orderID)
	if err != nil {
		return EscalateOrderCommand{}, err
	}
	return EscalateOrderCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c EscalateOrderCommand) Validate() error {
	return c.guard.Validate(ErrEscalateOrderCommandIsNotConstructed)
}

func (c EscalateOrderCommand) OrderID() string {
	return c.orderID
}

type ShipOrderCommand struct {
	orderID string
	guard   guard.ConstructorGuard
}

func NewShipOrderCommand(orderID string) (ShipOrderCommand, error) {
	id, err := requireOrderID(orderID)
	if err != nil {
		return ShipOrderCommand{}, err
	}
	return ShipOrderCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

func (c ShipOrderCommand) OrderID() string {
	return c.orderID
}

func requireOrderID(orderID string) (string, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return "", errs.NewValueIsRequiredError("orderId")
	}
	return orderID, nil
}

package commands

import (
	"context"
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrMoveOrderCommandIsNotConstructed = errors.New(
	"MoveOrderCommand must be created via NewMoveOrderCommand constructor",
)

// MoveOrderCommand records that an order entered a department on a day.
type MoveOrderCommand struct {
	orderID    string
	department string
	on         kernel.Date
	guard      guard.ConstructorGuard
}

func NewMoveOrderCommand(orderID, department string, on kernel.Date) (MoveOrderCommand, error) {
	id, idErr := requireOrderID(orderID)

	var deptErr error
	department = strings.TrimSpace(department)
	if department == "" {
		deptErr = errs.NewValueIsRequiredError("department")
	}

	if err := errors.Join(idErr, deptErr, on.Validate()); err != nil {
		return MoveOrderCommand{}, err
	}

	return MoveOrderCommand{
		orderID:    id,
		department: department,
		on:         on,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c MoveOrderCommand) Validate() error {
	return c.guard.Validate(ErrMoveOrderCommandIsNotConstructed)
}

func (c MoveOrderCommand) OrderID() string {
	return c.orderID
}

func (c MoveOrderCommand) Department() string {
	return c.department
}

func (c MoveOrderCommand) On() kernel.Date {
	return c.on
}

// EntryDepartmentPolicy tells which departments are schedulable entry points.
type EntryDepartmentPolicy interface {
	IsEntryDepartment(department string) bool
}

// MoveOrderCommandHandler moves orders along the pipeline. Leaving the entry
// departments starts production (FINALIZED becomes IN_PROGRESS).
type MoveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     EntryDepartmentPolicy
}

func NewMoveOrderCommandHandler(uowFactory OrderUoWFactory, policy EntryDepartmentPolicy) MoveOrderCommandHandler {
	return MoveOrderCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h MoveOrderCommandHandler) Handle(ctx context.Context, cmd MoveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	entry := h.policy.IsEntryDepartment(cmd.Department())
	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.MoveToDepartment(cmd.Department(), cmd.On(), entry)
	})
}

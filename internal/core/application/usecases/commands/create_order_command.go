package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a DRAFT order. The id is not part of the
// command: it is allocated from the active identifier scheme at creation.
//
//	cmd, err := NewCreateOrderCommand(today, "P1 Production Queue", order.Details{
//	    ExternalOrderNumber: "WEB-1001",
//	    DueDate:             today.AddDays(90),
//	    StockModelID:        "cf_chalk_branch",
//	    PriorityScore:       order.DefaultPriorityScore,
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderDate  kernel.Date
	department string
	details    order.Details

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(orderDate kernel.Date, department string, details order.Details) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderDate(orderDate),
		cmd.setDepartment(department),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderDate is the day the order was placed. It also selects the id prefix.
func (c CreateOrderCommand) OrderDate() kernel.Date {
	return c.orderDate
}

func (c CreateOrderCommand) Department() string {
	return c.department
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setOrderDate(orderDate kernel.Date) error {
	if err := orderDate.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderDate", err)
	}

	c.orderDate = orderDate
	return nil
}

func (c *CreateOrderCommand) setDepartment(department string) error {
	department = strings.TrimSpace(department)
	if department == "" {
		return errs.NewValueIsRequiredError("department")
	}

	c.department = department
	return nil
}

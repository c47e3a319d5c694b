package order

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

const (
	// MaxIDLength bounds order ids and external order numbers.
	MaxIDLength = 32

	MinPriorityScore = 0
	MaxPriorityScore = 100
	// DefaultPriorityScore is used when the caller has no opinion. Lower is more urgent.
	DefaultPriorityScore = 50
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrDepartmentMoveBackwards is returned when a move is dated before the current department entry.
	ErrDepartmentMoveBackwards = errors.New("department move cannot precede the current department entry")
)

// Details carries the descriptive attributes of an order that are supplied by
// the caller at creation time.
type Details struct {
	ExternalOrderNumber string
	// DueDate is optional; the zero Date means "not known yet".
	DueDate         kernel.Date
	StockModelID    string
	PriorityScore   int
	NeedsAdjustment bool
}

// Order is the aggregate root of the production pipeline.
//
// Invariants:
//   - id is a non-empty code of at most MaxIDLength characters
//   - orderDate and departmentEnteredAt are valid dates, entered >= ordered
//   - currentDepartment is never empty
//   - priorityScore is within [MinPriorityScore, MaxPriorityScore]
//   - status is a valid Status
type Order struct {
	id                  string
	externalOrderNumber string
	orderDate           kernel.Date
	dueDate             kernel.Date
	stockModelID        string
	currentDepartment   string
	departmentEnteredAt kernel.Date
	priorityScore       int
	status              Status

	// needsAdjustment marks pending length-of-pull rework.
	needsAdjustment bool
	// priorityEscalated is raised by an external collaborator and lets
	// adjustment work skip the Monday-only rule once.
	priorityEscalated bool

	isConstructed bool
}

// NewOrder creates a DRAFT order that enters department on orderDate.
//
//	o, err := order.NewOrder("AA001", today, "P1 Production Queue", order.Details{
//	    DueDate:       today.AddDays(90),
//	    StockModelID:  "cf_chalk_branch",
//	    PriorityScore: order.DefaultPriorityScore,
//	})
func NewOrder(id string, orderDate kernel.Date, department string, details Details) (*Order, error) {
	o := &Order{
		status:        Draft,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderDate(orderDate),
		o.setDepartment(department, orderDate),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state, re-checking every invariant.
func RestoreOrder(
	id string,
	orderDate kernel.Date,
	department string,
	departmentEnteredAt kernel.Date,
	status Status,
	priorityEscalated bool,
	details Details,
) (*Order, error) {
	o := &Order{
		priorityEscalated: priorityEscalated,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderDate(orderDate),
		o.setDepartment(department, departmentEnteredAt),
		o.setDetails(details),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	if departmentEnteredAt.Before(orderDate) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"departmentEnteredAt",
			fmt.Errorf("%s is before order date %s", departmentEnteredAt, orderDate),
		)
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() string {
	return o.id
}

func (o *Order) ExternalOrderNumber() string {
	return o.externalOrderNumber
}

func (o *Order) OrderDate() kernel.Date {
	return o.orderDate
}

// DueDate returns the due date and whether one is known.
func (o *Order) DueDate() (kernel.Date, bool) {
	return o.dueDate, !o.dueDate.IsZero()
}

func (o *Order) StockModelID() string {
	return o.stockModelID
}

func (o *Order) CurrentDepartment() string {
	return o.currentDepartment
}

func (o *Order) DepartmentEnteredAt() kernel.Date {
	return o.departmentEnteredAt
}

func (o *Order) PriorityScore() int {
	return o.priorityScore
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) NeedsAdjustment() bool {
	return o.needsAdjustment
}

func (o *Order) PriorityEscalated() bool {
	return o.priorityEscalated
}

// Details returns the descriptive attributes in the shape accepted by NewOrder.
func (o *Order) Details() Details {
	return Details{
		ExternalOrderNumber: o.externalOrderNumber,
		DueDate:             o.dueDate,
		StockModelID:        o.stockModelID,
		PriorityScore:       o.priorityScore,
		NeedsAdjustment:     o.needsAdjustment,
	}
}

// Finalize locks the order in for production.
func (o *Order) Finalize() error {
	next, err := o.status.Finalize()
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

// MoveToDepartment records that the order entered department on the given day.
// entryDepartment tells whether the target is one of the schedulable entry
// departments; leaving them moves a FINALIZED order to IN_PROGRESS. Moving to
// the current department is a no-op and keeps the dwell clock running.
func (o *Order) MoveToDepartment(department string, on kernel.Date, entryDepartment bool) error {
	if o.status == Draft || o.status.IsTerminal() {
		return invalidTransition(o.status, "move")
	}

	department = strings.TrimSpace(department)
	if department == "" {
		return errs.NewValueIsRequiredError("department")
	}
	if err := on.Validate(); err != nil {
		return err
	}
	if on.Before(o.departmentEnteredAt) {
		return ErrDepartmentMoveBackwards
	}
	if department == o.currentDepartment {
		return nil
	}

	next := o.status
	if !entryDepartment {
		var err error
		if next, err = o.status.Start(); err != nil {
			return err
		}
	}

	o.status = next
	o.currentDepartment = department
	o.departmentEnteredAt = on
	return nil
}

// Escalate raises the priority-escalated flag.
func (o *Order) Escalate() error {
	if o.status.IsTerminal() {
		return invalidTransition(o.status, "escalate")
	}

	o.priorityEscalated = true
	return nil
}

// ConsumeEscalation clears the escalation once it has been used by an
// adjustment placement.
func (o *Order) ConsumeEscalation() {
	o.priorityEscalated = false
}

// RequireAdjustment sets or clears pending length-of-pull rework.
func (o *Order) RequireAdjustment(needed bool) error {
	if o.status.IsTerminal() {
		return invalidTransition(o.status, "adjust")
	}

	o.needsAdjustment = needed
	return nil
}

// ClassifyStockModel assigns the stock model of an order that could not be scheduled without one.
func (o *Order) ClassifyStockModel(stockModelID string) error {
	if o.status.IsTerminal() {
		return invalidTransition(o.status, "classify")
	}

	stockModelID = strings.TrimSpace(stockModelID)
	if stockModelID == "" {
		return errs.NewValueIsRequiredError("stockModelId")
	}

	o.stockModelID = stockModelID
	return nil
}

func (o *Order) Ship() error {
	next, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

func (o *Order) Cancel() error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

func (o *Order) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	if len(id) > MaxIDLength {
		return errs.NewValueIsOutOfRangeError("orderId length", len(id), 1, MaxIDLength)
	}

	o.id = id
	return nil
}

func (o *Order) setOrderDate(orderDate kernel.Date) error {
	if err := orderDate.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderDate", err)
	}

	o.orderDate = orderDate
	return nil
}

func (o *Order) setDepartment(department string, enteredAt kernel.Date) error {
	department = strings.TrimSpace(department)
	if department == "" {
		return errs.NewValueIsRequiredError("department")
	}
	if err := enteredAt.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("departmentEnteredAt", err)
	}

	o.currentDepartment = department
	o.departmentEnteredAt = enteredAt
	return nil
}

func (o *Order) setDetails(details Details) error {
	if len(details.ExternalOrderNumber) > MaxIDLength {
		return errs.NewValueIsOutOfRangeError("externalOrderNumber length", len(details.ExternalOrderNumber), 0, MaxIDLength)
	}
	if details.PriorityScore < MinPriorityScore || details.PriorityScore > MaxPriorityScore {
		return errs.NewValueIsOutOfRangeError("priorityScore", details.PriorityScore, MinPriorityScore, MaxPriorityScore)
	}

	o.externalOrderNumber = strings.TrimSpace(details.ExternalOrderNumber)
	o.dueDate = details.DueDate
	o.stockModelID = strings.TrimSpace(details.StockModelID)
	o.priorityScore = details.PriorityScore
	o.needsAdjustment = details.NeedsAdjustment
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	o.status = status
	return nil
}

// Package schedule holds fixture/date assignments produced by the schedule engine.
package schedule

import (
	"errors"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

// Assignment places one order on one fixture for one calendar day. An order
// has at most one active assignment; replacing it is a delete plus insert.
type Assignment struct {
	id             kernel.UUID
	orderID        string
	fixtureID      string
	date           kernel.Date
	kind           Kind
	manualOverride bool
	createdAt      time.Time

	isConstructed bool
}

// NewAssignment creates an assignment with a fresh id.
func NewAssignment(orderID, fixtureID string, date kernel.Date, kind Kind, manualOverride bool) (*Assignment, error) {
	return RestoreAssignment(kernel.NewUUID(), orderID, fixtureID, date, kind, manualOverride, time.Now().UTC())
}

// RestoreAssignment rebuilds an assignment from storage.
func RestoreAssignment(
	id kernel.UUID,
	orderID, fixtureID string,
	date kernel.Date,
	kind Kind,
	manualOverride bool,
	createdAt time.Time,
) (*Assignment, error) {
	orderID = strings.TrimSpace(orderID)
	fixtureID = strings.TrimSpace(fixtureID)

	var orderErr, fixtureErr error
	if orderID == "" {
		orderErr = errs.NewValueIsRequiredError("orderId")
	}
	if fixtureID == "" {
		fixtureErr = errs.NewValueIsRequiredError("fixtureId")
	}

	if err := errors.Join(id.Validate(), orderErr, fixtureErr, date.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	return &Assignment{
		id:             id,
		orderID:        orderID,
		fixtureID:      fixtureID,
		date:           date,
		kind:           kind,
		manualOverride: manualOverride,
		createdAt:      createdAt,
		isConstructed:  true,
	}, nil
}

func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

func (a *Assignment) ID() kernel.UUID {
	return a.id
}

func (a *Assignment) OrderID() string {
	return a.orderID
}

func (a *Assignment) FixtureID() string {
	return a.fixtureID
}

func (a *Assignment) Date() kernel.Date {
	return a.date
}

func (a *Assignment) Kind() Kind {
	return a.kind
}

// ManualOverride reports whether a person placed this assignment, possibly on
// a day the automatic pass would skip.
func (a *Assignment) ManualOverride() bool {
	return a.manualOverride
}

func (a *Assignment) CreatedAt() time.Time {
	return a.createdAt
}

// Slot returns the (fixture, date) pair this assignment consumes.
func (a *Assignment) Slot() Slot {
	return Slot{FixtureID: a.fixtureID, Date: a.date}
}

package queries

import (
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/schedule"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// MaxScheduleRangeDays bounds a single schedule read.
const MaxScheduleRangeDays = 366

var (
	ErrGetScheduleQueryIsNotConstructed = errors.New(
		"GetScheduleQuery must be created via NewGetScheduleQuery constructor",
	)
)

// GetScheduleQuery lists the assignments scheduled between from and to, both inclusive.
type GetScheduleQuery struct {
	from  kernel.Date
	to    kernel.Date
	guard guard.ConstructorGuard
}

func NewGetScheduleQuery(from, to kernel.Date) (GetScheduleQuery, error) {
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return GetScheduleQuery{}, err
	}
	if to.Before(from) {
		return GetScheduleQuery{}, errs.NewValueIsInvalidErrorWithCause("to", fmt.Errorf("%s is before %s", to, from))
	}
	if span := from.DaysUntil(to); span > MaxScheduleRangeDays {
		return GetScheduleQuery{}, errs.NewValueIsOutOfRangeError("schedule range days", span, 0, MaxScheduleRangeDays)
	}

	return GetScheduleQuery{
		from:  from,
		to:    to,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetScheduleQuery) Validate() error {
	return q.guard.Validate(ErrGetScheduleQueryIsNotConstructed)
}

func (q GetScheduleQuery) From() kernel.Date {
	return q.from
}

func (q GetScheduleQuery) To() kernel.Date {
	return q.to
}

// GetScheduleQueryResponse is one assignment joined with its order.
type GetScheduleQueryResponse struct {
	AssignmentID        kernel.UUID
	OrderID             string
	ExternalOrderNumber string
	StockModelID        string
	OrderStatus         order.Status
	FixtureID           string
	Date                kernel.Date
	Kind                schedule.Kind
	ManualOverride      bool
}

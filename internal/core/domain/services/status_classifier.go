package services

import (
	"production/internal/core/domain/model/health"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/leadtime"
	"production/internal/core/domain/model/order"
)

// ScheduleFacts is the part of an order the classifier looks at. Read models
// build it straight from query rows; FactsOf builds it from an aggregate.
type ScheduleFacts struct {
	// DueDate is optional; the zero Date yields Indeterminate.
	DueDate             kernel.Date
	CurrentDepartment   string
	DepartmentEnteredAt kernel.Date
	NeedsAdjustment     bool
}

// FactsOf extracts ScheduleFacts from an order.
func FactsOf(o *order.Order) ScheduleFacts {
	due, _ := o.DueDate()
	return ScheduleFacts{
		DueDate:             due,
		CurrentDepartment:   o.CurrentDepartment(),
		DepartmentEnteredAt: o.DepartmentEnteredAt(),
		NeedsAdjustment:     o.NeedsAdjustment(),
	}
}

// Assessment is a classification together with the figures it was derived from.
type Assessment struct {
	Status              health.Status
	DwellDays           int
	ExpectedDwellDays   int
	RemainingLeadDays   int
	ProjectedCompletion kernel.Date
}

// StatusClassifier derives schedule health against a fixed lead-time table.
//
// For today T, due date D, dwell w = T - departmentEnteredAt (never negative)
// and expected dwell e of the current department:
//
//	remaining   = sum of expected dwell of the departments after the current one
//	reachable   = T + remaining <= D
//	overdue     = w > e
//
//	overdue && !reachable  -> Critical
//	!reachable             -> CannotMeetDue
//	overdue                -> DeptOverdue
//	otherwise              -> OnSchedule
//
// The classifier is a pure function of its inputs and safe for concurrent use.
// For a fixed order, moving today forward never improves the status: once the
// department is overdue it stays overdue, and the projected completion moves
// with today.
type StatusClassifier struct {
	table leadtime.Table
}

// NewStatusClassifier binds a classifier to table.
func NewStatusClassifier(table leadtime.Table) StatusClassifier {
	return StatusClassifier{table: table}
}

// Classify returns the schedule health of o on today.
func (c StatusClassifier) Classify(o *order.Order, today kernel.Date) health.Status {
	return c.Assess(FactsOf(o), today).Status
}

// Assess classifies facts on today and reports the intermediate figures.
func (c StatusClassifier) Assess(facts ScheduleFacts, today kernel.Date) Assessment {
	adjusted := facts.NeedsAdjustment
	expected := c.table.ExpectedDwell(facts.CurrentDepartment, adjusted)

	dwell := 0
	if !facts.DepartmentEnteredAt.IsZero() {
		dwell = max(facts.DepartmentEnteredAt.DaysUntil(today), 0)
	}

	remaining := c.table.DownstreamDwell(facts.CurrentDepartment, adjusted)
	projected := today.AddDays(remaining)

	a := Assessment{
		DwellDays:           dwell,
		ExpectedDwellDays:   expected,
		RemainingLeadDays:   remaining,
		ProjectedCompletion: projected,
	}

	if facts.DueDate.IsZero() {
		a.Status = health.Indeterminate
		return a
	}

	reachable := !projected.After(facts.DueDate)
	overdue := dwell > expected

	switch {
	case overdue && !reachable:
		a.Status = health.Critical
	case !reachable:
		a.Status = health.CannotMeetDue
	case overdue:
		a.Status = health.DeptOverdue
	default:
		a.Status = health.OnSchedule
	}

	return a
}

// Classify is the stateless form of StatusClassifier.Classify.
func Classify(o *order.Order, today kernel.Date, table leadtime.Table) health.Status {
	return NewStatusClassifier(table).Classify(o, today)
}

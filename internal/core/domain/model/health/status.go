// Package health describes the schedule health of an order. Health is always
// derived from the order, the lead-time table and the current day; it is
// never stored.
package health

import (
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// Status is the schedule-health classification of an active order.
type Status int

const (
	Unknown Status = iota
	// OnSchedule means within the department dwell and the due date is reachable.
	OnSchedule
	// DeptOverdue means the order has outstayed its department but can still make the due date.
	DeptOverdue
	// CannotMeetDue means the remaining lead time overshoots the due date.
	CannotMeetDue
	// Critical is DeptOverdue and CannotMeetDue at once.
	Critical
	// Indeterminate means the order has no due date.
	Indeterminate
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "UNKNOWN",
		OnSchedule:    "ON_SCHEDULE",
		DeptOverdue:   "DEPT_OVERDUE",
		CannotMeetDue: "CANNOT_MEET_DUE",
		Critical:      "CRITICAL",
		Indeterminate: "INDETERMINATE",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ParseStatus maps the textual form back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("scheduleStatus", fmt.Errorf("%q is not a valid schedule status", s))
}

// IsAlerting reports whether the status must be pushed to downstream consumers.
func (s Status) IsAlerting() bool {
	return s == Critical || s == CannotMeetDue
}

// Severity orders statuses for monitoring: higher is worse. Indeterminate
// ranks lowest since nothing can be derived without a due date.
func (s Status) Severity() int {
	switch s {
	case Indeterminate:
		return 0
	case OnSchedule:
		return 1
	case DeptOverdue:
		return 2
	case CannotMeetDue:
		return 3
	case Critical:
		return 4
	default:
		return -1
	}
}

// Alert is emitted for an order whose health is alerting.
type Alert struct {
	OrderID             string
	Status              Status
	Department          string
	DueDate             kernel.Date
	DwellDays           int
	ExpectedDwellDays   int
	RemainingLeadDays   int
	ProjectedCompletion kernel.Date
	DetectedOn          kernel.Date
}

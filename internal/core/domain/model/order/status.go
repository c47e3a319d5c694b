package order

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	DRAFT ──> FINALIZED ──> IN_PROGRESS ──> SHIPPED
//	  │           │              │
//	  └───────────┴──────────────┴──────> CANCELLED
//
// SHIPPED and CANCELLED are terminal. Terminal orders are never scheduled and
// are left out of the pipeline health read.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota

	// Draft is the status of a freshly created order. Its id is already issued.
	Draft

	// Finalized orders are eligible for scheduling while they sit in an entry department.
	Finalized

	// InProgress orders have left the entry departments.
	InProgress

	Shipped

	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Draft:      "DRAFT",
		Finalized:  "FINALIZED",
		InProgress: "IN_PROGRESS",
		Shipped:    "SHIPPED",
		Cancelled:  "CANCELLED",
	}
}

// ParseStatus maps the textual form back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. from a corrupted row.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Shipped || s == Cancelled
}

// Finalize transitions DRAFT -> FINALIZED.
func (s Status) Finalize() (Status, error) {
	if s != Draft {
		return Unknown, invalidTransition(s, "finalize")
	}
	return Finalized, nil
}

// Start transitions FINALIZED -> IN_PROGRESS. IN_PROGRESS stays IN_PROGRESS so
// moves between downstream departments do not need a special case.
func (s Status) Start() (Status, error) {
	if s != Finalized && s != InProgress {
		return Unknown, invalidTransition(s, "start")
	}
	return InProgress, nil
}

// Ship transitions IN_PROGRESS -> SHIPPED.
func (s Status) Ship() (Status, error) {
	if s != InProgress {
		return Unknown, invalidTransition(s, "ship")
	}
	return Shipped, nil
}

// Cancel transitions any non-terminal status to CANCELLED.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, invalidTransition(s, "cancel")
	}
	return Cancelled, nil
}

func invalidTransition(s Status, action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%s is not a valid status to %s", s.String(), action),
	)
}

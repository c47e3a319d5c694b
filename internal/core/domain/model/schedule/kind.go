package schedule

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Kind distinguishes regular production slots from length-of-pull adjustment work.
type Kind int

const (
	UnknownKind Kind = iota
	Production
	Adjustment
)

func (k Kind) String() string {
	switch k {
	case Production:
		return "PRODUCTION"
	case Adjustment:
		return "ADJUSTMENT"
	default:
		return "UNKNOWN"
	}
}

func (k Kind) Validate() error {
	if k != Production && k != Adjustment {
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%d is not a valid assignment kind", k))
	}
	return nil
}

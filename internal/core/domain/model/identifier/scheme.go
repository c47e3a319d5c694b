package identifier

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// Names accepted by the ORDER_ID_SCHEME setting.
const (
	SchemePeriod    = "period"
	SchemeYearMonth = "year_month"
)

// Outcome explains how an Allocation was derived from the previous identifier.
type Outcome int

const (
	// Continued means the previous id shared the prefix and was incremented.
	Continued Outcome = iota + 1
	// NewPrefix means the prefix changed, so the sequence restarted at 001.
	NewPrefix
	// FirstIssue means there was no previous id.
	FirstIssue
	// Malformed means the previous id could not be parsed and was discarded.
	Malformed
)

func (o Outcome) String() string {
	switch o {
	case Continued:
		return "continued"
	case NewPrefix:
		return "new_prefix"
	case FirstIssue:
		return "first_issue"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Allocation is the result of asking a scheme for the next order id.
type Allocation struct {
	ID      string
	Prefix  string
	Outcome Outcome
}

// OrderIDScheme produces order identifiers from a date and the last issued id.
// Next never fails: unusable state yields a fresh sequence for the date.
type OrderIDScheme interface {
	Name() string
	// SequenceKey names the persisted state row owned by the scheme.
	SequenceKey() string
	Prefix(date kernel.Date) string
	Next(date kernel.Date, lastIssuedID string) Allocation
}

func sequenceKey(scheme string) string {
	return "order_id:" + scheme
}

func formatID(prefix string, sequence int) string {
	return fmt.Sprintf("%s%03d", prefix, sequence)
}

// nextInPrefix implements the shared continuation rule. pattern must capture
// the prefix in group 1 and the decimal sequence in group 2.
func nextInPrefix(prefix, lastIssuedID string, pattern *regexp.Regexp) Allocation {
	last := strings.TrimSpace(lastIssuedID)
	if last == "" {
		return Allocation{ID: formatID(prefix, 1), Prefix: prefix, Outcome: FirstIssue}
	}

	m := pattern.FindStringSubmatch(last)
	if m == nil {
		return Allocation{ID: formatID(prefix, 1), Prefix: prefix, Outcome: Malformed}
	}

	if m[1] != prefix {
		return Allocation{ID: formatID(prefix, 1), Prefix: prefix, Outcome: NewPrefix}
	}

	sequence, err := strconv.Atoi(m[2])
	if err != nil || sequence == math.MaxInt {
		return Allocation{ID: formatID(prefix, 1), Prefix: prefix, Outcome: Malformed}
	}

	return Allocation{ID: formatID(prefix, sequence+1), Prefix: prefix, Outcome: Continued}
}

func letter(n int) byte {
	return byte('A' + n)
}

// SchemeByName returns the scheme selected by name. baseDate only applies to
// the period scheme; the zero Date keeps DefaultBaseDate.
func SchemeByName(name string, baseDate kernel.Date) (OrderIDScheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SchemePeriod:
		if baseDate.IsZero() {
			return DefaultPeriodScheme(), nil
		}
		scheme, err := NewPeriodScheme(baseDate, DefaultPeriodDays)
		if err != nil {
			return nil, err
		}
		return scheme, nil
	case SchemeYearMonth:
		return NewYearMonthScheme(), nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("orderIdScheme",
			fmt.Errorf("%q is not one of %s, %s", name, SchemePeriod, SchemeYearMonth))
	}
}

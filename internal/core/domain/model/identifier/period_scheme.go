package identifier

import (
	"errors"
	"regexp"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// DefaultPeriodDays is the length of one identifier period.
const DefaultPeriodDays = 14

// DefaultBaseDate returns the anchor of period 0 ("AA").
func DefaultBaseDate() kernel.Date {
	return kernel.NewDate(2025, time.January, 10)
}

var periodIDPattern = regexp.MustCompile(`^([A-Z]{2})([0-9]{3,})$`)

// PeriodScheme encodes the period index counted from baseDate in two letters:
// first = (index / 26) mod 26, second = index mod 26. Index 0 is "AA", 1 is
// "AB", 25 is "AZ", 26 is "BA". After 676 periods the prefixes wrap around.
// Dates before baseDate clamp to period 0.
type PeriodScheme struct {
	baseDate   kernel.Date
	periodDays int
}

// NewPeriodScheme validates the anchor and period length.
func NewPeriodScheme(baseDate kernel.Date, periodDays int) (PeriodScheme, error) {
	var periodErr error
	if periodDays <= 0 {
		periodErr = errs.NewValueIsOutOfRangeError("periodDays", periodDays, 1, "unbounded")
	}
	if err := errors.Join(baseDate.Validate(), periodErr); err != nil {
		return PeriodScheme{}, err
	}

	return PeriodScheme{baseDate: baseDate, periodDays: periodDays}, nil
}

// DefaultPeriodScheme anchors on DefaultBaseDate with DefaultPeriodDays.
func DefaultPeriodScheme() PeriodScheme {
	return PeriodScheme{baseDate: DefaultBaseDate(), periodDays: DefaultPeriodDays}
}

func (s PeriodScheme) Name() string {
	return SchemePeriod
}

func (s PeriodScheme) SequenceKey() string {
	return sequenceKey(SchemePeriod)
}

func (s PeriodScheme) BaseDate() kernel.Date {
	return s.baseDate
}

// PeriodIndex returns floor((date - baseDate) / periodDays), never negative.
func (s PeriodScheme) PeriodIndex(date kernel.Date) int {
	elapsed := s.baseDate.DaysUntil(date)
	if elapsed < 0 {
		return 0
	}
	return elapsed / s.periodDays
}

// Prefix returns the two-letter code of the period containing date.
func (s PeriodScheme) Prefix(date kernel.Date) string {
	idx := s.PeriodIndex(date)
	return string([]byte{letter((idx / 26) % 26), letter(idx % 26)})
}

// Next returns the id following lastIssuedID for an order created on date.
// The same prefix continues the sequence (999 is followed by 1000); any other
// prefix, including one from a later period, restarts at 001.
func (s PeriodScheme) Next(date kernel.Date, lastIssuedID string) Allocation {
	return nextInPrefix(s.Prefix(date), lastIssuedID, periodIDPattern)
}

// AllocateOrderID is the period scheme with its default anchor and length.
func AllocateOrderID(date kernel.Date, lastIssuedID string) string {
	return DefaultPeriodScheme().Next(date, lastIssuedID).ID
}

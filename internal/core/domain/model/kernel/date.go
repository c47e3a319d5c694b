package kernel

import (
	"fmt"
	"time"

	"production/internal/pkg/errs"
)

// DateLayout is the textual form used on the wire and in configuration.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// ErrDateIsNotConstructed is returned when validating a zero-value Date.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError("date")

// Date is a calendar day. Internally it is midnight UTC of that day, which
// keeps day differences exact regardless of daylight-saving transitions.
type Date struct {
	t time.Time
}

// NewDate builds a Date from its civil components. Out-of-range values are
// normalised the way time.Date does it (January 32 becomes February 1).
func NewDate(year int, month time.Month, dayOfMonth int) Date {
	return Date{t: time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t as observed in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current calendar day in loc (UTC when loc is nil).
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(time.Now().In(loc))
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", fmt.Errorf("%q is not in %s form: %w", s, DateLayout, err))
	}
	return DateOf(t), nil
}

// AddDays returns the date n calendar days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil returns the signed number of calendar days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t) / day)
}

func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

func (d Date) Year() int {
	return d.t.Year()
}

func (d Date) Month() time.Month {
	return d.t.Month()
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// Compare returns -1, 0 or +1, suitable for slices.SortFunc.
func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Validate returns ErrDateIsNotConstructed for the zero Date.
func (d Date) Validate() error {
	if d.IsZero() {
		return ErrDateIsNotConstructed
	}
	return nil
}

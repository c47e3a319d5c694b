package identifier

import (
	"regexp"

	"production/internal/core/domain/model/kernel"
)

const yearMonthEpoch = 2021

var yearMonthIDPattern = regexp.MustCompile(`^([A-Z]{2,3})([0-9]{3,})$`)

// YearMonthScheme prefixes ids with a year code and a month letter. Years
// 2021..2046 map to A..Z, later years to two letters starting at "AA";
// earlier years clamp to A. January is A and December is L. The sequence
// restarts whenever the prefix changes, i.e. every month.
type YearMonthScheme struct{}

func NewYearMonthScheme() YearMonthScheme {
	return YearMonthScheme{}
}

func (YearMonthScheme) Name() string {
	return SchemeYearMonth
}

func (YearMonthScheme) SequenceKey() string {
	return sequenceKey(SchemeYearMonth)
}

func (YearMonthScheme) Prefix(date kernel.Date) string {
	return yearCode(date.Year()) + string(letter(int(date.Month())-1))
}

func (s YearMonthScheme) Next(date kernel.Date, lastIssuedID string) Allocation {
	return nextInPrefix(s.Prefix(date), lastIssuedID, yearMonthIDPattern)
}

func yearCode(year int) string {
	offset := year - yearMonthEpoch
	if offset < 0 {
		offset = 0
	}
	if offset < 26 {
		return string(letter(offset))
	}
	offset -= 26
	return string([]byte{letter((offset / 26) % 26), letter(offset % 26)})
}

package identifier_test

import (
	"fmt"
	"testing"
	"time"

	"production/internal/core/domain/model/identifier"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodScheme_Prefix(t *testing.T) {
	scheme := identifier.DefaultPeriodScheme()
	base := identifier.DefaultBaseDate()

	tests := []struct {
		name   string
		date   kernel.Date
		index  int
		prefix string
	}{
		{name: "anchor day", date: base, index: 0, prefix: "AA"},
		{name: "last day of first period", date: base.AddDays(13), index: 0, prefix: "AA"},
		{name: "first day of second period", date: base.AddDays(14), index: 1, prefix: "AB"},
		{name: "period 25", date: base.AddDays(25 * 14), index: 25, prefix: "AZ"},
		{name: "period 26 carries into first letter", date: base.AddDays(26 * 14), index: 26, prefix: "BA"},
		{name: "period 27", date: base.AddDays(27 * 14), index: 27, prefix: "BB"},
		{name: "last two-letter code", date: base.AddDays(675 * 14), index: 675, prefix: "ZZ"},
		{name: "wraps after 676 periods", date: base.AddDays(676 * 14), index: 676, prefix: "AA"},
		{name: "before anchor clamps to period 0", date: base.AddDays(-30), index: 0, prefix: "AA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.index, scheme.PeriodIndex(tt.date))
			assert.Equal(t, tt.prefix, scheme.Prefix(tt.date))
		})
	}
}

func TestPeriodScheme_Next(t *testing.T) {
	scheme := identifier.DefaultPeriodScheme()
	jan10 := kernel.NewDate(2025, time.January, 10)
	jan24 := kernel.NewDate(2025, time.January, 24)

	tests := []struct {
		name    string
		date    kernel.Date
		lastID  string
		want    string
		outcome identifier.Outcome
	}{
		{name: "first issue", date: jan10, lastID: "", want: "AA001", outcome: identifier.FirstIssue},
		{name: "whitespace only is first issue", date: jan10, lastID: "   ", want: "AA001", outcome: identifier.FirstIssue},
		{name: "same period continues", date: jan10, lastID: "AA001", want: "AA002", outcome: identifier.Continued},
		{name: "next period resets", date: jan24, lastID: "AA002", want: "AB001", outcome: identifier.NewPrefix},
		{name: "overflow widens", date: jan10, lastID: "AA999", want: "AA1000", outcome: identifier.Continued},
		{name: "wide sequence continues", date: jan10, lastID: "AA1000", want: "AA1001", outcome: identifier.Continued},
		{name: "lower case is malformed", date: jan10, lastID: "aa001", want: "AA001", outcome: identifier.Malformed},
		{name: "short sequence is malformed", date: jan10, lastID: "AA01", want: "AA001", outcome: identifier.Malformed},
		{name: "year-month id is malformed", date: jan10, lastID: "EAB001", want: "AA001", outcome: identifier.Malformed},
		{name: "garbage is malformed", date: jan10, lastID: "UNIQUE002", want: "AA001", outcome: identifier.Malformed},
		{name: "older prefix from skewed clock resets", date: jan10, lastID: "AB005", want: "AA001", outcome: identifier.NewPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scheme.Next(tt.date, tt.lastID)

			assert.Equal(t, tt.want, got.ID)
			assert.Equal(t, tt.outcome, got.Outcome)
			assert.Equal(t, tt.want, identifier.AllocateOrderID(tt.date, tt.lastID))
		})
	}
}

func TestPeriodScheme_SequenceIsUniqueAndIncreasing(t *testing.T) {
	scheme := identifier.DefaultPeriodScheme()
	date := identifier.DefaultBaseDate().AddDays(3)

	seen := make(map[string]struct{})
	last := ""
	for i := 1; i <= 1500; i++ {
		next := scheme.Next(date, last).ID
		_, dup := seen[next]
		require.False(t, dup, "duplicate id %s", next)
		seen[next] = struct{}{}
		require.Equal(t, fmt.Sprintf("AA%03d", i), next)
		last = next
	}
}

func TestNewPeriodScheme(t *testing.T) {
	t.Run("custom anchor", func(t *testing.T) {
		scheme, err := identifier.NewPeriodScheme(kernel.NewDate(2024, time.January, 1), 7)

		require.NoError(t, err)
		assert.Equal(t, "AB", scheme.Prefix(kernel.NewDate(2024, time.January, 8)))
		assert.Equal(t, "order_id:period", scheme.SequenceKey())
	})

	t.Run("invalid arguments are joined", func(t *testing.T) {
		_, err := identifier.NewPeriodScheme(kernel.Date{}, 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestSchemeByName(t *testing.T) {
	period, err := identifier.SchemeByName("", kernel.Date{})
	require.NoError(t, err)
	assert.Equal(t, identifier.SchemePeriod, period.Name())
	assert.Equal(t, "order_id:period", period.SequenceKey())

	rebased, err := identifier.SchemeByName(" Period ", kernel.NewDate(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "AA", rebased.Prefix(kernel.NewDate(2024, 1, 14)))
	assert.Equal(t, "AB", rebased.Prefix(kernel.NewDate(2024, 1, 15)))

	ym, err := identifier.SchemeByName("year_month", kernel.Date{})
	require.NoError(t, err)
	assert.Equal(t, "order_id:year_month", ym.SequenceKey())

	_, err = identifier.SchemeByName("roman", kernel.Date{})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

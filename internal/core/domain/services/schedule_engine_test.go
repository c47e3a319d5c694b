package services_test

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"production/internal/core/domain/model/fixture"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/schedule"
	"production/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	queue = "P1 Production Queue"
	layup = "Layup/Plugging"
)

// 2025-03-03 is a Monday.
var monday = kernel.NewDate(2025, time.March, 3)

type orderOpt func(*order.Details)

func due(d kernel.Date) orderOpt { return func(x *order.Details) { x.DueDate = d } }
func noDue() orderOpt { return func(x *order.Details) { x.DueDate = kernel.Date{} } }
func priority(p int) orderOpt { return func(x *order.Details) { x.PriorityScore = p } }
func model(m string) orderOpt { return func(x *order.Details) { x.StockModelID = m } }
func needsAdjustment() orderOpt { return func(x *order.Details) { x.NeedsAdjustment = true } }

func finalized(t *testing.T, id string, opts ...orderOpt) *order.Order {
	t.Helper()
	details := order.Details{
		DueDate:       monday.AddDays(60),
		StockModelID:  "cf_chalk",
		PriorityScore: order.DefaultPriorityScore,
	}
	for _, opt := range opts {
		opt(&details)
	}
	o, err := order.RestoreOrder(id, monday.AddDays(-20), queue, monday.AddDays(-20), order.Finalized, false, details)
	require.NoError(t, err)
	return o
}

func mold(t *testing.T, id string, capacity int, models ...string) *fixture.Fixture {
	t.Helper()
	f, err := fixture.NewFixture(id, "", models, capacity, true)
	require.NoError(t, err)
	return f
}

func newEngine(t *testing.T, mutate ...func(*services.ScheduleOptions)) *services.ScheduleEngine {
	t.Helper()
	opts := services.DefaultScheduleOptions()
	for _, m := range mutate {
		m(&opts)
	}
	e, err := services.NewScheduleEngine(opts)
	require.NoError(t, err)
	return e
}

func byOrder(result services.ScheduleResult) map[string]*schedule.Assignment {
	out := make(map[string]*schedule.Assignment, len(result.Assignments))
	for _, a := range result.Assignments {
		out[a.OrderID()] = a
	}
	return out
}

func TestScheduleEngine_Run_PlacesEarliestDayFirstFixture(t *testing.T) {
	engine := newEngine(t)
	orders := []*order.Order{finalized(t, "AA001")}
	fixtures := []*fixture.Fixture{mold(t, "M-02", 1), mold(t, "M-01", 1)}

	result := engine.Run(orders, fixtures, nil, monday)

	require.Len(t, result.Assignments, 1)
	a := result.Assignments[0]
	assert.Equal(t, "M-01", a.FixtureID(), "fixtures are tried in id order")
	assert.Equal(t, monday, a.Date())
	assert.Equal(t, schedule.Production, a.Kind())
	assert.False(t, a.ManualOverride())
	assert.Empty(t, result.Unschedulable)
	assert.Empty(t, result.NeedsClassification)
}

func TestScheduleEngine_Run_OrdersByDueDatePriorityAndID(t *testing.T) {
	engine := newEngine(t)
	orders := []*order.Order{
		finalized(t, "AA005", noDue(), priority(1)),
		finalized(t, "AA004", due(monday.AddDays(30)), priority(60)),
		finalized(t, "AA003", due(monday.AddDays(30)), priority(10)),
		finalized(t, "AA002", due(monday.AddDays(10))),
		finalized(t, "AA001", due(monday.AddDays(30)), priority(10)),
	}
	// One slot per day: placement order equals the day sequence.
	fixtures := []*fixture.Fixture{mold(t, "M-01", 1)}

	result := engine.Run(orders, fixtures, nil, monday)

	require.Len(t, result.Assignments, 5)
	got := make([]string, 0, 5)
	for _, a := range result.Assignments {
		got = append(got, a.OrderID())
	}
	assert.Equal(t, []string{"AA002", "AA001", "AA003", "AA004", "AA005"}, got)

	placed := byOrder(result)
	assert.Equal(t, monday, placed["AA002"].Date())
	assert.Equal(t, monday.AddDays(1), placed["AA001"].Date())
	assert.Equal(t, monday.AddDays(2), placed["AA003"].Date())
	assert.Equal(t, monday.AddDays(3), placed["AA004"].Date())
	assert.Equal(t, monday.AddDays(5), placed["AA005"].Date(), "Friday is skipped")
}

func TestScheduleEngine_Run_Eligibility(t *testing.T) {
	engine := newEngine(t)

	draft, err := order.NewOrder("AA010", monday, queue, order.Details{StockModelID: "cf_chalk", PriorityScore: 50})
	require.NoError(t, err)
	inProgress, err := order.RestoreOrder("AA011", monday, "CNC", monday, order.InProgress, false, order.Details{StockModelID: "cf_chalk", PriorityScore: 50})
	require.NoError(t, err)
	wrongDept, err := order.RestoreOrder("AA012", monday, "Paint", monday, order.Finalized, false, order.Details{StockModelID: "cf_chalk", PriorityScore: 50})
	require.NoError(t, err)
	cancelled, err := order.RestoreOrder("AA013", monday, queue, monday, order.Cancelled, false, order.Details{StockModelID: "cf_chalk", PriorityScore: 50})
	require.NoError(t, err)
	inLayup, err := order.RestoreOrder("AA014", monday, layup, monday, order.Finalized, false, order.Details{StockModelID: "cf_chalk", PriorityScore: 50})
	require.NoError(t, err)
	alreadyPlaced := finalized(t, "AA015")

	existing, err := schedule.NewAssignment("AA015", "M-01", monday, schedule.Production, false)
	require.NoError(t, err)

	result := engine.Run(
		[]*order.Order{draft, inProgress, wrongDept, cancelled, inLayup, alreadyPlaced},
		[]*fixture.Fixture{mold(t, "M-01", 5)},
		[]*schedule.Assignment{existing},
		monday,
	)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "AA014", result.Assignments[0].OrderID())
	assert.Empty(t, result.Unschedulable)
}

func TestScheduleEngine_Run_NeedsClassification(t *testing.T) {
	engine := newEngine(t, func(o *services.ScheduleOptions) {
		o.StockModelCatalog = []string{"cf_chalk", "cf_alpine"}
	})
	orders := []*order.Order{
		finalized(t, "AA003", model("")),
		finalized(t, "AA002", model("None")),
		finalized(t, "AA001", model("mystery_stock")),
		finalized(t, "AA004", model("cf_alpine")),
	}

	result := engine.Run(orders, []*fixture.Fixture{mold(t, "M-01", 4)}, nil, monday)

	assert.Equal(t, []string{"AA001", "AA002", "AA003"}, result.NeedsClassification)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "AA004", result.Assignments[0].OrderID())
}

func TestScheduleEngine_Run_NoCatalogAcceptsAnyModel(t *testing.T) {
	engine := newEngine(t)

	result := engine.Run([]*order.Order{finalized(t, "AA001", model("anything"))}, []*fixture.Fixture{mold(t, "M-01", 1)}, nil, monday)

	assert.Len(t, result.Assignments, 1)
	assert.Empty(t, result.NeedsClassification)
}

func TestScheduleEngine_Run_Compatibility(t *testing.T) {
	engine := newEngine(t)
	orders := []*order.Order{
		finalized(t, "AA001", model("cf_alpine")),
		finalized(t, "AA002", model("cf_chalk")),
		finalized(t, "AA003", model("cf_hunter")),
	}
	fixtures := []*fixture.Fixture{
		mold(t, "M-01", 5, "cf_chalk"),
		mold(t, "M-02", 5, "cf_alpine", "cf_chalk"),
		mold(t, "M-03", 5),
	}

	result := engine.Run(orders, fixtures, nil, monday)

	placed := byOrder(result)
	require.Len(t, placed, 3)
	assert.Equal(t, "M-02", placed["AA001"].FixtureID())
	assert.Equal(t, "M-01", placed["AA002"].FixtureID())
	assert.Equal(t, "M-03", placed["AA003"].FixtureID(), "universal fixture takes unlisted models")

	fixtureByID := map[string]*fixture.Fixture{}
	for _, f := range fixtures {
		fixtureByID[f.ID()] = f
	}
	for _, o := range orders {
		assert.True(t, fixtureByID[placed[o.ID()].FixtureID()].Accepts(o.StockModelID()))
	}
}

func TestScheduleEngine_Run_DisabledAndZeroCapacityFixturesAreSkipped(t *testing.T) {
	engine := newEngine(t)
	disabled := mold(t, "M-01", 5)
	disabled.Disable()
	empty := mold(t, "M-02", 0)

	result := engine.Run([]*order.Order{finalized(t, "AA001")}, []*fixture.Fixture{disabled, empty, mold(t, "M-03", 1)}, nil, monday)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "M-03", result.Assignments[0].FixtureID())
}

func TestScheduleEngine_Run_RespectsExistingLoad(t *testing.T) {
	engine := newEngine(t)
	existing := make([]*schedule.Assignment, 0, 2)
	for _, id := range []string{"ZZ001", "ZZ002"} {
		a, err := schedule.NewAssignment(id, "M-01", monday, schedule.Production, false)
		require.NoError(t, err)
		existing = append(existing, a)
	}

	result := engine.Run([]*order.Order{finalized(t, "AA001")}, []*fixture.Fixture{mold(t, "M-01", 2)}, existing, monday)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, monday.AddDays(1), result.Assignments[0].Date())
}

func TestScheduleEngine_Run_Unschedulable(t *testing.T) {
	engine := newEngine(t, func(o *services.ScheduleOptions) { o.LookAheadDays = 3 })
	orders := []*order.Order{
		finalized(t, "AA001"),
		finalized(t, "AA002"),
		finalized(t, "AA003"),
		finalized(t, "AA004"),
	}

	result := engine.Run(orders, []*fixture.Fixture{mold(t, "M-01", 1)}, nil, monday)

	assert.Len(t, result.Assignments, 3)
	require.Len(t, result.Unschedulable, 1)
	assert.Equal(t, "AA004", result.Unschedulable[0].OrderID)
	assert.Equal(t, services.ReasonNoCapacity, result.Unschedulable[0].Reason)
}

func TestScheduleEngine_Run_NoFixturesReportsEveryOrder(t *testing.T) {
	engine := newEngine(t)

	result := engine.Run([]*order.Order{finalized(t, "AA001"), finalized(t, "AA002")}, nil, nil, monday)

	assert.Empty(t, result.Assignments)
	assert.Len(t, result.Unschedulable, 2)
}

func TestScheduleEngine_Run_ReportsUnconstructedOrders(t *testing.T) {
	engine := newEngine(t)

	result := engine.Run(
		[]*order.Order{finalized(t, "AA001"), new(order.Order), nil},
		[]*fixture.Fixture{mold(t, "M-01", 5)},
		nil,
		monday,
	)

	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "AA001", result.Assignments[0].OrderID())
	require.Len(t, result.Unschedulable, 1)
	assert.Equal(t, services.ReasonInvalidOrder, result.Unschedulable[0].Reason)
	assert.Empty(t, result.NeedsClassification)
}

func TestScheduleEngine_Run_AdjustmentOnMondays(t *testing.T) {
	engine := newEngine(t)
	wednesday := monday.AddDays(2)

	t.Run("waits for the next Monday", func(t *testing.T) {
		result := engine.Run([]*order.Order{finalized(t, "AA001", needsAdjustment())}, []*fixture.Fixture{mold(t, "M-01", 1)}, nil, wednesday)

		require.Len(t, result.Assignments, 1)
		a := result.Assignments[0]
		assert.Equal(t, time.Monday, a.Date().Weekday())
		assert.Equal(t, monday.AddDays(7), a.Date())
		assert.Equal(t, schedule.Adjustment, a.Kind())
	})

	t.Run("escalated priority uses the regular search", func(t *testing.T) {
		o := finalized(t, "AA002", needsAdjustment())
		require.NoError(t, o.Escalate())

		result := engine.Run([]*order.Order{o}, []*fixture.Fixture{mold(t, "M-01", 1)}, nil, wednesday)

		require.Len(t, result.Assignments, 1)
		assert.Equal(t, wednesday, result.Assignments[0].Date())
		assert.Equal(t, schedule.Adjustment, result.Assignments[0].Kind())
	})
}

func TestScheduleEngine_Run_IsDeterministic(t *testing.T) {
	engine := newEngine(t)
	orders := []*order.Order{finalized(t, "AA002"), finalized(t, "AA001"), finalized(t, "AA003")}
	fixtures := []*fixture.Fixture{mold(t, "M-01", 1), mold(t, "M-02", 1)}

	first := engine.Run(orders, fixtures, nil, monday)
	second := engine.Run([]*order.Order{orders[2], orders[0], orders[1]}, []*fixture.Fixture{fixtures[1], fixtures[0]}, nil, monday)

	require.Len(t, second.Assignments, len(first.Assignments))
	for i := range first.Assignments {
		assert.Equal(t, first.Assignments[i].OrderID(), second.Assignments[i].OrderID())
		assert.Equal(t, first.Assignments[i].Slot(), second.Assignments[i].Slot())
	}
}

// Randomised fixtures: whatever the inputs, no assignment may land on an
// excluded weekday, exceed capacity, break compatibility, or place an order twice.
func TestScheduleEngine_Run_RandomisedInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(20250303, 14))
	models := []string{"cf_chalk", "cf_alpine", "cf_hunter", "fg_sporter"}
	weekdays := []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}

	for iteration := range 1000 {
		excluded := []time.Weekday{time.Friday}
		for _, wd := range weekdays {
			if wd != time.Friday && rng.IntN(4) == 0 {
				excluded = append(excluded, wd)
			}
		}
		if len(excluded) == 7 {
			excluded = excluded[:6]
		}

		engine := newEngine(t, func(o *services.ScheduleOptions) {
			o.ExcludedWeekdays = excluded
			o.LookAheadDays = 5 + rng.IntN(30)
		})

		fixtures := make([]*fixture.Fixture, 0)
		fixtureByID := map[string]*fixture.Fixture{}
		for i := range 1 + rng.IntN(4) {
			var compatible []string
			if rng.IntN(2) == 0 {
				compatible = []string{models[rng.IntN(len(models))]}
			}
			f := mold(t, fmt.Sprintf("M-%02d", i), rng.IntN(3), compatible...)
			if rng.IntN(6) == 0 {
				f.Disable()
			}
			fixtures = append(fixtures, f)
			fixtureByID[f.ID()] = f
		}

		orders := make([]*order.Order, 0)
		orderByID := map[string]*order.Order{}
		for i := range rng.IntN(25) {
			opts := []orderOpt{
				model(models[rng.IntN(len(models))]),
				priority(rng.IntN(100)),
				due(monday.AddDays(rng.IntN(90))),
			}
			if rng.IntN(5) == 0 {
				opts = append(opts, needsAdjustment())
			}
			o := finalized(t, fmt.Sprintf("R%04d", i), opts...)
			orders = append(orders, o)
			orderByID[o.ID()] = o
		}

		asOf := monday.AddDays(rng.IntN(14))
		result := engine.Run(orders, fixtures, nil, asOf)

		perSlot := map[schedule.Slot]int{}
		seen := map[string]bool{}
		for _, a := range result.Assignments {
			require.NotContains(t, excluded, a.Date().Weekday(), "iteration %d", iteration)
			require.False(t, a.Date().Before(asOf), "iteration %d", iteration)
			require.False(t, seen[a.OrderID()], "iteration %d: order placed twice", iteration)
			seen[a.OrderID()] = true

			f := fixtureByID[a.FixtureID()]
			require.True(t, f.Enabled(), "iteration %d", iteration)
			require.True(t, f.Accepts(orderByID[a.OrderID()].StockModelID()), "iteration %d", iteration)
			perSlot[a.Slot()]++
			require.LessOrEqual(t, perSlot[a.Slot()], f.DailyCapacity(), "iteration %d", iteration)

			if orderByID[a.OrderID()].NeedsAdjustment() {
				require.Equal(t, time.Monday, a.Date().Weekday(), "iteration %d", iteration)
			}
		}
		require.Equal(t, len(orders), len(result.Assignments)+len(result.Unschedulable), "iteration %d", iteration)
	}
}

func TestScheduleEngine_Reassign(t *testing.T) {
	engine := newEngine(t)
	friday := monday.AddDays(4)
	m1 := mold(t, "M-01", 1, "cf_chalk")
	o := finalized(t, "AA001")
	current, err := schedule.NewAssignment("AA001", "M-01", monday, schedule.Production, false)
	require.NoError(t, err)

	t.Run("moves to a free day", func(t *testing.T) {
		load := schedule.NewLoad([]*schedule.Assignment{current})

		a, err := engine.Reassign(o, m1, monday.AddDays(1), current, load, monday, false)

		require.NoError(t, err)
		assert.Equal(t, monday.AddDays(1), a.Date())
		assert.False(t, a.ManualOverride())
	})

	t.Run("same slot releases its own unit", func(t *testing.T) {
		load := schedule.NewLoad([]*schedule.Assignment{current})

		_, err := engine.Reassign(o, m1, monday, current, load, monday, false)

		require.NoError(t, err)
	})

	t.Run("full slot", func(t *testing.T) {
		other, err := schedule.NewAssignment("AA009", "M-01", monday.AddDays(1), schedule.Production, false)
		require.NoError(t, err)
		load := schedule.NewLoad([]*schedule.Assignment{current, other})

		_, err = engine.Reassign(o, m1, monday.AddDays(1), current, load, monday, false)

		assert.ErrorIs(t, err, services.ErrFixtureDayFull)
	})

	t.Run("excluded weekday needs override", func(t *testing.T) {
		load := schedule.NewLoad(nil)

		_, err := engine.Reassign(o, m1, friday, nil, load, monday, false)
		assert.ErrorIs(t, err, services.ErrWeekdayExcluded)

		a, err := engine.Reassign(o, m1, friday, nil, load, monday, true)
		require.NoError(t, err)
		assert.True(t, a.ManualOverride())
		assert.Equal(t, time.Friday, a.Date().Weekday())
	})

	t.Run("incompatible fixture", func(t *testing.T) {
		_, err := engine.Reassign(o, mold(t, "M-02", 3, "cf_alpine"), monday, nil, schedule.NewLoad(nil), monday, true)

		assert.ErrorIs(t, err, services.ErrFixtureIncompatible)
	})

	t.Run("disabled fixture", func(t *testing.T) {
		f := mold(t, "M-03", 3)
		f.Disable()

		_, err := engine.Reassign(o, f, monday, nil, schedule.NewLoad(nil), monday, true)

		assert.ErrorIs(t, err, services.ErrFixtureDisabled)
	})

	t.Run("date in the past", func(t *testing.T) {
		_, err := engine.Reassign(o, m1, monday.AddDays(-1), nil, schedule.NewLoad(nil), monday, true)

		assert.ErrorIs(t, err, services.ErrDateInPast)
	})

	t.Run("adjustment off Monday", func(t *testing.T) {
		adj := finalized(t, "AA002", needsAdjustment())

		_, err := engine.Reassign(adj, m1, monday.AddDays(1), nil, schedule.NewLoad(nil), monday, false)
		assert.ErrorIs(t, err, services.ErrAdjustmentDayOnly)

		a, err := engine.Reassign(adj, m1, monday.AddDays(7), nil, schedule.NewLoad(nil), monday, false)
		require.NoError(t, err)
		assert.Equal(t, schedule.Adjustment, a.Kind())
	})

	t.Run("terminal order", func(t *testing.T) {
		shipped, err := order.RestoreOrder("AA003", monday, "Shipping", monday, order.Shipped, false, order.Details{StockModelID: "cf_chalk", PriorityScore: 50})
		require.NoError(t, err)

		_, err = engine.Reassign(shipped, m1, monday, nil, schedule.NewLoad(nil), monday, true)

		assert.ErrorIs(t, err, services.ErrOrderNotSchedulable)
	})
}

func TestNewScheduleEngine_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*services.ScheduleOptions)
	}{
		{"zero look-ahead", func(o *services.ScheduleOptions) { o.LookAheadDays = 0 }},
		{"huge look-ahead", func(o *services.ScheduleOptions) { o.LookAheadDays = services.MaxLookAheadDays + 1 }},
		{"bad weekday", func(o *services.ScheduleOptions) { o.ExcludedWeekdays = []time.Weekday{9} }},
		{"every weekday excluded", func(o *services.ScheduleOptions) {
			o.ExcludedWeekdays = []time.Weekday{0, 1, 2, 3, 4, 5, 6}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := services.DefaultScheduleOptions()
			tt.mutate(&opts)

			_, err := services.NewScheduleEngine(opts)

			assert.Error(t, err)
		})
	}

	t.Run("empty entry departments fall back to defaults", func(t *testing.T) {
		opts := services.DefaultScheduleOptions()
		opts.EntryDepartments = nil

		e, err := services.NewScheduleEngine(opts)

		require.NoError(t, err)
		assert.True(t, e.IsEntryDepartment(queue))
		assert.True(t, e.IsEntryDepartment(layup))
		assert.False(t, e.IsEntryDepartment("CNC"))
	})
}

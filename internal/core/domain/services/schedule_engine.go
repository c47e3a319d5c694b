package services

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"production/internal/core/domain/model/fixture"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/schedule"
	"production/internal/pkg/errs"
)

const (
	DefaultLookAheadDays = 60
	MaxLookAheadDays     = 366
)

var (
	// ErrOrderNotSchedulable is returned when the order status does not allow placement.
	ErrOrderNotSchedulable = errors.New("order is not in a schedulable status")
	// ErrStockModelUnclassified is returned when the order has no usable stock model.
	ErrStockModelUnclassified = errors.New("order stock model needs classification")
	ErrFixtureDisabled        = errors.New("fixture is disabled")
	ErrFixtureIncompatible    = errors.New("fixture is not compatible with the order stock model")
	// ErrFixtureDayFull is returned when the (fixture, date) slot is at capacity.
	ErrFixtureDayFull = errors.New("fixture has no capacity left on that date")
	// ErrWeekdayExcluded is returned for a non-working weekday without manual override.
	ErrWeekdayExcluded = errors.New("date falls on an excluded weekday")
	// ErrAdjustmentDayOnly is returned when adjustment work is placed off its dedicated weekday.
	ErrAdjustmentDayOnly = errors.New("adjustment work may only be placed on the adjustment weekday")
	ErrDateInPast        = errors.New("date is before the scheduling day")
)

// Unschedulable reasons reported by Run.
const (
	ReasonNoCapacity = "no compatible fixture with free capacity within the look-ahead window"
	// ReasonSlotTaken is reported by the persisting caller when another writer
	// filled the slot or placed the order between snapshot and insert.
	ReasonSlotTaken = "slot taken by a concurrent writer"
	// ReasonInvalidOrder marks an order value that was not built by a constructor.
	ReasonInvalidOrder = "order is not a constructed order"
)

// DefaultEntryDepartments are the departments in which finalized orders wait for a slot.
func DefaultEntryDepartments() []string {
	return []string{"P1 Production Queue", "Layup/Plugging"}
}

// ScheduleOptions configures a ScheduleEngine.
type ScheduleOptions struct {
	// LookAheadDays is the number of days searched starting at asOf (inclusive).
	LookAheadDays int
	// ExcludedWeekdays are never used by the automatic pass.
	ExcludedWeekdays []time.Weekday
	// EntryDepartments hold the orders waiting for a slot.
	EntryDepartments []string
	// StockModelCatalog, when non-empty, lists every valid stock model key.
	StockModelCatalog []string
	// AdjustmentWeekday is the only day non-escalated adjustment work is placed on.
	AdjustmentWeekday time.Weekday
}

// DefaultScheduleOptions searches 60 days, skips Fridays, treats the P1 queue
// and layup as entry departments, accepts any stock model and places
// adjustment work on Mondays.
func DefaultScheduleOptions() ScheduleOptions {
	return ScheduleOptions{
		LookAheadDays:     DefaultLookAheadDays,
		ExcludedWeekdays:  []time.Weekday{time.Friday},
		EntryDepartments:  DefaultEntryDepartments(),
		AdjustmentWeekday: time.Monday,
	}
}

// Unschedulable is an order the pass could not place, with the reason.
type Unschedulable struct {
	OrderID string
	Reason  string
}

// ScheduleResult is the outcome of one pass. Every eligible order appears in
// exactly one of the three lists; unconstructed orders are listed as
// unschedulable with ReasonInvalidOrder.
type ScheduleResult struct {
	Assignments         []*schedule.Assignment
	Unschedulable       []Unschedulable
	NeedsClassification []string
}

// ScheduleEngine places finalized orders onto fixture/date slots.
//
// Business rules:
//   - Only FINALIZED orders in an entry department without an active
//     assignment are considered.
//   - Orders without a usable stock model are reported for classification,
//     never guessed.
//   - Orders are served by due date (missing last), then priority score
//     (lower first), then id.
//   - Each order takes the earliest allowed day, and on that day the first
//     enabled, compatible fixture (by id) with free capacity.
//   - Excluded weekdays are never used by the automatic pass.
//   - Adjustment work lands on the adjustment weekday unless the order's
//     priority was escalated.
//
// Run does not mutate its inputs and is deterministic for equal inputs.
//
//	engine, _ := services.NewScheduleEngine(services.DefaultScheduleOptions())
//	result := engine.Run(orders, fixtures, existing, today)
//	for _, a := range result.Assignments {
//	    // persist a
//	}
type ScheduleEngine struct {
	options   ScheduleOptions
	excluded  map[time.Weekday]struct{}
	entry     map[string]struct{}
	catalogue map[string]struct{}
}

// NewScheduleEngine validates options. Empty EntryDepartments fall back to
// DefaultEntryDepartments.
func NewScheduleEngine(options ScheduleOptions) (*ScheduleEngine, error) {
	if options.LookAheadDays < 1 || options.LookAheadDays > MaxLookAheadDays {
		return nil, errs.NewValueIsOutOfRangeError("lookAheadDays", options.LookAheadDays, 1, MaxLookAheadDays)
	}

	var weekdayErrs []error
	excluded := make(map[time.Weekday]struct{}, len(options.ExcludedWeekdays))
	for _, wd := range options.ExcludedWeekdays {
		if wd < time.Sunday || wd > time.Saturday {
			weekdayErrs = append(weekdayErrs, errs.NewValueIsOutOfRangeError("excludedWeekdays", int(wd), 0, 6))
			continue
		}
		excluded[wd] = struct{}{}
	}
	if options.AdjustmentWeekday < time.Sunday || options.AdjustmentWeekday > time.Saturday {
		weekdayErrs = append(weekdayErrs, errs.NewValueIsOutOfRangeError("adjustmentWeekday", int(options.AdjustmentWeekday), 0, 6))
	}
	if len(excluded) == 7 {
		weekdayErrs = append(weekdayErrs, errs.NewValueIsInvalidErrorWithCause("excludedWeekdays", errors.New("every weekday is excluded")))
	}
	if err := errors.Join(weekdayErrs...); err != nil {
		return nil, err
	}

	if len(options.EntryDepartments) == 0 {
		options.EntryDepartments = DefaultEntryDepartments()
	}

	return &ScheduleEngine{
		options:   options,
		excluded:  excluded,
		entry:     toSet(options.EntryDepartments),
		catalogue: toSet(options.StockModelCatalog),
	}, nil
}

func (e *ScheduleEngine) Options() ScheduleOptions {
	return e.options
}

// IsEntryDepartment reports whether department holds orders waiting for a slot.
func (e *ScheduleEngine) IsEntryDepartment(department string) bool {
	_, ok := e.entry[department]
	return ok
}

// IsExcluded reports whether the automatic pass skips date.
func (e *ScheduleEngine) IsExcluded(date kernel.Date) bool {
	_, ok := e.excluded[date.Weekday()]
	return ok
}

// HasValidStockModel reports whether the order can be matched against fixtures.
func (e *ScheduleEngine) HasValidStockModel(o *order.Order) bool {
	model := strings.TrimSpace(o.StockModelID())
	if model == "" || strings.EqualFold(model, "none") {
		return false
	}
	if len(e.catalogue) == 0 {
		return true
	}
	_, ok := e.catalogue[model]
	return ok
}

// Run executes one automatic pass as of asOf. existing is the snapshot of
// active assignments: it seeds the capacity counts and marks orders that
// already hold a slot.
func (e *ScheduleEngine) Run(
	orders []*order.Order,
	fixtures []*fixture.Fixture,
	existing []*schedule.Assignment,
	asOf kernel.Date,
) ScheduleResult {
	result := ScheduleResult{
		Assignments:         make([]*schedule.Assignment, 0),
		Unschedulable:       make([]Unschedulable, 0),
		NeedsClassification: make([]string, 0),
	}

	assigned := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		assigned[a.OrderID()] = struct{}{}
	}

	queue := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			continue
		}
		if err := o.Validate(); err != nil {
			result.Unschedulable = append(result.Unschedulable, Unschedulable{OrderID: o.ID(), Reason: ReasonInvalidOrder})
			continue
		}
		if o.Status() != order.Finalized || !e.IsEntryDepartment(o.CurrentDepartment()) {
			continue
		}
		if _, ok := assigned[o.ID()]; ok {
			continue
		}
		if !e.HasValidStockModel(o) {
			result.NeedsClassification = append(result.NeedsClassification, o.ID())
			continue
		}
		queue = append(queue, o)
	}
	slices.Sort(result.NeedsClassification)
	slices.SortFunc(queue, compareOrders)

	candidates := e.candidateFixtures(fixtures)
	load := schedule.NewLoad(existing)

	for _, o := range queue {
		a := e.place(o, candidates, load, asOf)
		if a == nil {
			result.Unschedulable = append(result.Unschedulable, Unschedulable{OrderID: o.ID(), Reason: ReasonNoCapacity})
			continue
		}
		load.Add(a.Slot())
		assigned[o.ID()] = struct{}{}
		result.Assignments = append(result.Assignments, a)
	}

	return result
}

// Reassign validates a manual placement of o on f at date and returns the
// replacement assignment. load must reflect every active assignment,
// including the order's current one (current, may be nil), which is released
// before the capacity check. override lets a person use an excluded weekday
// or place adjustment work off its weekday.
func (e *ScheduleEngine) Reassign(
	o *order.Order,
	f *fixture.Fixture,
	date kernel.Date,
	current *schedule.Assignment,
	load schedule.Load,
	asOf kernel.Date,
	override bool,
) (*schedule.Assignment, error) {
	if err := errors.Join(o.Validate(), f.Validate(), date.Validate()); err != nil {
		return nil, err
	}
	if o.Status() != order.Finalized && o.Status() != order.InProgress {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotSchedulable, o.Status())
	}
	if !e.HasValidStockModel(o) {
		return nil, ErrStockModelUnclassified
	}
	if date.Before(asOf) {
		return nil, fmt.Errorf("%w: %s is before %s", ErrDateInPast, date, asOf)
	}
	if !f.Enabled() {
		return nil, ErrFixtureDisabled
	}
	if !f.Accepts(o.StockModelID()) {
		return nil, ErrFixtureIncompatible
	}
	if !override {
		if e.IsExcluded(date) {
			return nil, fmt.Errorf("%w: %s", ErrWeekdayExcluded, date.Weekday())
		}
		if e.adjustmentRestricted(o) && date.Weekday() != e.options.AdjustmentWeekday {
			return nil, fmt.Errorf("%w: %s", ErrAdjustmentDayOnly, e.options.AdjustmentWeekday)
		}
	}

	slot := schedule.Slot{FixtureID: f.ID(), Date: date}
	used := load.Count(slot)
	if current != nil && current.Slot() == slot {
		used--
	}
	if used >= f.DailyCapacity() {
		return nil, ErrFixtureDayFull
	}

	return schedule.NewAssignment(o.ID(), f.ID(), date, kindOf(o), override)
}

func (e *ScheduleEngine) place(
	o *order.Order,
	candidates []*fixture.Fixture,
	load schedule.Load,
	asOf kernel.Date,
) *schedule.Assignment {
	restricted := e.adjustmentRestricted(o)

	for offset := range e.options.LookAheadDays {
		date := asOf.AddDays(offset)
		if e.IsExcluded(date) {
			continue
		}
		if restricted && date.Weekday() != e.options.AdjustmentWeekday {
			continue
		}

		for _, f := range candidates {
			if !f.Accepts(o.StockModelID()) {
				continue
			}
			slot := schedule.Slot{FixtureID: f.ID(), Date: date}
			if load.Count(slot) >= f.DailyCapacity() {
				continue
			}

			a, err := schedule.NewAssignment(o.ID(), f.ID(), date, kindOf(o), false)
			if err != nil {
				return nil
			}
			return a
		}
	}

	return nil
}

func (e *ScheduleEngine) adjustmentRestricted(o *order.Order) bool {
	return o.NeedsAdjustment() && !o.PriorityEscalated()
}

func (e *ScheduleEngine) candidateFixtures(fixtures []*fixture.Fixture) []*fixture.Fixture {
	out := make([]*fixture.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if f.Validate() == nil && f.IsCandidate() {
			out = append(out, f)
		}
	}
	slices.SortFunc(out, func(a, b *fixture.Fixture) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

func kindOf(o *order.Order) schedule.Kind {
	if o.NeedsAdjustment() {
		return schedule.Adjustment
	}
	return schedule.Production
}

// compareOrders sorts by due date (missing last), priority score, then id.
func compareOrders(a, b *order.Order) int {
	aDue, aOK := a.DueDate()
	bDue, bOK := b.DueDate()
	switch {
	case aOK && !bOK:
		return -1
	case !aOK && bOK:
		return 1
	case aOK && bOK:
		if c := aDue.Compare(bDue); c != 0 {
			return c
		}
	}

	if c := cmp.Compare(a.PriorityScore(), b.PriorityScore()); c != 0 {
		return c
	}
	return cmp.Compare(a.ID(), b.ID())
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

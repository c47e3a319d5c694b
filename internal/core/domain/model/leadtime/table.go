// Package leadtime holds the ordered department sequence of the production
// line and how long an order is expected to dwell in each department.
package leadtime

import (
	"errors"
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// DefaultDwellDays is used for departments missing from a table.
const DefaultDwellDays = 7

var ErrTableIsNotConstructed = errors.New("Table must be created via NewTable constructor")

// Stage is one department of the line with its expected dwell.
// AdjustedDwellDays, when set, replaces ExpectedDwellDays for orders that
// need length-of-pull adjustment work.
type Stage struct {
	Department        string
	ExpectedDwellDays int
	AdjustedDwellDays *int
}

// Table is an immutable, ordered lead-time table.
type Table struct {
	stages       []Stage
	index        map[string]int
	defaultDwell int

	isConstructed bool
}

// NewTable validates the stages (unique non-empty names, non-negative dwell)
// and keeps their order as the production sequence.
func NewTable(stages []Stage, defaultDwell int) (Table, error) {
	var problems []error
	if defaultDwell < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("defaultDwellDays", defaultDwell, 0, "unbounded"))
	}

	t := Table{
		stages:        make([]Stage, 0, len(stages)),
		index:         make(map[string]int, len(stages)),
		defaultDwell:  defaultDwell,
		isConstructed: true,
	}

	for i, s := range stages {
		name := strings.TrimSpace(s.Department)
		switch {
		case name == "":
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("stages[%d].department", i)))
			continue
		case s.ExpectedDwellDays < 0:
			problems = append(problems, errs.NewValueIsOutOfRangeError(name+" expectedDwellDays", s.ExpectedDwellDays, 0, "unbounded"))
			continue
		case s.AdjustedDwellDays != nil && *s.AdjustedDwellDays < 0:
			problems = append(problems, errs.NewValueIsOutOfRangeError(name+" adjustedDwellDays", *s.AdjustedDwellDays, 0, "unbounded"))
			continue
		}
		if _, dup := t.index[name]; dup {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("stages", fmt.Errorf("department %q listed twice", name)))
			continue
		}

		stage := Stage{Department: name, ExpectedDwellDays: s.ExpectedDwellDays}
		if s.AdjustedDwellDays != nil {
			adjusted := *s.AdjustedDwellDays
			stage.AdjustedDwellDays = &adjusted
		}
		t.index[name] = len(t.stages)
		t.stages = append(t.stages, stage)
	}

	if err := errors.Join(problems...); err != nil {
		return Table{}, err
	}

	return t, nil
}

// DefaultTable is the plant's standard line: 35 days of layup, 7 days
// elsewhere, and 14 days of finish and gunsmith work for adjusted orders.
func DefaultTable() Table {
	fourteen := 14
	t, err := NewTable([]Stage{
		{Department: "P1 Production Queue", ExpectedDwellDays: 7},
		{Department: "Layup/Plugging", ExpectedDwellDays: 35},
		{Department: "Barcode", ExpectedDwellDays: 7},
		{Department: "CNC", ExpectedDwellDays: 7},
		{Department: "Finish", ExpectedDwellDays: 7, AdjustedDwellDays: &fourteen},
		{Department: "Gunsmith", ExpectedDwellDays: 7, AdjustedDwellDays: &fourteen},
		{Department: "Paint", ExpectedDwellDays: 7},
		{Department: "Shipping QC", ExpectedDwellDays: 7},
		{Department: "Shipping", ExpectedDwellDays: 7},
	}, DefaultDwellDays)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Table) Validate() error {
	if !t.isConstructed {
		return ErrTableIsNotConstructed
	}
	return nil
}

// Departments returns the department names in production order.
func (t Table) Departments() []string {
	names := make([]string, len(t.stages))
	for i, s := range t.stages {
		names[i] = s.Department
	}
	return names
}

// Stages returns a copy of the stages.
func (t Table) Stages() []Stage {
	out := make([]Stage, len(t.stages))
	copy(out, t.stages)
	return out
}

func (t Table) DefaultDwell() int {
	return t.defaultDwell
}

// Contains reports whether department is part of the sequence.
func (t Table) Contains(department string) bool {
	_, ok := t.index[department]
	return ok
}

// ExpectedDwell returns the dwell for department, honouring the adjusted
// value when adjusted is true. Unknown departments get the default dwell.
func (t Table) ExpectedDwell(department string, adjusted bool) int {
	i, ok := t.index[department]
	if !ok {
		return t.defaultDwell
	}
	return t.stages[i].dwell(adjusted)
}

// DownstreamDwell sums the dwell of every department after department. A
// department outside the sequence has no known successors, so it yields 0.
func (t Table) DownstreamDwell(department string, adjusted bool) int {
	i, ok := t.index[department]
	if !ok {
		return 0
	}

	total := 0
	for _, s := range t.stages[i+1:] {
		total += s.dwell(adjusted)
	}
	return total
}

func (s Stage) dwell(adjusted bool) int {
	if adjusted && s.AdjustedDwellDays != nil {
		return *s.AdjustedDwellDays
	}
	return s.ExpectedDwellDays
}

// Package fixture holds the Fixture aggregate: a physical production mold
// with a per-day capacity and a set of stock models it can produce.
package fixture

import (
	"errors"
	"slices"
	"strings"

	"production/internal/pkg/errs"
)

// MaxDailyCapacity bounds the per-day slot count of a single fixture.
const MaxDailyCapacity = 1000

var ErrFixtureIsNotConstructed = errors.New("Fixture must be created via NewFixture constructor")

// Fixture is a mold orders are placed on, one slot per order per day.
//
// An empty compatibleModels set means the fixture is universal. A disabled
// fixture, or one with zero capacity, is never a scheduling candidate.
type Fixture struct {
	id               string
	name             string
	compatibleModels []string
	enabled          bool
	dailyCapacity    int

	isConstructed bool
}

// NewFixture validates and creates a fixture. compatibleModels is copied,
// trimmed, de-duplicated and sorted.
func NewFixture(id, name string, compatibleModels []string, dailyCapacity int, enabled bool) (*Fixture, error) {
	f := &Fixture{
		enabled:       enabled,
		isConstructed: true,
	}

	if err := errors.Join(
		f.setID(id),
		f.setCapacity(dailyCapacity),
	); err != nil {
		return nil, err
	}

	f.name = strings.TrimSpace(name)
	if f.name == "" {
		f.name = f.id
	}
	f.compatibleModels = normaliseModels(compatibleModels)

	return f, nil
}

func (f *Fixture) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrFixtureIsNotConstructed
	}
	return nil
}

func (f *Fixture) ID() string {
	return f.id
}

func (f *Fixture) Name() string {
	return f.name
}

// CompatibleModels returns a copy of the compatible stock models.
func (f *Fixture) CompatibleModels() []string {
	return slices.Clone(f.compatibleModels)
}

func (f *Fixture) Enabled() bool {
	return f.enabled
}

func (f *Fixture) DailyCapacity() int {
	return f.dailyCapacity
}

// IsUniversal reports whether the fixture accepts every stock model.
func (f *Fixture) IsUniversal() bool {
	return len(f.compatibleModels) == 0
}

// Accepts reports whether stockModelID may be produced on this fixture.
// It does not look at enabled or capacity.
func (f *Fixture) Accepts(stockModelID string) bool {
	if f.IsUniversal() {
		return true
	}
	_, found := slices.BinarySearch(f.compatibleModels, stockModelID)
	return found
}

// IsCandidate reports whether the fixture can take new work at all.
func (f *Fixture) IsCandidate() bool {
	return f.enabled && f.dailyCapacity > 0
}

func (f *Fixture) Enable() {
	f.enabled = true
}

func (f *Fixture) Disable() {
	f.enabled = false
}

// Reconfigure replaces the mutable attributes, e.g. from the plant configuration file.
func (f *Fixture) Reconfigure(name string, compatibleModels []string, dailyCapacity int, enabled bool) error {
	if err := f.setCapacity(dailyCapacity); err != nil {
		return err
	}

	if name = strings.TrimSpace(name); name != "" {
		f.name = name
	}
	f.compatibleModels = normaliseModels(compatibleModels)
	f.enabled = enabled
	return nil
}

func (f *Fixture) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("fixtureId")
	}

	f.id = id
	return nil
}

func (f *Fixture) setCapacity(dailyCapacity int) error {
	if dailyCapacity < 0 || dailyCapacity > MaxDailyCapacity {
		return errs.NewValueIsOutOfRangeError("dailyCapacity", dailyCapacity, 0, MaxDailyCapacity)
	}

	f.dailyCapacity = dailyCapacity
	return nil
}

func normaliseModels(models []string) []string {
	out := make([]string, 0, len(models))
	for _, m := range models {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

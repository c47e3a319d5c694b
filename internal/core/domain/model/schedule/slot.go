package schedule

import "production/internal/core/domain/model/kernel"

// Slot is a (fixture, date) capacity bucket.
type Slot struct {
	FixtureID string
	Date      kernel.Date
}

// Load counts assignments per slot. The zero value is not usable; use NewLoad.
type Load struct {
	counts map[Slot]int
}

// NewLoad seeds the counts from existing assignments.
func NewLoad(existing []*Assignment) Load {
	l := Load{counts: make(map[Slot]int, len(existing))}
	for _, a := range existing {
		l.counts[a.Slot()]++
	}
	return l
}

func (l Load) Count(s Slot) int {
	return l.counts[s]
}

func (l Load) Add(s Slot) {
	l.counts[s]++
}

// Remove releases one unit of s, e.g. when an assignment is replaced.
func (l Load) Remove(s Slot) {
	if l.counts[s] > 0 {
		l.counts[s]--
	}
}

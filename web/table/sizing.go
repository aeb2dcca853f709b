package table

import (
	"maps"
	"slices"
)

// Sizing maps a column id to its last measured width in pixels.
type Sizing map[string]float64

// Clone returns a copy that can be written without touching s; nil gives an empty state.
func (s Sizing) Clone() Sizing {
	if s == nil {
		return Sizing{}
	}
	return maps.Clone(s)
}

// Synchronizer writes measured header widths into a Sizing state.
// A write only happens when the column has no entry or the stored width
// differs from the measured one, so re-measuring a settled column is a no-op.
type Synchronizer struct {
	state Sizing
}

func NewSynchronizer(state Sizing) *Synchronizer {
	if state == nil {
		state = Sizing{}
	}
	return &Synchronizer{state: state}
}

func (s *Synchronizer) State() Sizing { return s.state }

// Measure records width for column id and reports whether the state changed.
// The comparison is exact; sub-pixel jitter counts as a change.
func (s *Synchronizer) Measure(id string, width float64) bool {
	if stored, ok := s.state[id]; ok && stored == width {
		return false
	}
	s.state[id] = width
	return true
}

// MeasureAll records every width and returns the changed column ids, sorted.
func (s *Synchronizer) MeasureAll(widths map[string]float64) []string {
	var changed []string
	for id, w := range widths {
		if s.Measure(id, w) {
			changed = append(changed, id)
		}
	}
	slices.Sort(changed)
	return changed
}

package picker

import (
	"time"
)

// =============================================================================
// DATE SELECTOR - Selection state of one picker session
// =============================================================================

// DateSelector is the selection capability a picker renders against.
// SingleDateSelector is the only implementation; a range selector would
// report both ends from SelectedDays and be complete only once both are set.
//
// Selectors are not safe for concurrent use.
type DateSelector interface {
	// Selection returns the selected instant, ok=false when nothing is selected.
	Selection() (Instant, bool)

	// Select records day, replacing any previous selection.
	Select(day Instant)

	// SelectedDays returns every selected day; empty when nothing is selected.
	SelectedDays() []Instant

	// DisplayString renders the selection, "" when nothing is selected.
	DisplayString() string

	// IsSelectionComplete reports whether the selection can be confirmed.
	IsSelectionComplete() bool
}

// SingleDateSelector holds at most one selected day.
//
// States: Empty -> Select -> HasSelection -> Select -> HasSelection.
// Nothing returns it to Empty; start a new selector instead.
type SingleDateSelector struct {
	selected *Instant
	loc      *time.Location
}

var _ DateSelector = (*SingleDateSelector)(nil)

// NewSingleDateSelector returns an empty selector rendering in loc.
func NewSingleDateSelector(loc *time.Location) *SingleDateSelector {
	return &SingleDateSelector{loc: zoneOrUTC(loc)}
}

// NewSingleDateSelectorWith returns a selector pre-seeded with day.
func NewSingleDateSelectorWith(day Instant, loc *time.Location) *SingleDateSelector {
	s := NewSingleDateSelector(loc)
	s.Select(day)
	return s
}

func (s *SingleDateSelector) Selection() (Instant, bool) {
	if s.selected == nil {
		return 0, false
	}
	return *s.selected, true
}

func (s *SingleDateSelector) Select(day Instant) {
	s.selected = &day
}

func (s *SingleDateSelector) SelectedDays() []Instant {
	if s.selected == nil {
		return []Instant{}
	}
	return []Instant{*s.selected}
}

// DisplayString renders the selection as an Ethiopic date, e.g.
// "Meskerem 1, 2010".
func (s *SingleDateSelector) DisplayString() string {
	if s.selected == nil {
		return ""
	}
	return s.selected.Date(s.loc).String()
}

func (s *SingleDateSelector) IsSelectionComplete() bool {
	return s.selected != nil
}

// IsSelected reports whether day is on the same calendar day as a selected day.
func IsSelected(sel DateSelector, day Instant, loc *time.Location) bool {
	if sel == nil {
		return false
	}
	for _, d := range sel.SelectedDays() {
		if d.SameDay(day, loc) {
			return true
		}
	}
	return false
}

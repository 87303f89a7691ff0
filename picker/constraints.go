/*
constraints.go - CalendarConstraints: the navigable range of a picker

PURPOSE:
  Limits which Months a picker shows, which Month it opens at, and which
  days may be selected.

RANGE:
  [Start, End] is inclusive at Month granularity. A day instant is
  within bounds when

    Start.Instant(loc) <= day < End.MonthsLater(1).Instant(loc)

  i.e. every day of the end month is in range. Comparing against the
  end month's first day only would wrongly disable days 2..30 of the
  last month.

CONSTRUCTION:
  ConstraintsBuilder is an immutable fluent builder: every With* call
  returns a new builder value, so a half-configured builder can be
  shared and extended safely. Build() is the single point that
  normalizes instants to Months and clamps OpenAt into [Start, End].

DEFAULTS:
  Start:  Gregorian 1900-01-01 in the reference zone (Tahsas 1892)
  End:    Gregorian 2100-12-01 in the reference zone (Hidar 2093)
  OpenAt: the current month
  Zone:   UTC

SEE ALSO:
  - month.go:     Month arithmetic
  - validator.go: day-level validators
*/
package picker

import (
	"time"
)

// Constraints is an immutable, validated picker range.
type Constraints struct {
	start     Month
	end       Month
	openAt    Month
	validator DateValidator
	loc       *time.Location
}

func (c Constraints) Start() Month { return c.start }
func (c Constraints) End() Month { return c.end }
func (c Constraints) OpenAt() Month { return c.openAt }
func (c Constraints) Validator() DateValidator { return c.validator }
func (c Constraints) Location() *time.Location { return zoneOrUTC(c.loc) }

// IsWithinBounds reports whether day lies in [Start, End] and, when a
// validator is set, whether the validator accepts it.
func (c Constraints) IsWithinBounds(day Instant) bool {
	if day < c.start.Instant(c.loc) {
		return false
	}
	if day >= c.end.MonthsLater(1).Instant(c.loc) {
		return false
	}
	if c.validator != nil {
		return c.validator.IsValid(day)
	}
	return true
}

// Contains reports whether m lies in [Start, End].
func (c Constraints) Contains(m Month) bool {
	return !m.Before(c.start) && !m.After(c.end)
}

// Clamp returns m limited to [Start, End].
func (c Constraints) Clamp(m Month) Month {
	if m.Before(c.start) {
		return c.start
	}
	if m.After(c.end) {
		return c.end
	}
	return m
}

// =============================================================================
// PAGER SUPPORT
// =============================================================================

// MonthCount returns the number of Months in the range, both ends included.
func (c Constraints) MonthCount() int {
	return c.start.MonthsUntil(c.end) + 1
}

// MonthAt returns the Month at pager position pos.
func (c Constraints) MonthAt(pos int) (Month, bool) {
	if pos < 0 || pos >= c.MonthCount() {
		return Month{}, false
	}
	return c.start.MonthsLater(pos), true
}

// PositionOf returns the pager position of m.
func (c Constraints) PositionOf(m Month) (int, bool) {
	if !c.Contains(m) {
		return 0, false
	}
	return c.start.MonthsUntil(m), true
}

// Months enumerates every Month in the range in order.
func (c Constraints) Months() []Month {
	months := make([]Month, 0, c.MonthCount())
	for m := c.start; !m.After(c.end); m = m.MonthsLater(1) {
		months = append(months, m)
	}
	return months
}

// CanGoPrevious reports whether the pager may move back from m.
func (c Constraints) CanGoPrevious(m Month) bool {
	return m.After(c.start)
}

// CanGoNext reports whether the pager may move forward from m.
func (c Constraints) CanGoNext(m Month) bool {
	return m.Before(c.end)
}

// Years returns the Ethiopic years covered by the range, ascending.
func (c Constraints) Years() []int {
	years := make([]int, 0, c.end.Year()-c.start.Year()+1)
	for y := c.start.Year(); y <= c.end.Year(); y++ {
		years = append(years, y)
	}
	return years
}

// JumpToYear moves from m to the same month in year, clamped into range.
func (c Constraints) JumpToYear(from Month, year int) Month {
	return c.Clamp(from.WithYear(year))
}

// =============================================================================
// BUILDER
// =============================================================================

// ConstraintsBuilder collects constraint settings. The zero value is not
// usable; start from NewConstraintsBuilder.
type ConstraintsBuilder struct {
	start     *Instant
	end       *Instant
	openAt    *Instant
	validator DateValidator
	loc       *time.Location
	clock     Clock
}

// NewConstraintsBuilder returns a builder with the default range.
func NewConstraintsBuilder() ConstraintsBuilder {
	return ConstraintsBuilder{loc: time.UTC, clock: RealClock{}}
}

func (b ConstraintsBuilder) WithStart(start Instant) ConstraintsBuilder {
	b.start = &start
	return b
}

func (b ConstraintsBuilder) WithEnd(end Instant) ConstraintsBuilder {
	b.end = &end
	return b
}

func (b ConstraintsBuilder) WithOpenAt(openAt Instant) ConstraintsBuilder {
	b.openAt = &openAt
	return b
}

func (b ConstraintsBuilder) WithValidator(v DateValidator) ConstraintsBuilder {
	b.validator = v
	return b
}

func (b ConstraintsBuilder) WithLocation(loc *time.Location) ConstraintsBuilder {
	b.loc = zoneOrUTC(loc)
	return b
}

func (b ConstraintsBuilder) WithClock(clock Clock) ConstraintsBuilder {
	b.clock = clock
	return b
}

// DefaultStart returns the default lower bound in loc.
func DefaultStart(loc *time.Location) Instant {
	return InstantOf(time.Date(1900, time.January, 1, 0, 0, 0, 0, zoneOrUTC(loc)))
}

// DefaultEnd returns the default upper bound in loc.
func DefaultEnd(loc *time.Location) Instant {
	return InstantOf(time.Date(2100, time.December, 1, 0, 0, 0, 0, zoneOrUTC(loc)))
}

// Build normalizes the instants to Months and clamps OpenAt into range.
// It fails with a *RangeError when the start month is after the end month.
func (b ConstraintsBuilder) Build() (Constraints, error) {
	loc := zoneOrUTC(b.loc)

	startAt := DefaultStart(loc)
	if b.start != nil {
		startAt = *b.start
	}
	endAt := DefaultEnd(loc)
	if b.end != nil {
		endAt = *b.end
	}

	start := MonthFromInstant(startAt, loc)
	end := MonthFromInstant(endAt, loc)
	if start.After(end) {
		return Constraints{}, &RangeError{Start: start, End: end}
	}

	var openAt Month
	if b.openAt != nil {
		openAt = MonthFromInstant(*b.openAt, loc)
	} else {
		openAt = CurrentMonth(b.clock, loc)
	}

	c := Constraints{
		start:     start,
		end:       end,
		validator: b.validator,
		loc:       loc,
	}
	c.openAt = c.Clamp(openAt)
	return c, nil
}

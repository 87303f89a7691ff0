package picker

import (
	"time"

	"github.com/warp/datepicker-engine/ethiopic"
)

// =============================================================================
// INSTANT - Day-granularity absolute time
// =============================================================================

// Instant is a count of milliseconds since the Unix epoch. The picker only
// produces start-of-day instants, and every conversion to calendar fields
// takes the reference location explicitly.
type Instant int64

// InstantOf returns the Instant of t.
func InstantOf(t time.Time) Instant {
	return Instant(t.UnixMilli())
}

// Time returns i as a time.Time in loc (UTC when loc is nil).
func (i Instant) Time(loc *time.Location) time.Time {
	return time.UnixMilli(int64(i)).In(zoneOrUTC(loc))
}

// Date returns the Ethiopic date of i in loc.
func (i Instant) Date(loc *time.Location) ethiopic.Date {
	return ethiopic.FromTime(i.Time(loc))
}

// StartOfDay truncates i to midnight of its calendar day in loc.
func (i Instant) StartOfDay(loc *time.Location) Instant {
	t := i.Time(loc)
	y, m, d := t.Date()
	return InstantOf(time.Date(y, m, d, 0, 0, 0, 0, t.Location()))
}

// SameDay reports whether i and other fall on the same calendar day in loc.
func (i Instant) SameDay(other Instant, loc *time.Location) bool {
	y1, m1, d1 := i.Time(loc).Date()
	y2, m2, d2 := other.Time(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// InstantOfDate returns the start-of-day instant of an Ethiopic date in loc.
func InstantOfDate(d ethiopic.Date, loc *time.Location) (Instant, error) {
	t, err := d.Time(zoneOrUTC(loc))
	if err != nil {
		return 0, err
	}
	return InstantOf(t), nil
}

func zoneOrUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// =============================================================================
// CLOCK - Abstracts time.Now() for deterministic tests
// =============================================================================

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same time.
type FixedClock time.Time

// Now returns the fixed time.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

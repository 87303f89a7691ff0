/*
month.go - The Ethiopic Month value type

PURPOSE:
  A Month is an Ethiopic (year, month) pair, always meaning day 1 of
  that month. It is the unit of navigation in the picker: the pager
  holds one Month per page and moves between them with MonthsLater.

REPRESENTATION:
  Months are stored as a flattened index on a 13-months-per-year axis:

    index = year*13 + (month-1)

  so every index is a valid Month (including years <= 0) and
  arithmetic is plain integer addition. The zero Month is Meskerem of
  year 0.

ORDERING:
  Lexicographic on (year, month), which is the same as index order.
  Months are comparable with == and usable as map keys.

SEE ALSO:
  - constraints.go: range of Months a picker may show
  - grid.go:        day cells of one Month
*/
package picker

import (
	"fmt"
	"time"

	"github.com/warp/datepicker-engine/ethiopic"
)

// Month is an immutable Ethiopic calendar month.
type Month struct {
	index int
}

// NewMonth returns the Month for an Ethiopic year and month (1..13).
func NewMonth(year, month int) (Month, error) {
	if month < 1 || month > ethiopic.MonthsInYear {
		return Month{}, &ethiopic.DateError{Year: year, Month: month, Err: ethiopic.ErrInvalidMonth}
	}
	return Month{index: year*ethiopic.MonthsInYear + month - 1}, nil
}

// MustMonth is like NewMonth but panics on an invalid month.
func MustMonth(year, month int) Month {
	m, err := NewMonth(year, month)
	if err != nil {
		panic(err)
	}
	return m
}

// MonthOf returns the Month containing d.
func MonthOf(d ethiopic.Date) Month {
	return Month{index: d.Year*ethiopic.MonthsInYear + d.Month - 1}
}

// MonthFromInstant returns the Month containing i in loc.
func MonthFromInstant(i Instant, loc *time.Location) Month {
	return MonthOf(i.Date(loc))
}

// CurrentMonth returns the Month containing clock's "now" in loc.
func CurrentMonth(clock Clock, loc *time.Location) Month {
	if clock == nil {
		clock = RealClock{}
	}
	return MonthFromInstant(InstantOf(clock.Now()), loc)
}

// =============================================================================
// PROPERTIES
// =============================================================================

func (m Month) Year() int { return floorDiv(m.index, ethiopic.MonthsInYear) }
func (m Month) Month() int { return floorMod(m.index, ethiopic.MonthsInYear) + 1 }

// Name returns the month name, e.g. "Meskerem".
func (m Month) Name() string {
	name, _ := ethiopic.MonthName(m.Month())
	return name
}

// String formats m as "Meskerem 2010".
func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.Name(), m.Year())
}

// DaysInMonth returns 30, or 5/6 for Pagume.
func (m Month) DaysInMonth() int {
	days, _ := ethiopic.DaysInMonth(m.Year(), m.Month())
	return days
}

// Date returns the Ethiopic date of day in m.
func (m Month) Date(day int) (ethiopic.Date, error) {
	return ethiopic.NewDate(m.Year(), m.Month(), day)
}

// FirstDay returns the date of day 1 of m.
func (m Month) FirstDay() ethiopic.Date {
	return ethiopic.Date{Year: m.Year(), Month: m.Month(), Day: 1}
}

// DayOfWeek returns the ISO weekday (Monday=1 .. Sunday=7) of day in m.
func (m Month) DayOfWeek(day int) (int, error) {
	d, err := m.Date(day)
	if err != nil {
		return 0, err
	}
	return d.Weekday()
}

// FirstWeekday returns the ISO weekday of day 1 of m.
func (m Month) FirstWeekday() int {
	wd, _ := m.FirstDay().Weekday()
	return wd
}

// Instant returns the month-start instant of m in loc.
func (m Month) Instant(loc *time.Location) Instant {
	i, _ := InstantOfDate(m.FirstDay(), loc)
	return i
}

// DayInstant returns the start-of-day instant of day in m.
func (m Month) DayInstant(day int, loc *time.Location) (Instant, error) {
	d, err := m.Date(day)
	if err != nil {
		return 0, err
	}
	return InstantOfDate(d, loc)
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// MonthsLater returns the Month n months after m (n may be negative).
func (m Month) MonthsLater(n int) Month {
	return Month{index: m.index + n}
}

// MonthsUntil returns the number of months from m to other.
// m.MonthsLater(m.MonthsUntil(other)) == other.
func (m Month) MonthsUntil(other Month) int {
	return other.index - m.index
}

// WithYear returns the same month number in another year. Pagume stays
// Pagume; it exists in every year.
func (m Month) WithYear(year int) Month {
	return Month{index: year*ethiopic.MonthsInYear + m.Month() - 1}
}

// =============================================================================
// ORDERING
// =============================================================================

// Compare returns -1, 0 or +1.
func (m Month) Compare(other Month) int {
	switch {
	case m.index < other.index:
		return -1
	case m.index > other.index:
		return 1
	}
	return 0
}

func (m Month) Before(other Month) bool { return m.index < other.index }
func (m Month) After(other Month) bool { return m.index > other.index }

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - b*floorDiv(a, b)
}

/*
grid.go - Month grid layout for calendar rendering

PURPOSE:
  Lays one Month out as a fixed 6x7 grid, the shape a calendar view
  binds to. Cells before day 1 and after the last day are blank.

WEEKDAY CONVENTION:
  ISO numbering everywhere: Monday=1 .. Sunday=7. The grid's first
  column is FirstDayOfWeek (Monday by default), and

    offset = (weekday(day 1) - FirstDayOfWeek) mod 7

  is the number of leading blank cells. Six rows always suffice: a
  30-day month starting in the last column spans 6 rows.

CELL STATE:
  Enabled:  Constraints.IsWithinBounds(cell instant)
  Selected: the cell's day equals a selected day in the reference zone
*/
package picker

import (
	"fmt"

	"github.com/warp/datepicker-engine/ethiopic"
)

const (
	// GridRows is the number of week rows in a month grid.
	GridRows = 6

	// GridCells is the number of cells in a month grid.
	GridCells = GridRows * ethiopic.DaysInWeek

	// DefaultFirstDayOfWeek starts grid rows on Monday.
	DefaultFirstDayOfWeek = 1
)

// Cell is one position of a month grid. Day is zero for blank cells.
type Cell struct {
	Position int
	Day      int
	Date     ethiopic.Date
	Instant  Instant
	Weekday  int
	Enabled  bool
	Selected bool
}

// IsBlank reports whether the cell holds no day.
func (c Cell) IsBlank() bool { return c.Day == 0 }

// MonthGrid is the rendered layout of one Month.
type MonthGrid struct {
	Month          Month
	FirstDayOfWeek int
	Offset         int
	Cells          []Cell
}

// ValidateWeekday checks an ISO weekday number.
func ValidateWeekday(weekday int) error {
	if weekday < 1 || weekday > ethiopic.DaysInWeek {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, weekday)
	}
	return nil
}

// FirstDayOffset returns the number of blank cells before day 1 of m.
func FirstDayOffset(m Month, firstDayOfWeek int) int {
	return floorMod(m.FirstWeekday()-firstDayOfWeek, ethiopic.DaysInWeek)
}

// WeekdayOrder returns the ISO weekdays in column order.
func WeekdayOrder(firstDayOfWeek int) []int {
	order := make([]int, ethiopic.DaysInWeek)
	for i := range order {
		order[i] = floorMod(firstDayOfWeek-1+i, ethiopic.DaysInWeek) + 1
	}
	return order
}

// NewMonthGrid lays out m against the constraints and selection. sel may be nil.
func NewMonthGrid(m Month, c Constraints, sel DateSelector, firstDayOfWeek int) (MonthGrid, error) {
	if err := ValidateWeekday(firstDayOfWeek); err != nil {
		return MonthGrid{}, err
	}

	loc := c.Location()
	offset := FirstDayOffset(m, firstDayOfWeek)
	days := m.DaysInMonth()
	columns := WeekdayOrder(firstDayOfWeek)

	grid := MonthGrid{
		Month:          m,
		FirstDayOfWeek: firstDayOfWeek,
		Offset:         offset,
		Cells:          make([]Cell, GridCells),
	}

	for pos := range grid.Cells {
		cell := Cell{Position: pos, Weekday: columns[pos%ethiopic.DaysInWeek]}
		if day := pos - offset + 1; day >= 1 && day <= days {
			instant, err := m.DayInstant(day, loc)
			if err != nil {
				return MonthGrid{}, err
			}
			cell.Day = day
			cell.Date = ethiopic.Date{Year: m.Year(), Month: m.Month(), Day: day}
			cell.Instant = instant
			cell.Enabled = c.IsWithinBounds(instant)
			cell.Selected = IsSelected(sel, instant, loc)
		}
		grid.Cells[pos] = cell
	}
	return grid, nil
}

// PositionOfDay returns the grid position of day, or -1 when day is not in the month.
func (g MonthGrid) PositionOfDay(day int) int {
	if day < 1 || day > g.Month.DaysInMonth() {
		return -1
	}
	return g.Offset + day - 1
}

// DayAt returns the day shown at position, ok=false for blank cells.
func (g MonthGrid) DayAt(position int) (int, bool) {
	if position < 0 || position >= len(g.Cells) || g.Cells[position].IsBlank() {
		return 0, false
	}
	return g.Cells[position].Day, true
}

// Rows returns the number of rows holding at least one day.
func (g MonthGrid) Rows() int {
	last := g.Offset + g.Month.DaysInMonth() - 1
	return last/ethiopic.DaysInWeek + 1
}

package picker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/datepicker-engine/picker"
)

func TestWeekdayOrder(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, picker.WeekdayOrder(1))
	assert.Equal(t, []int{7, 1, 2, 3, 4, 5, 6}, picker.WeekdayOrder(7))
	assert.Equal(t, []int{3, 4, 5, 6, 7, 1, 2}, picker.WeekdayOrder(3))
}

func TestFirstDayOffset(t *testing.T) {
	// Meskerem 2010 starts on a Monday, Pagume 2011 on a Friday.
	meskerem := picker.MustMonth(2010, 1)
	pagume := picker.MustMonth(2011, 13)

	assert.Equal(t, 0, picker.FirstDayOffset(meskerem, 1))
	assert.Equal(t, 1, picker.FirstDayOffset(meskerem, 7))
	assert.Equal(t, 4, picker.FirstDayOffset(pagume, 1))
	assert.Equal(t, 5, picker.FirstDayOffset(pagume, 7))
	assert.Equal(t, 0, picker.FirstDayOffset(pagume, 5))
}

func TestNewMonthGrid_Layout(t *testing.T) {
	// GIVEN: Meskerem 2010 in a range that covers it, Sunday first
	m := picker.MustMonth(2010, 1)
	c := buildRange(t, m, m)

	// WHEN: The grid is built
	grid, err := picker.NewMonthGrid(m, c, nil, 7)
	require.NoError(t, err)

	// THEN: 42 cells, one leading blank, 30 days, 11 trailing blanks
	require.Len(t, grid.Cells, picker.GridCells)
	assert.Equal(t, 1, grid.Offset)
	assert.True(t, grid.Cells[0].IsBlank())
	assert.Equal(t, 1, grid.Cells[1].Day)
	assert.Equal(t, 30, grid.Cells[30].Day)
	for pos := 31; pos < picker.GridCells; pos++ {
		assert.True(t, grid.Cells[pos].IsBlank(), "position %d", pos)
	}
	assert.Equal(t, 5, grid.Rows())

	assert.Equal(t, 1, grid.PositionOfDay(1))
	assert.Equal(t, -1, grid.PositionOfDay(31))
	day, ok := grid.DayAt(15)
	require.True(t, ok)
	assert.Equal(t, 15, day)
	_, ok = grid.DayAt(0)
	assert.False(t, ok)
	_, ok = grid.DayAt(picker.GridCells)
	assert.False(t, ok)
}

func TestNewMonthGrid_CellsAgreeWithCalendar(t *testing.T) {
	for _, firstDay := range []int{1, 3, 7} {
		for _, m := range []picker.Month{picker.MustMonth(2011, 13), picker.MustMonth(2012, 13), picker.MustMonth(2016, 4)} {
			c := buildRange(t, m, m)
			grid, err := picker.NewMonthGrid(m, c, nil, firstDay)
			require.NoError(t, err)

			days := 0
			for pos, cell := range grid.Cells {
				assert.Equal(t, pos, cell.Position)
				assert.Equal(t, picker.WeekdayOrder(firstDay)[pos%7], cell.Weekday)
				if cell.IsBlank() {
					continue
				}
				days++
				wd, err := cell.Date.Weekday()
				require.NoError(t, err)
				assert.Equal(t, wd, cell.Weekday, "%s day %d", m, cell.Day)

				want, err := m.DayInstant(cell.Day, time.UTC)
				require.NoError(t, err)
				assert.Equal(t, want, cell.Instant)
				assert.True(t, cell.Enabled)
			}
			assert.Equal(t, m.DaysInMonth(), days)
		}
	}
}

func TestNewMonthGrid_PagumeFitsTwoRows(t *testing.T) {
	m := picker.MustMonth(2011, 13)
	c := buildRange(t, m, m)

	grid, err := picker.NewMonthGrid(m, c, nil, picker.DefaultFirstDayOfWeek)
	require.NoError(t, err)

	assert.Equal(t, 4, grid.Offset)
	assert.Equal(t, 2, grid.Rows())
	assert.Equal(t, 6, grid.Cells[9].Day)
	assert.True(t, grid.Cells[10].IsBlank())
}

func TestNewMonthGrid_EnabledAndSelected(t *testing.T) {
	// GIVEN: A range ending in Meskerem 2010 with weekends disabled
	m := picker.MustMonth(2010, 1)
	c, err := picker.NewConstraintsBuilder().
		WithStart(picker.MustMonth(2009, 12).Instant(time.UTC)).
		WithEnd(m.Instant(time.UTC)).
		WithValidator(picker.Weekdays{Allowed: []int{1, 2, 3, 4, 5}, Location: time.UTC}).
		Build()
	require.NoError(t, err)

	selectedDay, err := m.DayInstant(15, time.UTC)
	require.NoError(t, err)
	sel := picker.NewSingleDateSelectorWith(selectedDay, time.UTC)

	// WHEN: The grid is built Monday first
	grid, err := picker.NewMonthGrid(m, c, sel, 1)
	require.NoError(t, err)

	// THEN: Saturdays and Sundays are disabled, day 15 is selected
	for _, cell := range grid.Cells {
		if cell.IsBlank() {
			assert.False(t, cell.Enabled)
			assert.False(t, cell.Selected)
			continue
		}
		assert.Equal(t, cell.Weekday <= 5, cell.Enabled, "day %d", cell.Day)
		assert.Equal(t, cell.Day == 15, cell.Selected, "day %d", cell.Day)
	}
}

func TestNewMonthGrid_OutOfRangeMonthIsDisabled(t *testing.T) {
	c := buildRange(t, picker.MustMonth(2010, 1), picker.MustMonth(2010, 2))

	grid, err := picker.NewMonthGrid(picker.MustMonth(2010, 3), c, nil, 1)
	require.NoError(t, err)

	for _, cell := range grid.Cells {
		assert.False(t, cell.Enabled)
	}
}

func TestNewMonthGrid_InvalidFirstDay(t *testing.T) {
	m := picker.MustMonth(2010, 1)
	c := buildRange(t, m, m)

	for _, firstDay := range []int{0, 8, -1} {
		_, err := picker.NewMonthGrid(m, c, nil, firstDay)
		assert.ErrorIs(t, err, picker.ErrInvalidWeekday)
	}
}

package picker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/datepicker-engine/picker"
)

// buildRange builds UTC constraints over [start, end] that open at start.
func buildRange(t *testing.T, start, end picker.Month) picker.Constraints {
	t.Helper()
	c, err := picker.NewConstraintsBuilder().
		WithStart(start.Instant(time.UTC)).
		WithEnd(end.Instant(time.UTC)).
		WithOpenAt(start.Instant(time.UTC)).
		Build()
	require.NoError(t, err)
	return c
}

func TestConstraints_OpenAtBeforeStartIsClamped(t *testing.T) {
	// GIVEN: openAt a year before start
	start := picker.MustMonth(2010, 1)
	end := picker.MustMonth(2010, 13)

	// WHEN: The constraints are built
	c, err := picker.NewConstraintsBuilder().
		WithStart(start.Instant(time.UTC)).
		WithEnd(end.Instant(time.UTC)).
		WithOpenAt(picker.MustMonth(2009, 1).Instant(time.UTC)).
		Build()
	require.NoError(t, err)

	// THEN: openAt is clamped to start
	assert.Equal(t, start, c.OpenAt())
}

func TestConstraints_OpenAtAfterEndIsClamped(t *testing.T) {
	end := picker.MustMonth(2010, 13)

	c, err := picker.NewConstraintsBuilder().
		WithStart(picker.MustMonth(2010, 1).Instant(time.UTC)).
		WithEnd(end.Instant(time.UTC)).
		WithOpenAt(gregorian(2030, time.January, 1)).
		Build()
	require.NoError(t, err)

	assert.Equal(t, end, c.OpenAt())
}

func TestConstraints_OneYearRangeHasThirteenMonths(t *testing.T) {
	start := picker.MustMonth(2010, 1)
	end := picker.MustMonth(2010, 13)
	require.Equal(t, 12, start.MonthsUntil(end))

	c := buildRange(t, start, end)

	assert.Equal(t, 13, c.MonthCount())
	assert.Len(t, c.Months(), 13)
	assert.Equal(t, start, c.Months()[0])
	assert.Equal(t, end, c.Months()[12])
}

func TestConstraints_InvertedRange(t *testing.T) {
	_, err := picker.NewConstraintsBuilder().
		WithStart(picker.MustMonth(2011, 1).Instant(time.UTC)).
		WithEnd(picker.MustMonth(2010, 1).Instant(time.UTC)).
		Build()

	require.Error(t, err)
	assert.ErrorIs(t, err, picker.ErrInvalidRange)
	assert.True(t, picker.IsClientError(err))

	var rangeErr *picker.RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, picker.MustMonth(2011, 1), rangeErr.Start)
	assert.Equal(t, picker.MustMonth(2010, 1), rangeErr.End)
}

func TestConstraints_SingleMonthRange(t *testing.T) {
	m := picker.MustMonth(2010, 5)
	c := buildRange(t, m, m)

	assert.Equal(t, 1, c.MonthCount())
	assert.False(t, c.CanGoPrevious(m))
	assert.False(t, c.CanGoNext(m))
}

func TestConstraints_IsWithinBounds(t *testing.T) {
	// GIVEN: Meskerem 2010 .. Pagume 2010 (Pagume 2010 has 5 days)
	start := picker.MustMonth(2010, 1)
	end := picker.MustMonth(2010, 13)
	c := buildRange(t, start, end)

	day := func(m picker.Month, d int) picker.Instant {
		i, err := m.DayInstant(d, time.UTC)
		require.NoError(t, err)
		return i
	}

	tests := []struct {
		name string
		day  picker.Instant
		want bool
	}{
		{"first day of start month", day(start, 1), true},
		{"day before start", day(picker.MustMonth(2009, 13), 5), false},
		{"first day of end month", day(end, 1), true},
		{"last day of end month", day(end, 5), true},
		{"first day after end month", day(picker.MustMonth(2011, 1), 1), false},
		{"middle of range", day(picker.MustMonth(2010, 7), 15), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsWithinBounds(tt.day))
		})
	}
}

func TestConstraints_EveryEndMonthDayIsInside(t *testing.T) {
	end := picker.MustMonth(2012, 6)
	c := buildRange(t, picker.MustMonth(2012, 1), end)

	for d := 1; d <= end.DaysInMonth(); d++ {
		i, err := end.DayInstant(d, time.UTC)
		require.NoError(t, err)
		// Late in the day is still the same day.
		assert.True(t, c.IsWithinBounds(i+picker.Instant(23*time.Hour/time.Millisecond)), "day %d", d)
	}
	assert.False(t, c.IsWithinBounds(end.MonthsLater(1).Instant(time.UTC)))
}

func TestConstraints_BoundsInZone(t *testing.T) {
	// GIVEN: constraints interpreted in EAT (UTC+3)
	start := picker.MustMonth(2010, 1)
	c, err := picker.NewConstraintsBuilder().
		WithLocation(eat).
		WithStart(start.Instant(eat)).
		WithEnd(start.Instant(eat)).
		Build()
	require.NoError(t, err)

	// THEN: midnight EAT of Meskerem 1 is inside, one millisecond earlier is not
	assert.True(t, c.IsWithinBounds(start.Instant(eat)))
	assert.False(t, c.IsWithinBounds(start.Instant(eat)-1))
	assert.Equal(t, eat, c.Location())
}

func TestConstraints_BuildIsIdempotent(t *testing.T) {
	b := picker.NewConstraintsBuilder().
		WithStart(gregorian(2017, time.October, 20)).
		WithEnd(gregorian(2019, time.March, 3)).
		WithOpenAt(gregorian(2018, time.June, 1))

	first, err := b.Build()
	require.NoError(t, err)
	second, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Rebuilding from the normalized months yields the same constraints.
	again, err := picker.NewConstraintsBuilder().
		WithStart(first.Start().Instant(time.UTC)).
		WithEnd(first.End().Instant(time.UTC)).
		WithOpenAt(first.OpenAt().Instant(time.UTC)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestConstraintsBuilder_IsImmutable(t *testing.T) {
	base := picker.NewConstraintsBuilder().
		WithStart(picker.MustMonth(2010, 1).Instant(time.UTC)).
		WithOpenAt(picker.MustMonth(2010, 1).Instant(time.UTC))

	short, err := base.WithEnd(picker.MustMonth(2010, 2).Instant(time.UTC)).Build()
	require.NoError(t, err)
	long, err := base.WithEnd(picker.MustMonth(2012, 2).Instant(time.UTC)).Build()
	require.NoError(t, err)

	assert.Equal(t, 2, short.MonthCount())
	assert.Equal(t, 2*13+2, long.MonthCount())

	// base itself never received an end, so it still builds to the default end.
	c, err := base.Build()
	require.NoError(t, err)
	assert.Equal(t, picker.MonthFromInstant(picker.DefaultEnd(time.UTC), time.UTC), c.End())
}

func TestConstraints_Defaults(t *testing.T) {
	clock := picker.FixedClock(time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC))

	c, err := picker.NewConstraintsBuilder().WithClock(clock).Build()
	require.NoError(t, err)

	assert.Equal(t, picker.MustMonth(1892, 4), c.Start())
	assert.Equal(t, picker.MustMonth(2093, 3), c.End())
	assert.Equal(t, picker.MustMonth(2016, 4), c.OpenAt())
	assert.Equal(t, time.UTC, c.Location())
	assert.Nil(t, c.Validator())
}

func TestConstraints_DefaultOpenAtIsClamped(t *testing.T) {
	clock := picker.FixedClock(time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC))
	end := picker.MustMonth(2012, 1)

	c, err := picker.NewConstraintsBuilder().
		WithClock(clock).
		WithStart(picker.MustMonth(2011, 1).Instant(time.UTC)).
		WithEnd(end.Instant(time.UTC)).
		Build()
	require.NoError(t, err)

	assert.Equal(t, end, c.OpenAt())
}

func TestConstraints_Pager(t *testing.T) {
	start := picker.MustMonth(2010, 12)
	end := picker.MustMonth(2011, 2)
	c := buildRange(t, start, end)

	m, ok := c.MonthAt(1)
	require.True(t, ok)
	assert.Equal(t, picker.MustMonth(2010, 13), m)

	m, ok = c.MonthAt(3)
	require.True(t, ok)
	assert.Equal(t, end, m)

	_, ok = c.MonthAt(4)
	assert.False(t, ok)
	_, ok = c.MonthAt(-1)
	assert.False(t, ok)

	pos, ok := c.PositionOf(picker.MustMonth(2011, 1))
	require.True(t, ok)
	assert.Equal(t, 2, pos)

	_, ok = c.PositionOf(picker.MustMonth(2011, 3))
	assert.False(t, ok)

	assert.False(t, c.CanGoPrevious(start))
	assert.True(t, c.CanGoNext(start))
	assert.True(t, c.CanGoPrevious(end))
	assert.False(t, c.CanGoNext(end))
}

func TestConstraints_YearsAndJump(t *testing.T) {
	// GIVEN: Tahsas 2010 .. Megabit 2012
	c := buildRange(t, picker.MustMonth(2010, 4), picker.MustMonth(2012, 7))

	assert.Equal(t, []int{2010, 2011, 2012}, c.Years())

	// Jumping keeps the month number when it is in range.
	assert.Equal(t, picker.MustMonth(2012, 5), c.JumpToYear(picker.MustMonth(2011, 5), 2012))

	// Otherwise it is clamped into range.
	assert.Equal(t, picker.MustMonth(2010, 4), c.JumpToYear(picker.MustMonth(2011, 2), 2010))
	assert.Equal(t, picker.MustMonth(2012, 7), c.JumpToYear(picker.MustMonth(2011, 10), 2012))
	assert.Equal(t, picker.MustMonth(2012, 7), c.JumpToYear(picker.MustMonth(2011, 1), 2030))
}

func TestConstraints_ValidatorDisablesDays(t *testing.T) {
	// GIVEN: Meskerem 2010 with only days from Meskerem 10 on allowed
	m := picker.MustMonth(2010, 1)
	from, err := m.DayInstant(10, time.UTC)
	require.NoError(t, err)

	c, err := picker.NewConstraintsBuilder().
		WithStart(m.Instant(time.UTC)).
		WithEnd(m.Instant(time.UTC)).
		WithValidator(picker.PointForward{Point: from}).
		Build()
	require.NoError(t, err)

	// THEN: earlier days are out, later days in
	for d := 1; d <= m.DaysInMonth(); d++ {
		i, err := m.DayInstant(d, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, d >= 10, c.IsWithinBounds(i), "day %d", d)
	}
}

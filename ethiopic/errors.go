package ethiopic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidMonth is returned when a month is outside 1..13.
	ErrInvalidMonth = errors.New("invalid ethiopic month")

	// ErrInvalidDay is returned when a day is outside 1..DaysInMonth(year, month).
	ErrInvalidDay = errors.New("invalid ethiopic day")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// DateError reports the triple that failed validation.
type DateError struct {
	Year  int
	Month int
	Day   int // zero when only the month was checked
	Err   error
}

func (e *DateError) Error() string {
	if errors.Is(e.Err, ErrInvalidMonth) {
		return fmt.Sprintf("%v: %d (year %d)", e.Err, e.Month, e.Year)
	}
	return fmt.Sprintf("%v: %04d-%02d-%02d", e.Err, e.Year, e.Month, e.Day)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

// IsInvalidDate returns true if err came from Ethiopic date validation.
func IsInvalidDate(err error) bool {
	return errors.Is(err, ErrInvalidMonth) || errors.Is(err, ErrInvalidDay)
}

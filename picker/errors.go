/*
errors.go - Error types for the picker package

ERROR CATEGORIES:
  1. Construction errors - malformed constraints or validator specs
  2. Selection errors    - a date the constraints do not allow
  3. Store errors        - missing sessions

Ethiopic date validation errors (ErrInvalidMonth, ErrInvalidDay) live in
the ethiopic package and pass through unchanged; IsClientError
recognizes them too.

An empty selection is NOT an error: DisplayString returns "" and
Selection reports ok=false.
*/
package picker

import (
	"errors"
	"fmt"

	"github.com/warp/datepicker-engine/ethiopic"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned when the start month is after the end month.
	ErrInvalidRange = errors.New("invalid range: end month before start month")

	// ErrUnknownValidator is returned when a ValidatorSpec names an unknown kind.
	ErrUnknownValidator = errors.New("unknown validator kind")

	// ErrInvalidWeekday is returned for weekday numbers outside 1..7.
	ErrInvalidWeekday = errors.New("invalid weekday: expected 1 (Monday) to 7 (Sunday)")

	// ErrInvalidZone is returned when a session names an unknown time zone.
	ErrInvalidZone = errors.New("invalid time zone")

	// ErrOutOfBounds is returned when a date outside the constraints is selected.
	ErrOutOfBounds = errors.New("date is outside the calendar constraints")

	// ErrSessionNotFound is returned when a session does not exist.
	ErrSessionNotFound = errors.New("session not found")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// RangeError reports an inverted [Start, End] range.
type RangeError struct {
	Start Month
	End   Month
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range: %s is after %s", e.Start, e.End)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrUnknownValidator) ||
		errors.Is(err, ErrInvalidWeekday) ||
		errors.Is(err, ErrInvalidZone) ||
		errors.Is(err, ErrOutOfBounds) ||
		ethiopic.IsInvalidDate(err)
}

// IsNotFound returns true if the error indicates a missing session.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

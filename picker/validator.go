package picker

import (
	"fmt"
	"time"

	"github.com/warp/datepicker-engine/ethiopic"
)

// =============================================================================
// DATE VALIDATOR - Day-level selectability
// =============================================================================

// DateValidator decides whether a day inside the constraint range may be
// selected. Implementations must be pure: the grid calls IsValid once per
// cell on every render.
type DateValidator interface {
	IsValid(day Instant) bool
}

// ValidatorFunc adapts a plain function to DateValidator.
type ValidatorFunc func(day Instant) bool

func (f ValidatorFunc) IsValid(day Instant) bool { return f(day) }

// PointForward allows days on or after Point.
type PointForward struct {
	Point Instant
}

func (v PointForward) IsValid(day Instant) bool { return day >= v.Point }

// PointBackward allows days on or before Point.
type PointBackward struct {
	Point Instant
}

func (v PointBackward) IsValid(day Instant) bool { return day <= v.Point }

// Weekdays allows only the listed ISO weekdays (Monday=1 .. Sunday=7),
// read in Location.
type Weekdays struct {
	Allowed  []int
	Location *time.Location
}

func (v Weekdays) IsValid(day Instant) bool {
	wd, err := day.Date(v.Location).Weekday()
	if err != nil {
		return false
	}
	for _, a := range v.Allowed {
		if a == wd {
			return true
		}
	}
	return false
}

// AllOf is valid when every validator is valid. An empty AllOf allows every day.
type AllOf []DateValidator

func (vs AllOf) IsValid(day Instant) bool {
	for _, v := range vs {
		if !v.IsValid(day) {
			return false
		}
	}
	return true
}

// AnyOf is valid when at least one validator is valid. An empty AnyOf allows no day.
type AnyOf []DateValidator

func (vs AnyOf) IsValid(day Instant) bool {
	for _, v := range vs {
		if v.IsValid(day) {
			return true
		}
	}
	return false
}

// =============================================================================
// VALIDATOR SPEC - Serializable validator identifier
// =============================================================================

// ValidatorKind names a built-in validator.
type ValidatorKind string

const (
	ValidatorPointForward  ValidatorKind = "point_forward"
	ValidatorPointBackward ValidatorKind = "point_backward"
	ValidatorWeekdays      ValidatorKind = "weekdays"
	ValidatorAllOf         ValidatorKind = "all_of"
	ValidatorAnyOf         ValidatorKind = "any_of"
)

// ValidatorSpec is the persisted form of a validator. Arbitrary
// ValidatorFunc values cannot be persisted; only the built-in kinds can.
type ValidatorSpec struct {
	Kind     ValidatorKind   `json:"kind"`
	Point    Instant         `json:"point,omitempty"`
	Days     []int           `json:"days,omitempty"`
	Children []ValidatorSpec `json:"children,omitempty"`
}

// Build returns the validator described by the spec. Weekdays are read in loc.
func (s ValidatorSpec) Build(loc *time.Location) (DateValidator, error) {
	switch s.Kind {
	case ValidatorPointForward:
		return PointForward{Point: s.Point}, nil
	case ValidatorPointBackward:
		return PointBackward{Point: s.Point}, nil
	case ValidatorWeekdays:
		for _, d := range s.Days {
			if d < 1 || d > ethiopic.DaysInWeek {
				return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, d)
			}
		}
		return Weekdays{Allowed: append([]int(nil), s.Days...), Location: zoneOrUTC(loc)}, nil
	case ValidatorAllOf, ValidatorAnyOf:
		children := make([]DateValidator, 0, len(s.Children))
		for _, c := range s.Children {
			v, err := c.Build(loc)
			if err != nil {
				return nil, err
			}
			children = append(children, v)
		}
		if s.Kind == ValidatorAllOf {
			return AllOf(children), nil
		}
		return AnyOf(children), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownValidator, s.Kind)
}

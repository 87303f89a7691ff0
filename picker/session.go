/*
session.go - Persisted picker sessions

PURPOSE:
  A Session is the serializable state of one picker: the constraint
  instants, an optional validator identifier and the nullable
  selection. It is what survives between HTTP requests or a process
  restart. Live objects (Constraints, SingleDateSelector) are rebuilt
  from it on every use and the selection is copied back out afterwards.

PERSISTED FORM:
  Zone            IANA zone name, the reference zone of every conversion
  Start/End       constraint bounds as instants
  OpenAt          resolved at creation, so "current month" does not drift
  Validator       optional ValidatorSpec
  Selection       optional Instant
  FirstDayOfWeek  ISO weekday of the grid's first column

SEE ALSO:
  - store.go:               SessionStore interface
  - store/memory.go:        in-memory implementation
  - ../store/sqlite:        SQLite implementation
*/
package picker

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionID identifies a picker session.
type SessionID string

// NewSessionID returns a random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// Session is the persisted state of one picker.
type Session struct {
	ID             SessionID
	Zone           string
	Start          Instant
	End            Instant
	OpenAt         Instant
	Validator      *ValidatorSpec
	Selection      *Instant
	FirstDayOfWeek int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SessionConfig is the input for NewSession. Nil bounds take the defaults.
type SessionConfig struct {
	Zone           string
	Start          *Instant
	End            *Instant
	OpenAt         *Instant
	Validator      *ValidatorSpec
	Selection      *Instant
	FirstDayOfWeek int
}

// NewSession validates cfg, resolves defaults and returns a new Session.
func NewSession(cfg SessionConfig, clock Clock) (Session, error) {
	if clock == nil {
		clock = RealClock{}
	}
	loc, err := LoadZone(cfg.Zone)
	if err != nil {
		return Session{}, err
	}

	firstDay := cfg.FirstDayOfWeek
	if firstDay == 0 {
		firstDay = DefaultFirstDayOfWeek
	}
	if err := ValidateWeekday(firstDay); err != nil {
		return Session{}, err
	}

	b := NewConstraintsBuilder().WithLocation(loc).WithClock(clock)
	if cfg.Start != nil {
		b = b.WithStart(*cfg.Start)
	}
	if cfg.End != nil {
		b = b.WithEnd(*cfg.End)
	}
	if cfg.OpenAt != nil {
		b = b.WithOpenAt(*cfg.OpenAt)
	}
	if cfg.Validator != nil {
		v, err := cfg.Validator.Build(loc)
		if err != nil {
			return Session{}, err
		}
		b = b.WithValidator(v)
	}
	c, err := b.Build()
	if err != nil {
		return Session{}, err
	}

	var selection *Instant
	if cfg.Selection != nil {
		day := cfg.Selection.StartOfDay(loc)
		if !c.IsWithinBounds(day) {
			return Session{}, fmt.Errorf("%w: %s", ErrOutOfBounds, day.Date(loc))
		}
		selection = &day
	}

	now := clock.Now().UTC()
	return Session{
		ID:             NewSessionID(),
		Zone:           loc.String(),
		Start:          c.Start().Instant(loc),
		End:            c.End().Instant(loc),
		OpenAt:         c.OpenAt().Instant(loc),
		Validator:      cfg.Validator,
		Selection:      selection,
		FirstDayOfWeek: firstDay,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// LoadZone resolves a zone name; "" means UTC.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidZone, name)
	}
	return loc, nil
}

// Location returns the session's reference zone.
func (s Session) Location() (*time.Location, error) {
	return LoadZone(s.Zone)
}

// Constraints rebuilds the session's constraints.
func (s Session) Constraints() (Constraints, error) {
	loc, err := s.Location()
	if err != nil {
		return Constraints{}, err
	}
	b := NewConstraintsBuilder().
		WithLocation(loc).
		WithStart(s.Start).
		WithEnd(s.End).
		WithOpenAt(s.OpenAt)
	if s.Validator != nil {
		v, err := s.Validator.Build(loc)
		if err != nil {
			return Constraints{}, err
		}
		b = b.WithValidator(v)
	}
	return b.Build()
}

// Selector rebuilds the session's selector.
func (s Session) Selector() (*SingleDateSelector, error) {
	loc, err := s.Location()
	if err != nil {
		return nil, err
	}
	if s.Selection != nil {
		return NewSingleDateSelectorWith(*s.Selection, loc), nil
	}
	return NewSingleDateSelector(loc), nil
}

// Select validates day against the session's constraints, records it
// and returns the updated session.
func (s Session) Select(day Instant, now time.Time) (Session, error) {
	c, err := s.Constraints()
	if err != nil {
		return s, err
	}
	day = day.StartOfDay(c.Location())
	if !c.IsWithinBounds(day) {
		return s, fmt.Errorf("%w: %s", ErrOutOfBounds, day.Date(c.Location()))
	}

	sel, err := s.Selector()
	if err != nil {
		return s, err
	}
	sel.Select(day)

	if selected, ok := sel.Selection(); ok {
		s.Selection = &selected
	}
	s.UpdatedAt = now.UTC()
	return s, nil
}

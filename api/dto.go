/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the picker engine's value types (Month, Instant, Constraints) from the
  external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

INSTANTS ON THE WIRE:
  Instants are int64 milliseconds since the Unix epoch (field suffix _ms).
  Request bodies may give a Gregorian "YYYY-MM-DD" date instead, read
  in the session's zone.

TYPES:
  Sessions:    CreateSessionRequest, SessionDTO, SelectRequest
  Navigation:  MonthDTO, MonthListDTO, MonthGridDTO, CellDTO
  Conversion:  ConversionDTO
  Errors:      ErrorResponse

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/datepicker-engine/ethiopic"
	"github.com/warp/datepicker-engine/picker"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateSessionRequest is the request to open a picker session.
type CreateSessionRequest struct {
	Zone           string                `json:"zone,omitempty"`
	StartMs        *int64                `json:"start_ms,omitempty"`
	EndMs          *int64                `json:"end_ms,omitempty"`
	OpenAtMs       *int64                `json:"open_at_ms,omitempty"`
	SelectionMs    *int64                `json:"selection_ms,omitempty"`
	Validator      *picker.ValidatorSpec `json:"validator,omitempty"`
	FirstDayOfWeek int                   `json:"first_day_of_week,omitempty"`
}

// SelectRequest selects a day, by instant or by Gregorian date.
type SelectRequest struct {
	InstantMs *int64 `json:"instant_ms,omitempty"`
	Date      string `json:"date,omitempty"` // YYYY-MM-DD
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// EthiopicDateDTO is an Ethiopic date with its rendered forms.
type EthiopicDateDTO struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"month_name"`
	Display   string `json:"display"`
}

// MonthDTO is one Ethiopic month.
type MonthDTO struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	DaysInMonth int    `json:"days_in_month"`
	StartMs     int64  `json:"start_ms"`
	Position    int    `json:"position"`
}

// SessionDTO represents a picker session.
type SessionDTO struct {
	ID                string                `json:"id"`
	Zone              string                `json:"zone"`
	Start             MonthDTO              `json:"start"`
	End               MonthDTO              `json:"end"`
	OpenAt            MonthDTO              `json:"open_at"`
	MonthCount        int                   `json:"month_count"`
	FirstDayOfWeek    int                   `json:"first_day_of_week"`
	Validator         *picker.ValidatorSpec `json:"validator,omitempty"`
	SelectionMs       *int64                `json:"selection_ms,omitempty"`
	Selection         *EthiopicDateDTO      `json:"selection,omitempty"`
	DisplayString     string                `json:"display_string"`
	SelectionComplete bool                  `json:"selection_complete"`
	CreatedAt         string                `json:"created_at"`
	UpdatedAt         string                `json:"updated_at"`
}

// MonthListDTO is the pager's view of a session.
type MonthListDTO struct {
	Count          int        `json:"count"`
	OpenAtPosition int        `json:"open_at_position"`
	Years          []int      `json:"years"`
	Months         []MonthDTO `json:"months"`
}

// CellDTO is one grid cell. Day is zero for blank cells.
type CellDTO struct {
	Position  int   `json:"position"`
	Day       int   `json:"day,omitempty"`
	Weekday   int   `json:"weekday"`
	InstantMs int64 `json:"instant_ms,omitempty"`
	Enabled   bool  `json:"enabled"`
	Selected  bool  `json:"selected"`
}

// MonthGridDTO is the rendered grid of one month.
type MonthGridDTO struct {
	Month        MonthDTO  `json:"month"`
	Offset       int       `json:"offset"`
	Rows         int       `json:"rows"`
	WeekdayOrder []int     `json:"weekday_order"`
	HasPrevious  bool      `json:"has_previous"`
	HasNext      bool      `json:"has_next"`
	Cells        []CellDTO `json:"cells"`
}

// ConversionDTO is a date in both calendars.
type ConversionDTO struct {
	Gregorian string          `json:"gregorian"`
	Ethiopic  EthiopicDateDTO `json:"ethiopic"`
	JDN       int             `json:"jdn"`
	Weekday   int             `json:"weekday"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toEthiopicDateDTO(d ethiopic.Date) EthiopicDateDTO {
	return EthiopicDateDTO{
		Year:      d.Year,
		Month:     d.Month,
		Day:       d.Day,
		MonthName: d.MonthName(),
		Display:   d.String(),
	}
}

func toMonthDTO(m picker.Month, c picker.Constraints) MonthDTO {
	pos, _ := c.PositionOf(m)
	return MonthDTO{
		Year:        m.Year(),
		Month:       m.Month(),
		Name:        m.Name(),
		Label:       m.String(),
		DaysInMonth: m.DaysInMonth(),
		StartMs:     int64(m.Instant(c.Location())),
		Position:    pos,
	}
}

func toSessionDTO(s picker.Session, c picker.Constraints, sel picker.DateSelector) SessionDTO {
	dto := SessionDTO{
		ID:                string(s.ID),
		Zone:              s.Zone,
		Start:             toMonthDTO(c.Start(), c),
		End:               toMonthDTO(c.End(), c),
		OpenAt:            toMonthDTO(c.OpenAt(), c),
		MonthCount:        c.MonthCount(),
		FirstDayOfWeek:    s.FirstDayOfWeek,
		Validator:         s.Validator,
		DisplayString:     sel.DisplayString(),
		SelectionComplete: sel.IsSelectionComplete(),
		CreatedAt:         s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         s.UpdatedAt.Format(time.RFC3339),
	}
	if day, ok := sel.Selection(); ok {
		ms := int64(day)
		dto.SelectionMs = &ms
		date := toEthiopicDateDTO(day.Date(c.Location()))
		dto.Selection = &date
	}
	return dto
}

func toMonthGridDTO(g picker.MonthGrid, c picker.Constraints) MonthGridDTO {
	cells := make([]CellDTO, len(g.Cells))
	for i, cell := range g.Cells {
		cells[i] = CellDTO{
			Position:  cell.Position,
			Day:       cell.Day,
			Weekday:   cell.Weekday,
			InstantMs: int64(cell.Instant),
			Enabled:   cell.Enabled,
			Selected:  cell.Selected,
		}
	}
	return MonthGridDTO{
		Month:        toMonthDTO(g.Month, c),
		Offset:       g.Offset,
		Rows:         g.Rows(),
		WeekdayOrder: picker.WeekdayOrder(g.FirstDayOfWeek),
		HasPrevious:  c.CanGoPrevious(g.Month),
		HasNext:      c.CanGoNext(g.Month),
		Cells:        cells,
	}
}

func toConversionDTO(jdn ethiopic.JDN) ConversionDTO {
	y, m, d := ethiopic.JDNToGregorian(jdn)
	return ConversionDTO{
		Gregorian: time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		Ethiopic:  toEthiopicDateDTO(ethiopic.JDNToEthiopic(jdn)),
		JDN:       int(jdn),
		Weekday:   ethiopic.Weekday(jdn),
	}
}

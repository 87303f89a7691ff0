/*
handlers.go - HTTP API handlers for the Ethiopic date picker

PURPOSE:
  Exposes picker sessions via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the picker engine.

ENDPOINTS:
  Sessions:
    GET    /api/sessions                          List sessions
    POST   /api/sessions                          Open a picker session
    GET    /api/sessions/{id}                     Session, bounds and display string
    DELETE /api/sessions/{id}                     Close a session

  Navigation:
    GET    /api/sessions/{id}/months              Month pager (count, positions, years)
    GET    /api/sessions/{id}/months/{year}/{month}
                                                  42-cell month grid

  Selection:
    POST   /api/sessions/{id}/selection           Select a day
    GET    /api/sessions/{id}/selection.ics       Selection as an all-day iCalendar event

  Conversion:
    GET    /api/convert/gregorian/{date}          YYYY-MM-DD to Ethiopic
    GET    /api/convert/ethiopic/{y}/{m}/{d}      Ethiopic to Gregorian

REQUEST FLOW:
  1. Load the session from the store
  2. Rebuild Constraints and the selector from it
  3. Call the engine
  4. Save the session back when the selection changed
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: invalid dates, ranges, zones, validators, out-of-bounds selections
  - 404: unknown session, empty selection export
  - 500: storage failures

SEE ALSO:
  - dto.go: Request/response data structures
  - ics.go: iCalendar export
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/warp/datepicker-engine/ethiopic"
	"github.com/warp/datepicker-engine/picker"
)

const dateLayout = "2006-01-02"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store picker.SessionStore
	Clock picker.Clock

	// Defaults applied to sessions that do not name their own.
	Zone           string
	FirstDayOfWeek int

	Logger *slog.Logger
}

// NewHandler creates a new handler with the given store.
func NewHandler(store picker.SessionStore) *Handler {
	return &Handler{
		Store:          store,
		Clock:          picker.RealClock{},
		FirstDayOfWeek: picker.DefaultFirstDayOfWeek,
		Logger:         slog.Default(),
	}
}

func (h *Handler) now() time.Time {
	if h.Clock == nil {
		return time.Now()
	}
	return h.Clock.Now()
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// =============================================================================
// SESSION HANDLERS
// =============================================================================

// ListSessions returns all open sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions", err)
		return
	}

	dtos := make([]SessionDTO, 0, len(sessions))
	for _, s := range sessions {
		c, sel, err := rebuild(s)
		if err != nil {
			h.logger().Warn("skipping unreadable session",
				LogKeyComponent, CompAPI,
				LogKeySession, s.ID,
				LogKeyError, err,
			)
			continue
		}
		dtos = append(dtos, toSessionDTO(s, c, sel))
	}

	writeJSON(w, http.StatusOK, dtos)
}

// CreateSession opens a new picker session.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg := picker.SessionConfig{
		Zone:           req.Zone,
		Start:          instantPtr(req.StartMs),
		End:            instantPtr(req.EndMs),
		OpenAt:         instantPtr(req.OpenAtMs),
		Validator:      req.Validator,
		Selection:      instantPtr(req.SelectionMs),
		FirstDayOfWeek: req.FirstDayOfWeek,
	}
	if cfg.Zone == "" {
		cfg.Zone = h.Zone
	}
	if cfg.FirstDayOfWeek == 0 {
		cfg.FirstDayOfWeek = h.FirstDayOfWeek
	}

	session, err := picker.NewSession(cfg, h.Clock)
	if err != nil {
		writeEngineError(w, "Invalid session", err)
		return
	}
	if err := h.Store.Save(r.Context(), session); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session", err)
		return
	}

	h.logger().Info("session created",
		LogKeyComponent, CompAPI,
		LogKeySession, session.ID,
		LogKeyZone, session.Zone,
	)

	c, sel, err := rebuild(session)
	if err != nil {
		writeEngineError(w, "Invalid session", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionDTO(session, c, sel))
}

// GetSession returns a session with its bounds and display string.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, c, sel, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(session, c, sel))
}

// DeleteSession closes a session.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := picker.SessionID(chi.URLParam(r, "id"))

	if err := h.Store.Delete(r.Context(), id); err != nil {
		writeEngineError(w, "Failed to delete session", err)
		return
	}

	h.logger().Info("session deleted", LogKeyComponent, CompAPI, LogKeySession, id)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// NAVIGATION HANDLERS
// =============================================================================

// ListMonths returns every month the session's pager can show.
func (h *Handler) ListMonths(w http.ResponseWriter, r *http.Request) {
	_, c, _, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	months := c.Months()
	dtos := make([]MonthDTO, len(months))
	for i, m := range months {
		dtos[i] = toMonthDTO(m, c)
	}
	openAt, _ := c.PositionOf(c.OpenAt())

	writeJSON(w, http.StatusOK, MonthListDTO{
		Count:          c.MonthCount(),
		OpenAtPosition: openAt,
		Years:          c.Years(),
		Months:         dtos,
	})
}

// GetMonthGrid renders one month of the session as a 42-cell grid.
// The optional first_day query parameter overrides the session's first day of week.
func (h *Handler) GetMonthGrid(w http.ResponseWriter, r *http.Request) {
	session, c, sel, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	monthNum, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return
	}
	month, err := picker.NewMonth(year, monthNum)
	if err != nil {
		writeEngineError(w, "Invalid month", err)
		return
	}
	if !c.Contains(month) {
		writeError(w, http.StatusBadRequest, "Month outside the session range",
			fmt.Errorf("%w: %s", picker.ErrOutOfBounds, month))
		return
	}

	firstDay := session.FirstDayOfWeek
	if raw := r.URL.Query().Get("first_day"); raw != "" {
		if firstDay, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid first_day", err)
			return
		}
	}

	grid, err := picker.NewMonthGrid(month, c, sel, firstDay)
	if err != nil {
		writeEngineError(w, "Failed to build month grid", err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthGridDTO(grid, c))
}

// =============================================================================
// SELECTION HANDLERS
// =============================================================================

// Select records a day as the session's selection.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	session, c, _, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var day picker.Instant
	switch {
	case req.InstantMs != nil:
		day = picker.Instant(*req.InstantMs)
	case req.Date != "":
		t, err := time.ParseInLocation(dateLayout, req.Date, c.Location())
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		day = picker.InstantOf(t)
	default:
		writeError(w, http.StatusBadRequest, "instant_ms or date is required", nil)
		return
	}

	updated, err := session.Select(day, h.now())
	if err != nil {
		writeEngineError(w, "Selection rejected", err)
		return
	}
	if err := h.Store.Save(r.Context(), updated); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save session", err)
		return
	}

	c, sel, err := rebuild(updated)
	if err != nil {
		writeEngineError(w, "Invalid session", err)
		return
	}
	h.logger().Info("date selected",
		LogKeyComponent, CompAPI,
		LogKeySession, updated.ID,
		LogKeyDate, sel.DisplayString(),
	)
	writeJSON(w, http.StatusOK, toSessionDTO(updated, c, sel))
}

// ExportSelection returns the selection as an iCalendar file.
func (h *Handler) ExportSelection(w http.ResponseWriter, r *http.Request) {
	session, c, sel, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	day, selected := sel.Selection()
	if !selected {
		writeError(w, http.StatusNotFound, "Session has no selection", nil)
		return
	}

	data, err := SelectionICS(session.ID, day, c.Location(), h.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode calendar", err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", string(session.ID)+".ics"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// =============================================================================
// CONVERSION HANDLERS
// =============================================================================

// ConvertGregorian converts a YYYY-MM-DD Gregorian date to Ethiopic.
func (h *Handler) ConvertGregorian(w http.ResponseWriter, r *http.Request) {
	t, err := time.Parse(dateLayout, chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	jdn := ethiopic.GregorianToJDN(t.Year(), int(t.Month()), t.Day())
	writeJSON(w, http.StatusOK, toConversionDTO(jdn))
}

// ConvertEthiopic converts an Ethiopic date to Gregorian.
func (h *Handler) ConvertEthiopic(w http.ResponseWriter, r *http.Request) {
	var parts [3]int
	for i, name := range []string{"year", "month", "day"} {
		n, err := strconv.Atoi(chi.URLParam(r, name))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid "+name, err)
			return
		}
		parts[i] = n
	}

	jdn, err := ethiopic.EthiopicToJDN(parts[0], parts[1], parts[2])
	if err != nil {
		writeEngineError(w, "Invalid Ethiopic date", err)
		return
	}
	writeJSON(w, http.StatusOK, toConversionDTO(jdn))
}

// =============================================================================
// HELPERS
// =============================================================================

// loadSession fetches the {id} session and rebuilds its live objects.
// On failure it writes the error response and returns ok=false.
func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request) (picker.Session, picker.Constraints, picker.DateSelector, bool) {
	id := picker.SessionID(chi.URLParam(r, "id"))

	session, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeEngineError(w, "Failed to get session", err)
		return picker.Session{}, picker.Constraints{}, nil, false
	}

	c, sel, err := rebuild(session)
	if err != nil {
		writeEngineError(w, "Invalid session", err)
		return picker.Session{}, picker.Constraints{}, nil, false
	}
	return session, c, sel, true
}

func rebuild(s picker.Session) (picker.Constraints, picker.DateSelector, error) {
	c, err := s.Constraints()
	if err != nil {
		return picker.Constraints{}, nil, err
	}
	sel, err := s.Selector()
	if err != nil {
		return picker.Constraints{}, nil, err
	}
	return c, sel, nil
}

func instantPtr(ms *int64) *picker.Instant {
	if ms == nil {
		return nil
	}
	i := picker.Instant(*ms)
	return &i
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine errors to 404, 400 or 500.
func writeEngineError(w http.ResponseWriter, message string, err error) {
	switch {
	case picker.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Session not found", err)
	case picker.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a picker frontend

ROUTE GROUPS:
  /api/sessions/*       Picker sessions, navigation and selection
  /api/convert/*        Stateless calendar conversion

SECURITY NOTE:
  No authentication middleware. Session IDs are random UUIDs and act as
  bearer capabilities.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", h.ListSessions)
			r.Post("/", h.CreateSession)
			r.Get("/{id}", h.GetSession)
			r.Delete("/{id}", h.DeleteSession)
			r.Get("/{id}/months", h.ListMonths)
			r.Get("/{id}/months/{year}/{month}", h.GetMonthGrid)
			r.Post("/{id}/selection", h.Select)
			r.Get("/{id}/selection.ics", h.ExportSelection)
		})

		r.Route("/convert", func(r chi.Router) {
			r.Get("/gregorian/{date}", h.ConvertGregorian)
			r.Get("/ethiopic/{year}/{month}/{day}", h.ConvertEthiopic)
		})
	})

	return r
}

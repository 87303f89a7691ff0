/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Ethiopic date picker server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags (with PICKER_* environment fallbacks)
  2. Configure structured logging
  3. Initialize the session store
  4. Create API handler and router
  5. Start the idle-session reaper
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port           HTTP server port (default: 8080)             PICKER_PORT
  -db             SQLite database path (default: picker.db)    PICKER_DB
                  Use ":memory:" for an in-memory SQLite database,
                  "" for the map-backed store
  -zone           Default reference time zone (default: UTC)   PICKER_ZONE
  -first-day      Default grid first day, 1=Mon..7=Sun         PICKER_FIRST_DAY
  -session-ttl    Idle time before a session is reaped (24h)   PICKER_SESSION_TTL
  -reap-interval  How often the reaper runs (10m)              PICKER_REAP_INTERVAL
  -debug          Debug logging                                PICKER_DEBUG

  A flag given on the command line wins over its environment variable.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the reaper
  4. Close database connection
  5. Exit

EXAMPLES:
  ./server -db="./data/picker.db" -zone=Africa/Addis_Ababa
  PICKER_PORT=3000 ./server -db=""

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/warp/datepicker-engine/api"
	"github.com/warp/datepicker-engine/picker"
	"github.com/warp/datepicker-engine/picker/store"
	"github.com/warp/datepicker-engine/store/sqlite"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Flags
	port := flag.Int("port", envInt("PICKER_PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envString("PICKER_DB", "picker.db"), "SQLite database path (empty for in-memory map store)")
	zone := flag.String("zone", envString("PICKER_ZONE", "UTC"), "Default reference time zone")
	firstDay := flag.Int("first-day", envInt("PICKER_FIRST_DAY", picker.DefaultFirstDayOfWeek), "Default first day of week (1=Monday..7=Sunday)")
	ttl := flag.Duration("session-ttl", envDuration("PICKER_SESSION_TTL", 24*time.Hour), "Idle time before a session is removed (0 disables)")
	interval := flag.Duration("reap-interval", envDuration("PICKER_REAP_INTERVAL", 10*time.Minute), "Session reaper interval")
	debug := flag.Bool("debug", envBool("PICKER_DEBUG", false), "Enable debug logging")
	flag.Parse()

	// Logging
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	logger := slog.Default()

	// Validate defaults
	if _, err := picker.LoadZone(*zone); err != nil {
		logger.Error("invalid -zone", api.LogKeyComponent, api.CompMain, api.LogKeyError, err)
		return 2
	}
	if err := picker.ValidateWeekday(*firstDay); err != nil {
		logger.Error("invalid -first-day", api.LogKeyComponent, api.CompMain, api.LogKeyError, err)
		return 2
	}

	// Initialize store
	var sessions picker.SessionStore
	if *dbPath == "" {
		sessions = store.NewMemory()
		logger.Info("using in-memory session store", api.LogKeyComponent, api.CompMain)
	} else {
		db, err := sqlite.New(*dbPath)
		if err != nil {
			logger.Error("failed to initialize database",
				api.LogKeyComponent, api.CompMain,
				api.LogKeyDB, *dbPath,
				api.LogKeyError, err,
			)
			return 1
		}
		defer db.Close()
		sessions = db
	}

	// Initialize handler
	handler := api.NewHandler(sessions)
	handler.Zone = *zone
	handler.FirstDayOfWeek = *firstDay
	handler.Logger = logger

	// Create router
	router := api.NewRouter(handler)

	// Start reaper
	reaper := api.NewSessionReaper(sessions)
	reaper.TTL = *ttl
	reaper.Interval = *interval
	reaper.Logger = logger
	reaper.Start()
	defer reaper.Stop()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", api.LogKeyComponent, api.CompMain, api.LogKeyPort, *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		logger.Error("server failed", api.LogKeyComponent, api.CompMain, api.LogKeyError, err)
		return 1
	}

	logger.Info("shutting down server", api.LogKeyComponent, api.CompMain)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", api.LogKeyComponent, api.CompMain, api.LogKeyError, err)
		return 1
	}

	logger.Info("server stopped", api.LogKeyComponent, api.CompMain)
	return 0
}

// =============================================================================
// ENVIRONMENT FALLBACKS
// =============================================================================

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("ignoring invalid environment value", "key", key, "value", v)
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("ignoring invalid environment value", "key", key, "value", v)
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		slog.Warn("ignoring invalid environment value", "key", key, "value", v)
	}
	return fallback
}

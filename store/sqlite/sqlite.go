/*
Package sqlite provides a SQLite-backed implementation of picker.SessionStore.

PURPOSE:
  Persists picker sessions so a picker survives server restarts. A
  session row holds exactly the persisted form described in
  picker/session.go: three constraint instants, an optional validator
  identifier (JSON) and a nullable selection instant.

KEY TABLES:
  sessions: one row per picker session

INDEXES:
  - idx_sessions_updated_at: idle-session reaping (DeleteIdle)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of database/sql.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/picker.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - picker/store.go:        Interface definition
  - picker/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/datepicker-engine/picker"
)

// Store implements picker.SessionStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ picker.SessionStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every :memory: connection is a separate database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		zone TEXT NOT NULL,
		start_ms INTEGER NOT NULL,
		end_ms INTEGER NOT NULL,
		open_at_ms INTEGER NOT NULL,
		validator_json TEXT,
		selection_ms INTEGER,
		first_day_of_week INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SESSIONS
// =============================================================================

// Save inserts or replaces a session.
func (s *Store) Save(ctx context.Context, session picker.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var validatorJSON sql.NullString
	if session.Validator != nil {
		raw, err := json.Marshal(session.Validator)
		if err != nil {
			return fmt.Errorf("failed to encode validator: %w", err)
		}
		validatorJSON = sql.NullString{String: string(raw), Valid: true}
	}

	var selection sql.NullInt64
	if session.Selection != nil {
		selection = sql.NullInt64{Int64: int64(*session.Selection), Valid: true}
	}

	query := `
		INSERT INTO sessions
		(id, zone, start_ms, end_ms, open_at_ms, validator_json, selection_ms,
		 first_day_of_week, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			zone = excluded.zone,
			start_ms = excluded.start_ms,
			end_ms = excluded.end_ms,
			open_at_ms = excluded.open_at_ms,
			validator_json = excluded.validator_json,
			selection_ms = excluded.selection_ms,
			first_day_of_week = excluded.first_day_of_week,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		string(session.ID),
		session.Zone,
		int64(session.Start),
		int64(session.End),
		int64(session.OpenAt),
		validatorJSON,
		selection,
		session.FirstDayOfWeek,
		formatTime(session.CreatedAt),
		formatTime(session.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get returns a session by ID.
func (s *Store) Get(ctx context.Context, id picker.SessionID) (picker.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, zone, start_ms, end_ms, open_at_ms, validator_json, selection_ms,
		       first_day_of_week, created_at, updated_at
		FROM sessions
		WHERE id = ?
	`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return picker.Session{}, picker.ErrSessionNotFound
	}
	return session, err
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, id picker.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return picker.ErrSessionNotFound
	}
	return nil
}

// List returns all sessions ordered by creation time.
func (s *Store) List(ctx context.Context) ([]picker.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, zone, start_ms, end_ms, open_at_ms, validator_json, selection_ms,
		       first_day_of_week, created_at, updated_at
		FROM sessions
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []picker.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteIdle removes sessions not updated since cutoff.
func (s *Store) DeleteIdle(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE updated_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to delete idle sessions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete idle sessions: %w", err)
	}
	return int(n), nil
}

// =============================================================================
// HELPERS
// =============================================================================

// timeLayout is fixed-width so stored timestamps sort chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (picker.Session, error) {
	var (
		session              picker.Session
		id                   string
		start, end, openAt   int64
		validatorJSON        sql.NullString
		selection            sql.NullInt64
		createdAt, updatedAt string
	)

	err := row.Scan(&id, &session.Zone, &start, &end, &openAt, &validatorJSON, &selection,
		&session.FirstDayOfWeek, &createdAt, &updatedAt)
	if err != nil {
		return picker.Session{}, err
	}

	session.ID = picker.SessionID(id)
	session.Start = picker.Instant(start)
	session.End = picker.Instant(end)
	session.OpenAt = picker.Instant(openAt)

	if validatorJSON.Valid {
		var spec picker.ValidatorSpec
		if err := json.Unmarshal([]byte(validatorJSON.String), &spec); err != nil {
			return picker.Session{}, fmt.Errorf("invalid validator for session %s: %w", id, err)
		}
		session.Validator = &spec
	}
	if selection.Valid {
		sel := picker.Instant(selection.Int64)
		session.Selection = &sel
	}

	if session.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return picker.Session{}, fmt.Errorf("invalid created_at for session %s: %w", id, err)
	}
	if session.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return picker.Session{}, fmt.Errorf("invalid updated_at for session %s: %w", id, err)
	}
	return session, nil
}

package picker

import (
	"context"
	"time"
)

// =============================================================================
// SESSION STORE - Persistence interface for picker sessions
// =============================================================================

// SessionStore persists picker sessions.
//
// IMPLEMENTATIONS:
//   - picker/store/memory.go: in-memory, for tests and ephemeral servers
//   - store/sqlite/sqlite.go: SQLite
type SessionStore interface {
	// Save inserts or replaces a session.
	Save(ctx context.Context, s Session) error

	// Get returns ErrSessionNotFound when the session does not exist.
	Get(ctx context.Context, id SessionID) (Session, error)

	// Delete returns ErrSessionNotFound when the session does not exist.
	Delete(ctx context.Context, id SessionID) error

	// List returns all sessions ordered by creation time.
	List(ctx context.Context) ([]Session, error)

	// DeleteIdle removes sessions not updated since cutoff and returns how many.
	DeleteIdle(ctx context.Context, cutoff time.Time) (int, error)
}

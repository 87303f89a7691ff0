package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/datepicker-engine/picker"
	"github.com/warp/datepicker-engine/picker/store"
)

func seedSessions(t *testing.T, st picker.SessionStore, created ...time.Time) []picker.Session {
	t.Helper()
	sessions := make([]picker.Session, len(created))
	for i, at := range created {
		s, err := picker.NewSession(picker.SessionConfig{}, picker.FixedClock(at))
		require.NoError(t, err)
		require.NoError(t, st.Save(context.Background(), s))
		sessions[i] = s
	}
	return sessions
}

func TestSessionReaper_Reap(t *testing.T) {
	// GIVEN: One session idle for two days and one touched an hour ago
	st := store.NewMemory()
	now := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
	seeded := seedSessions(t, st, now.Add(-48*time.Hour), now.Add(-time.Hour))

	reaper := NewSessionReaper(st)
	reaper.Clock = picker.FixedClock(now)
	reaper.TTL = 24 * time.Hour

	// WHEN: The reaper runs
	removed := reaper.Reap(context.Background())

	// THEN: Only the idle session is gone
	assert.Equal(t, 1, removed)
	_, err := st.Get(context.Background(), seeded[0].ID)
	assert.ErrorIs(t, err, picker.ErrSessionNotFound)
	_, err = st.Get(context.Background(), seeded[1].ID)
	assert.NoError(t, err)
}

func TestSessionReaper_StartRunsImmediately(t *testing.T) {
	st := store.NewMemory()
	now := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
	seedSessions(t, st, now.Add(-48*time.Hour))

	reaper := NewSessionReaper(st)
	reaper.Clock = picker.FixedClock(now)
	reaper.Interval = time.Hour

	reaper.Start()
	defer reaper.Stop()

	assert.Eventually(t, func() bool {
		list, err := st.List(context.Background())
		return err == nil && len(list) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestSessionReaper_StopIsIdempotent(t *testing.T) {
	reaper := NewSessionReaper(store.NewMemory())
	reaper.Interval = time.Hour

	reaper.Stop()
	reaper.Start()
	reaper.Stop()
	reaper.Stop()

	// Restarting after a stop works.
	reaper.Start()
	reaper.Stop()
}

func TestSessionReaper_Disabled(t *testing.T) {
	st := store.NewMemory()
	now := time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)
	seedSessions(t, st, now.Add(-48*time.Hour))

	reaper := NewSessionReaper(st)
	reaper.Clock = picker.FixedClock(now)
	reaper.TTL = 0
	reaper.Start()
	reaper.Stop()

	list, err := st.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

/*
reaper.go - Idle session reaper

PURPOSE:
  Periodically deletes picker sessions that have not been touched for
  longer than the TTL, so abandoned pickers do not accumulate.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Runs once immediately on Start
  - A session's idle time is measured from its UpdatedAt

CONFIGURATION:
  - Interval: How often to check (default: 10 minutes)
  - TTL:      Idle time after which a session is removed (default: 24 hours)
  - Enabled:  Whether the reaper is active (default: true)

USAGE:
  reaper := NewSessionReaper(store)
  reaper.Start()
  // ... later
  reaper.Stop()

SEE ALSO:
  - picker/store.go: SessionStore.DeleteIdle
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/warp/datepicker-engine/picker"
)

// SessionReaper removes idle picker sessions.
type SessionReaper struct {
	Store    picker.SessionStore
	Clock    picker.Clock
	Interval time.Duration
	TTL      time.Duration
	Enabled  bool
	Logger   *slog.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSessionReaper creates a new reaper.
func NewSessionReaper(store picker.SessionStore) *SessionReaper {
	return &SessionReaper{
		Store:    store,
		Clock:    picker.RealClock{},
		Interval: 10 * time.Minute,
		TTL:      24 * time.Hour,
		Enabled:  true,
		Logger:   slog.Default(),
	}
}

// Start begins the reaper.
func (sr *SessionReaper) Start() {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if !sr.Enabled || sr.TTL <= 0 || sr.Interval <= 0 {
		sr.Logger.Info("reaper disabled", LogKeyComponent, CompReaper)
		return
	}
	if sr.ticker != nil {
		return
	}

	sr.ticker = time.NewTicker(sr.Interval)
	sr.stop = make(chan struct{})
	sr.wg.Add(1)

	go sr.run(sr.ticker.C, sr.stop)

	sr.Logger.Info("reaper started",
		LogKeyComponent, CompReaper,
		LogKeyInterval, sr.Interval,
		LogKeyTTL, sr.TTL,
	)
}

// Stop stops the reaper and waits for a running pass to finish.
func (sr *SessionReaper) Stop() {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	if sr.ticker != nil {
		sr.ticker.Stop()
		close(sr.stop)
		sr.wg.Wait()
		sr.ticker = nil
		sr.Logger.Info("reaper stopped", LogKeyComponent, CompReaper)
	}
}

func (sr *SessionReaper) run(tick <-chan time.Time, stop <-chan struct{}) {
	defer sr.wg.Done()

	// Run immediately on start
	sr.Reap(context.Background())

	for {
		select {
		case <-tick:
			sr.Reap(context.Background())
		case <-stop:
			return
		}
	}
}

// Reap deletes sessions idle for longer than TTL and returns how many.
func (sr *SessionReaper) Reap(ctx context.Context) int {
	cutoff := sr.Clock.Now().Add(-sr.TTL)

	removed, err := sr.Store.DeleteIdle(ctx, cutoff)
	if err != nil {
		sr.Logger.Error("reap failed", LogKeyComponent, CompReaper, LogKeyError, err)
		return 0
	}
	if removed > 0 {
		sr.Logger.Info("idle sessions removed", LogKeyComponent, CompReaper, LogKeyCount, removed)
	}
	return removed
}

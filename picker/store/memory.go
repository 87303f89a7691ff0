// Package store provides SessionStore implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/datepicker-engine/picker"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	sessions map[picker.SessionID]picker.Session
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[picker.SessionID]picker.Session),
	}
}

// Save inserts or replaces a session. The stored copy does not alias the caller's pointers.
func (m *Memory) Save(_ context.Context, s picker.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = clone(s)
	return nil
}

func (m *Memory) Get(_ context.Context, id picker.SessionID) (picker.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return picker.Session{}, picker.ErrSessionNotFound
	}
	return clone(s), nil
}

func (m *Memory) Delete(_ context.Context, id picker.SessionID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return picker.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *Memory) List(_ context.Context) ([]picker.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]picker.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, clone(s))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *Memory) DeleteIdle(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func clone(s picker.Session) picker.Session {
	if s.Selection != nil {
		sel := *s.Selection
		s.Selection = &sel
	}
	if s.Validator != nil {
		v := cloneSpec(*s.Validator)
		s.Validator = &v
	}
	return s
}

func cloneSpec(v picker.ValidatorSpec) picker.ValidatorSpec {
	v.Days = append([]int(nil), v.Days...)
	if v.Children != nil {
		children := make([]picker.ValidatorSpec, len(v.Children))
		for i, c := range v.Children {
			children[i] = cloneSpec(c)
		}
		v.Children = children
	}
	return v
}

var _ picker.SessionStore = (*Memory)(nil)

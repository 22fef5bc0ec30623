package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"floorplan-studio/internal/common/metrics"
	"floorplan-studio/internal/planner/generator"

	"github.com/google/uuid"
)

// ============================================================
// Session Manager
// ============================================================

var ErrSessionNotFound = errors.New("session not found")

// SessionManager hands out one Studio per page load.
type SessionManager struct {
	base    context.Context
	gen     generator.Generator
	metrics *metrics.Metrics
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Studio // session id -> studio
}

// NewSessionManager creates a registry whose studios run generations under
// base; cancelling base aborts them.
func NewSessionManager(base context.Context, gen generator.Generator, m *metrics.Metrics) *SessionManager {
	return &SessionManager{
		base:     base,
		gen:      gen,
		metrics:  m,
		now:      time.Now,
		sessions: make(map[string]*Studio),
	}
}

func (m *SessionManager) Create() *Studio {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := &Studio{
		ID:       uuid.NewString(),
		base:     m.base,
		gen:      m.gen,
		metrics:  m.metrics,
		now:      m.now,
		lastSeen: m.now(),
	}
	m.sessions[st.ID] = st
	m.metrics.SetSessions(len(m.sessions))
	return st
}

func (m *SessionManager) Get(id string) (*Studio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st, nil
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Generating counts studios with a generation in flight.
func (m *SessionManager) Generating() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, st := range m.sessions {
		if _, busy := st.idleSince(); busy {
			n++
		}
	}
	return n
}

// Sweep drops studios untouched for longer than maxIdle. Studios with a
// generation in flight are kept.
func (m *SessionManager) Sweep(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-maxIdle)
	removed := 0
	for id, st := range m.sessions {
		lastSeen, busy := st.idleSince()
		if busy || !lastSeen.Before(cutoff) {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	m.metrics.SetSessions(len(m.sessions))
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *SessionManager) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(maxIdle); n > 0 {
				log.Printf("[STUDIO] Swept %d idle sessions", n)
			}
		}
	}
}

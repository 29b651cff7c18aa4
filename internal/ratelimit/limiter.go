// Package ratelimit provides the per-IP submission limiter for RSVP intake.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter decides whether a keyed caller may proceed. Implementations record
// the attempt as part of the check.
type Limiter interface {
	Allow(key string) bool
}

type window struct {
	count int
	start time.Time
}

// Memory is a process-local Limiter backed by an expiring map. The window is
// fixed-origin per key: the first allowed attempt after expiry resets it
// fully. State is lost on restart, and when requests are served by multiple
// processes the limit is only approximate per process. Documented limitation,
// acceptable for a single wedding's RSVP form.
type Memory struct {
	mu      sync.Mutex
	limit   int
	ttl     time.Duration
	entries map[string]*window
	nowFunc func() time.Time
}

// NewMemory returns a Memory limiter allowing limit attempts per key within
// each ttl window.
func NewMemory(limit int, ttl time.Duration) *Memory {
	return &Memory{
		limit:   limit,
		ttl:     ttl,
		entries: map[string]*window{},
		nowFunc: time.Now,
	}
}

// Allow records an attempt for key and reports whether it is within the
// limit.
func (m *Memory) Allow(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.nowFunc()
	w, ok := m.entries[key]
	if !ok || now.Sub(w.start) >= m.ttl {
		m.entries[key] = &window{count: 1, start: now}
		return true
	}
	if w.count >= m.limit {
		return false
	}
	w.count++
	return true
}

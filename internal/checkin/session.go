package checkin

import (
	"sync"
	"time"
)

// SessionState is the continuous-scanning loop state.
type SessionState int

const (
	// Idle: no payload captured, decode events are accepted.
	Idle SessionState = iota
	// Resolving: a payload is captured and its check-in is in flight.
	Resolving
	// Resolved: a result arrived; terminal until a manual reset.
	Resolved
)

// DefaultResolveTimeout bounds how long a session stays in Resolving. A
// check-in call that never returns would otherwise wedge the desk; after the
// timeout the session reverts to Idle and the next frame is accepted again.
const DefaultResolveTimeout = 10 * time.Second

// Session serializes decode events from a continuous scanner. Each captured
// payload is handled to completion before another is accepted; duplicate
// decode events while Resolving or Resolved are ignored.
type Session struct {
	mu       sync.Mutex
	state    SessionState
	payload  string
	deadline time.Time
	timeout  time.Duration
	nowFunc  func() time.Time
}

// NewSession returns an Idle session with the given resolve timeout; pass 0
// for DefaultResolveTimeout.
func NewSession(timeout time.Duration) *Session {
	if timeout <= 0 {
		timeout = DefaultResolveTimeout
	}
	return &Session{
		timeout: timeout,
		nowFunc: time.Now,
	}
}

// Capture records a decode event. It returns true when the payload was
// accepted and the caller should resolve it; false when the session is busy
// or the payload is the one already captured.
func (s *Session) Capture(rawPayload string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()
	if s.state != Idle {
		return false
	}
	s.state = Resolving
	s.payload = rawPayload
	s.deadline = s.nowFunc().Add(s.timeout)
	return true
}

// Complete moves Resolving -> Resolved once the check-in call returned. A
// completion arriving after the timeout already reverted the session is
// dropped.
func (s *Session) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()
	if s.state == Resolving {
		s.state = Resolved
	}
}

// Reset returns the session to Idle (the "scan next" action).
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Idle
	s.payload = ""
	s.deadline = time.Time{}
}

// State reports the current state, applying the resolve timeout first.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()
	return s.state
}

// Payload returns the last captured raw payload.
func (s *Session) Payload() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payload
}

// expireLocked reverts a timed-out Resolving session to Idle. Resolved never
// expires; it waits for the manual reset.
func (s *Session) expireLocked() {
	if s.state == Resolving && s.nowFunc().After(s.deadline) {
		s.state = Idle
		s.payload = ""
		s.deadline = time.Time{}
	}
}

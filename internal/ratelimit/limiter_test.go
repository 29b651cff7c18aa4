package ratelimit

import (
	"testing"
	"time"
)

func TestAllow_SixthAttemptDenied(t *testing.T) {
	now := time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)
	l := NewMemory(5, time.Hour)
	l.nowFunc = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		if !l.Allow("203.0.113.7") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("203.0.113.7") {
		t.Fatal("6th attempt within the window should be denied")
	}
}

func TestAllow_WindowResetsAfterExpiry(t *testing.T) {
	now := time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)
	l := NewMemory(5, time.Hour)
	l.nowFunc = func() time.Time { return now }

	for i := 0; i < 6; i++ {
		l.Allow("203.0.113.7")
	}

	// first attempt after expiry resets the count to 1
	now = now.Add(time.Hour)
	if !l.Allow("203.0.113.7") {
		t.Fatal("first attempt after window expiry should be allowed")
	}
	for i := 0; i < 4; i++ {
		if !l.Allow("203.0.113.7") {
			t.Fatalf("attempt %d of the fresh window should be allowed", i+2)
		}
	}
	if l.Allow("203.0.113.7") {
		t.Fatal("fresh window should also cap at the limit")
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l := NewMemory(1, time.Hour)
	if !l.Allow("a") {
		t.Fatal("first key should be allowed")
	}
	if !l.Allow("b") {
		t.Fatal("second key should be unaffected by the first")
	}
	if l.Allow("a") {
		t.Fatal("first key should now be limited")
	}
}

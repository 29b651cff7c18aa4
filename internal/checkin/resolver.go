package checkin

import (
	"context"
	"errors"
	"fmt"

	"github.com/uduakobong/go-wedding-rsvp/internal/attendees"
)

// Outcome classifies a check-in resolution.
type Outcome string

const (
	// OutcomeSuccess: the attendee transitioned to checked_in.
	OutcomeSuccess Outcome = "success"
	// OutcomeAlreadyCheckedIn: the record was already terminal; no mutation.
	OutcomeAlreadyCheckedIn Outcome = "already_checked_in"
	// OutcomeNotFound: no attendee matches the id.
	OutcomeNotFound Outcome = "not_found"
)

// Result carries the outcome and, when a record was found, the attendee as it
// existed before any transition. Name and email shown at the desk come from
// this pre-transition snapshot; both are immutable fields.
type Result struct {
	Outcome  Outcome
	Attendee *attendees.Attendee
}

// AttendeeCheckIner is the slice of the attendee store the resolver needs.
type AttendeeCheckIner interface {
	CheckIn(ctx context.Context, id string) (*attendees.Attendee, error)
}

// Resolver turns scanned payloads or raw ids into status transitions.
type Resolver struct {
	store AttendeeCheckIner
}

// NewResolver returns a Resolver over the attendee store.
func NewResolver(store AttendeeCheckIner) *Resolver {
	return &Resolver{store: store}
}

// Resolve parses the payload and applies the check-in. Already-checked-in and
// not-found are reported as outcomes, not errors; only store faults surface
// as errors.
func (r *Resolver) Resolve(ctx context.Context, rawPayload string) (Result, error) {
	id := ParsePayload(rawPayload)
	if id == "" {
		return Result{Outcome: OutcomeNotFound}, nil
	}

	att, err := r.store.CheckIn(ctx, id)
	switch {
	case errors.Is(err, attendees.ErrNotFound):
		return Result{Outcome: OutcomeNotFound}, nil
	case errors.Is(err, attendees.ErrAlreadyCheckedIn):
		return Result{Outcome: OutcomeAlreadyCheckedIn, Attendee: att}, nil
	case err != nil:
		return Result{}, fmt.Errorf("check in %s: %w", id, err)
	}
	return Result{Outcome: OutcomeSuccess, Attendee: att}, nil
}

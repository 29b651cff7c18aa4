package attendees

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestStore(mock *mockDynamo) *Store {
	s := NewStore(mock, "attendees")
	base := time.Date(2025, 11, 15, 14, 0, 0, 0, time.UTC)
	n := 0
	s.nowFunc = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return s
}

func TestCreate_NewAttendeeIsPending(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)

	att, err := store.Create(context.Background(), "Ada", "ada@example.com", "555-0100", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att.ID == "" {
		t.Fatal("expected generated id")
	}
	if att.Status != StatusPending {
		t.Fatalf("expected status pending, got %s", att.Status)
	}
	if att.QRCodeData != "" {
		t.Fatalf("expected qr_code_data unset, got %q", att.QRCodeData)
	}
	if att.CreatedAt.IsZero() {
		t.Fatal("expected created_at set")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)

	if _, err := store.Create(context.Background(), "Ada", "ada@example.com", "", false); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	// same email, different name/phone: still a duplicate
	_, err := store.Create(context.Background(), "Someone Else", "ada@example.com", "555-0199", true)
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)

	att, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att != nil {
		t.Fatalf("expected nil attendee, got %+v", att)
	}
}

func TestCheckIn_TransitionsOnce(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)
	ctx := context.Background()

	created, err := store.Create(ctx, "Ada", "ada@example.com", "", false)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	before, err := store.CheckIn(ctx, created.ID)
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	// record returned is the pre-transition snapshot
	if before.Status != StatusPending {
		t.Fatalf("expected pre-transition status pending, got %s", before.Status)
	}

	after, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if after.Status != StatusCheckedIn {
		t.Fatalf("expected checked_in, got %s", after.Status)
	}

	// second check-in: soft outcome, no further mutation
	updatesBefore := mock.updateCalls
	again, err := store.CheckIn(ctx, created.ID)
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
	if again == nil || again.Name != "Ada" {
		t.Fatalf("expected existing record with original data, got %+v", again)
	}
	if mock.updateCalls != updatesBefore {
		t.Fatalf("expected no update calls on re-check-in, got %d extra", mock.updateCalls-updatesBefore)
	}
}

func TestCheckIn_NotFound(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)

	_, err := store.CheckIn(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if mock.updateCalls != 0 {
		t.Fatalf("expected no mutations, got %d update calls", mock.updateCalls)
	}
}

func TestUpdateStatus_AcceptFlagsDispatch(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)
	ctx := context.Background()

	created, err := store.Create(ctx, "Ada", "ada@example.com", "", false)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := store.UpdateStatus(ctx, created.ID, StatusAccepted, true); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	att, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if att.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", att.Status)
	}
	if !att.DispatchPending {
		t.Fatal("expected dispatch_pending set")
	}
}

func TestUpdateStatus_ReAcceptAllowed(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)
	ctx := context.Background()

	created, _ := store.Create(ctx, "Ada", "ada@example.com", "", false)
	if err := store.UpdateStatus(ctx, created.ID, StatusAccepted, true); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}
	// admins can correct a decision or re-trigger the invite
	if err := store.UpdateStatus(ctx, created.ID, StatusAccepted, true); err != nil {
		t.Fatalf("re-accept failed: %v", err)
	}
	if err := store.UpdateStatus(ctx, created.ID, StatusRejected, false); err != nil {
		t.Fatalf("accept -> rejected failed: %v", err)
	}
}

func TestUpdateStatus_CheckedInIsTerminal(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)
	ctx := context.Background()

	created, _ := store.Create(ctx, "Ada", "ada@example.com", "", false)
	if _, err := store.CheckIn(ctx, created.ID); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	err := store.UpdateStatus(ctx, created.ID, StatusRejected, false)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)

	err := store.UpdateStatus(context.Background(), "missing", StatusAccepted, true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_SortedNewestFirstAndFiltered(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)
	ctx := context.Background()

	first, _ := store.Create(ctx, "Ada", "ada@example.com", "", false)
	second, _ := store.Create(ctx, "Grace", "grace@example.com", "", false)
	if err := store.UpdateStatus(ctx, second.ID, StatusAccepted, false); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 attendees, got %d", len(all))
	}
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatal("expected newest-first ordering")
	}

	accepted, err := store.List(ctx, StatusAccepted)
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(accepted) != 1 || accepted[0].ID != second.ID {
		t.Fatalf("expected only the accepted attendee, got %d", len(accepted))
	}
}

func TestSearch_MatchesNameOrEmail(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)
	ctx := context.Background()

	store.Create(ctx, "Ada Lovelace", "ada@example.com", "", false)
	store.Create(ctx, "Grace Hopper", "grace@navy.mil", "", false)

	byName, err := store.Search(ctx, "LOVELACE")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Ada Lovelace" {
		t.Fatalf("expected Ada by name, got %+v", byName)
	}

	byEmail, err := store.Search(ctx, "navy.mil")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byEmail) != 1 || byEmail[0].Name != "Grace Hopper" {
		t.Fatalf("expected Grace by email, got %+v", byEmail)
	}

	empty, err := store.Search(ctx, "  ")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no results for blank query, got %d", len(empty))
	}
}

func TestSetQRCodeData_ClearsDispatchFlag(t *testing.T) {
	mock := newMockDynamo()
	store := newTestStore(mock)
	ctx := context.Background()

	created, _ := store.Create(ctx, "Ada", "ada@example.com", "", false)
	if err := store.UpdateStatus(ctx, created.ID, StatusAccepted, true); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	url := "https://cdn.example.com/qr/" + created.ID + ".png"
	if err := store.SetQRCodeData(ctx, created.ID, url); err != nil {
		t.Fatalf("set qr code data failed: %v", err)
	}

	att, _ := store.Get(ctx, created.ID)
	if att.QRCodeData != url {
		t.Fatalf("expected qr_code_data %q, got %q", url, att.QRCodeData)
	}
	if att.DispatchPending {
		t.Fatal("expected dispatch_pending cleared")
	}

	if err := store.SetQRCodeData(ctx, "missing", url); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLogStore_Append(t *testing.T) {
	mock := newMockDynamo()
	logs := NewLogStore(mock, "rsvp_logs")

	if err := logs.Append(context.Background(), "ada@example.com", "Ada", "203.0.113.7"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if len(mock.table("rsvp_logs")) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(mock.table("rsvp_logs")))
	}
}

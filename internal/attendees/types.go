package attendees

import "time"

// Attendee statuses
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCheckedIn = "checked_in"
)

// Attendee represents the item stored in the attendees DynamoDB table.
type Attendee struct {
	ID              string    `dynamodbav:"id" json:"id"` // PK
	Name            string    `dynamodbav:"name" json:"name"`
	Email           string    `dynamodbav:"email" json:"email"` // unique via pre-insert lookup, not a hard constraint
	Phone           string    `dynamodbav:"phone,omitempty" json:"phone,omitempty"`
	PlusOne         bool      `dynamodbav:"plus_one" json:"plus_one"`
	Status          string    `dynamodbav:"status" json:"status"` // pending | accepted | rejected | checked_in
	QRCodeData      string    `dynamodbav:"qr_code_data,omitempty" json:"qr_code_data,omitempty"`
	DispatchPending bool      `dynamodbav:"dispatch_pending,omitempty" json:"dispatch_pending,omitempty"`
	CreatedAt       time.Time `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt       time.Time `dynamodbav:"updated_at" json:"updated_at"`
}

// LogEntry is an append-only record of one RSVP submission.
type LogEntry struct {
	LogID     string    `dynamodbav:"log_id"` // PK
	Email     string    `dynamodbav:"email"`
	Name      string    `dynamodbav:"name"`
	IPAddress string    `dynamodbav:"ip_address"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

// ValidStatus reports whether s is one of the four lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCheckedIn:
		return true
	}
	return false
}

// CanTransition is the admin-facing transition table. Re-deciding an already
// decided record is allowed (an admin can correct a mistaken accept/reject and
// re-trigger the invite); checked_in is terminal.
func CanTransition(from, to string) bool {
	if from == StatusCheckedIn {
		return false
	}
	switch to {
	case StatusAccepted, StatusRejected:
		return true
	case StatusCheckedIn:
		// check-in goes through the scanner path, not the admin action
		return false
	}
	return false
}

package validation

// RSVPRequest is the payload for POST /rsvp.
type RSVPRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email_shape"` // local@domain.tld shape
	Phone   string `json:"phone,omitempty"`                 // optional
	PlusOne bool   `json:"plus_one,omitempty"`
}

// SendInviteRequest is the payload for POST /send-invite. The dashboard sends
// the attendee snapshot it already holds so the dispatch needs no extra read.
type SendInviteRequest struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email_shape"`
}

// StatusUpdateRequest is the payload for POST /attendees/:id/status. Only the
// admin decision targets are accepted; check-in goes through the scanner.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// CheckInRequest is the payload for POST /check-in. Payload is either a
// scanned QR string or a raw attendee id from the manual search.
type CheckInRequest struct {
	Payload string `json:"payload" validate:"required"`
}

// Package checkin resolves scanned or manually entered identifiers into
// checked_in transitions and models the scanning session.
package checkin

import "strings"

// PayloadPrefix tags QR payloads so the scanner can tell invitation codes
// from arbitrary QR content.
const PayloadPrefix = "wedding-attendee:"

// Payload builds the QR payload string for an attendee id.
func Payload(id string) string {
	return PayloadPrefix + id
}

// ParsePayload extracts the attendee id from a scanned payload. Input without
// the prefix is treated as a raw id (the manual path).
func ParsePayload(raw string) string {
	raw = strings.TrimSpace(raw)
	return strings.TrimPrefix(raw, PayloadPrefix)
}

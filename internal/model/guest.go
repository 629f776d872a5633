package model

import "strings"

// IdentityKey derives the directory's primary lookup key from a guest's
// name: trimmed and lowercased.  Substring matching during check-in runs
// against this normalized form.
func IdentityKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Guest is one row of the guest directory.  The Name field is the identity
// key: the display name lowercased and trimmed.  It is the primary key and
// the value substring matching runs against.  Seat is unique across the
// whole directory.
//
// Fields:
//
//	Name        – normalized identity key (primary key).
//	DisplayName – original-case name shown in the UI and exports.
//	Seat        – seat code, one letter A–L plus one digit 1–9.
//	SeatEN      – human-readable seat label, e.g. "Table B3".
type Guest struct {
	Name        string `json:"name"`         // guests.name
	DisplayName string `json:"display_name"` // guests.display_name
	Seat        string `json:"seat"`         // guests.seat
	SeatEN      string `json:"seat_en"`      // guests.seat_en
}

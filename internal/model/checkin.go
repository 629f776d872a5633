package model

// Checkin is one immutable record of a check-in attempt, matched or not.
// Rows are only ever inserted; nothing in the application updates or
// deletes them.  Seat and SeatEN are nil when the submitted name matched
// no guest.
type Checkin struct {
	ID        int64   `json:"id"`         // checkins.id, assigned at insert
	Name      string  `json:"name"`       // canonical display name, or the raw input when unmatched
	Seat      *string `json:"seat"`       // checkins.seat (nil = no match)
	SeatEN    *string `json:"seat_en"`    // checkins.seat_en (nil = no match)
	UserAgent string  `json:"user_agent"` // opaque request metadata
	IP        string  `json:"ip"`         // opaque request metadata
	CreatedAt string  `json:"created_at"` // "2006-01-02 15:04:05" in UTC+7
}

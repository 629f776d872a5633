// Package queue defines message payloads exchanged over the message broker.
package queue

// CheckinRecordedEvent is published after every check-in attempt is written
// to the log.  It carries enough information for downstream consumers to
// mirror the log or trigger follow-ups without querying the primary store.
// Seat and SeatEN are null for unmatched attempts.
type CheckinRecordedEvent struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Seat       *string `json:"seat"`
	SeatEN     *string `json:"seat_en"`
	Matched    bool    `json:"matched"`
	Already    bool    `json:"already"`
	UserAgent  string  `json:"user_agent"`
	IP         string  `json:"ip"`
	OccurredAt string  `json:"occurred_at"`
}

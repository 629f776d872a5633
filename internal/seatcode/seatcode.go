// Package seatcode validates and normalizes seat codes.  A valid code is
// exactly one letter A–L followed by one digit 1–9, matching the physical
// table layout of the venue.  The package is pure and holds no state.
package seatcode

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidSeatCode is returned when a code does not match the A1..L9
// pattern after normalization.
var ErrInvalidSeatCode = errors.New("invalid seat code")

var pattern = regexp.MustCompile(`^[A-L][1-9]$`)

// Normalize trims and uppercases a seat code and validates it against the
// venue pattern.  It returns the normalized code, or ErrInvalidSeatCode.
func Normalize(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if !pattern.MatchString(c) {
		return "", ErrInvalidSeatCode
	}
	return c, nil
}

// Label derives the default human-readable label for a normalized seat
// code ("Table B3").  Admin callers may override it with an explicit label.
func Label(code string) string {
	return "Table " + code
}

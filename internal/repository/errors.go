// Package repository defines error types that are reused across the guest
// and check-in repositories.  These sentinel values allow higher layers
// such as handlers to distinguish between failure scenarios: a duplicate
// seat maps to HTTP 409 while a missing guest maps to HTTP 404.  Raw
// driver errors never cross the repository boundary for constraint
// violations; they are translated here so a race between a pre-check and
// an insert surfaces as the same duplicate error as the pre-check itself.
package repository

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// ErrGuestNotFound is returned when a guest lookup yields no rows.
var ErrGuestNotFound = errors.New("guest not found")

// ErrDuplicateName is returned when a create or rename collides with the
// identity key of a different guest.
var ErrDuplicateName = errors.New("guest name already exists")

// ErrDuplicateSeat is returned when a create or update targets a seat
// already assigned to a different guest.
var ErrDuplicateSeat = errors.New("seat already assigned")

// ErrEmptyName is returned when a guest name normalizes to the empty
// string; identity keys must never be empty.
var ErrEmptyName = errors.New("guest name must not be empty")

// mapConstraint translates SQLite unique-constraint violations on the
// guests table into the matching sentinel error.  Any other error is
// returned unchanged.
func mapConstraint(err error) error {
	var serr sqlite3.Error
	if !errors.As(err, &serr) {
		return err
	}
	if serr.ExtendedCode != sqlite3.ErrConstraintUnique &&
		serr.ExtendedCode != sqlite3.ErrConstraintPrimaryKey {
		return err
	}
	msg := serr.Error()
	switch {
	case strings.Contains(msg, "guests.seat"):
		return ErrDuplicateSeat
	case strings.Contains(msg, "guests.name"):
		return ErrDuplicateName
	}
	return err
}

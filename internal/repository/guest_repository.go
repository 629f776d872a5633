package repository // repository defines data access for the guest directory

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons
	"strings"      // strings trims display names

	"github.com/iliyamo/event-checkin/internal/model" // model defines the Guest record
)

// GuestRepo provides methods to work with the guest directory.  It is the
// sole owner of the guests table; no other component mutates it.
type GuestRepo struct {
	db *sql.DB
}

// NewGuestRepo constructs a GuestRepo with the given DB handle.
func NewGuestRepo(db *sql.DB) *GuestRepo {
	return &GuestRepo{db: db}
}

// Create inserts a guest derived from its display name.  The identity key
// is the normalized display name; SeatEN falls back to the default label
// when empty.  Seat must already be normalized by the caller.  Duplicate
// keys and seats are rejected by the table's unique constraints and
// surfaced as ErrDuplicateName / ErrDuplicateSeat.
func (r *GuestRepo) Create(ctx context.Context, displayName, seat, seatEN string) (*model.Guest, error) {
	g := &model.Guest{
		Name:        model.IdentityKey(displayName),
		DisplayName: strings.TrimSpace(displayName),
		Seat:        seat,
		SeatEN:      seatEN,
	}
	if g.Name == "" {
		return nil, ErrEmptyName
	}
	if g.DisplayName == "" {
		g.DisplayName = g.Name
	}
	const q = `INSERT INTO guests (name, display_name, seat, seat_en) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, g.Name, g.DisplayName, g.Seat, g.SeatEN); err != nil {
		return nil, mapConstraint(err)
	}
	return g, nil
}

// Update atomically rewrites one guest record, including its identity key
// (rename-in-place).  Returns ErrGuestNotFound when key does not exist, and
// ErrDuplicateName / ErrDuplicateSeat when the new values collide with a
// different record; colliding with the record's own current values is fine.
func (r *GuestRepo) Update(ctx context.Context, key, newDisplayName, newSeat, newSeatEN string) (*model.Guest, error) {
	g := &model.Guest{
		Name:        model.IdentityKey(newDisplayName),
		DisplayName: strings.TrimSpace(newDisplayName),
		Seat:        newSeat,
		SeatEN:      newSeatEN,
	}
	if g.Name == "" {
		return nil, ErrEmptyName
	}
	if g.DisplayName == "" {
		g.DisplayName = g.Name
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const q = `UPDATE guests SET name = ?, display_name = ?, seat = ?, seat_en = ? WHERE name = ?`
	res, err := tx.ExecContext(ctx, q, g.Name, g.DisplayName, g.Seat, g.SeatEN, key)
	if err != nil {
		return nil, mapConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrGuestNotFound
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes a guest by identity key.  Deleting a missing key is a
// no-op, not an error.
func (r *GuestRepo) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM guests WHERE name = ?`
	_, err := r.db.ExecContext(ctx, q, key)
	return err
}

// FindBySubstring returns the first guest whose identity key contains the
// normalized query as a substring.  Matches are scanned in ascending key
// order so that the winner between overlapping names is deterministic.
// An empty query matches nothing.
func (r *GuestRepo) FindBySubstring(ctx context.Context, query string) (*model.Guest, error) {
	needle := model.IdentityKey(query)
	if needle == "" {
		return nil, ErrGuestNotFound
	}
	const q = `SELECT name, display_name, seat, seat_en FROM guests
	           WHERE instr(name, ?) > 0
	           ORDER BY name
	           LIMIT 1`
	var g model.Guest
	err := r.db.QueryRowContext(ctx, q, needle).
		Scan(&g.Name, &g.DisplayName, &g.Seat, &g.SeatEN)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &g, nil
}

// ListAll retrieves every guest ordered by seat then display name, the
// order the admin UI presents.
func (r *GuestRepo) ListAll(ctx context.Context) ([]model.Guest, error) {
	const q = `SELECT name, display_name, seat, seat_en FROM guests
	           ORDER BY seat, display_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Guest
	for rows.Next() {
		var g model.Guest
		if err := rows.Scan(&g.Name, &g.DisplayName, &g.Seat, &g.SeatEN); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the number of guest records.  The startup seed import only
// runs against an empty directory.
func (r *GuestRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM guests`).Scan(&n)
	return n, err
}

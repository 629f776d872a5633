package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/event-checkin/internal/model"
)

// reportTZ is the fixed reporting timezone for check-in timestamps
// (UTC+7, the venue's local time).
var reportTZ = time.FixedZone("UTC+7", 7*60*60)

// stampLayout is the timestamp format stored in checkins.created_at.  It
// sorts lexicographically, which the newest-first listing relies on.
const stampLayout = "2006-01-02 15:04:05"

// NowStamp formats the current time in the reporting timezone.
func NowStamp() string {
	return time.Now().In(reportTZ).Format(stampLayout)
}

// CheckinRepo provides append and read access to the check-in log.  The
// log is append-only: there are deliberately no update or delete methods.
type CheckinRepo struct {
	db *sql.DB
}

// NewCheckinRepo constructs a CheckinRepo bound to the given database.
func NewCheckinRepo(db *sql.DB) *CheckinRepo {
	return &CheckinRepo{db: db}
}

// Insert appends one check-in event and populates its ID.  CreatedAt is
// stamped here when the caller left it empty.
func (r *CheckinRepo) Insert(ctx context.Context, c *model.Checkin) error {
	if c.CreatedAt == "" {
		c.CreatedAt = NowStamp()
	}
	const q = `INSERT INTO checkins (name, seat, seat_en, user_agent, ip, created_at)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Seat, c.SeatEN, c.UserAgent, c.IP, c.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// SeenBefore reports whether a prior event exists for this canonical name
// and seat.  It drives the "already checked in" flag; a concurrent
// identical submission may race this read, which at worst yields an extra
// first-time report, never lost data.
func (r *CheckinRepo) SeenBefore(ctx context.Context, name, seat string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM checkins WHERE name = ? AND seat = ?)`
	var seen bool
	if err := r.db.QueryRowContext(ctx, q, name, seat).Scan(&seen); err != nil {
		return false, err
	}
	return seen, nil
}

// ListAll retrieves the full log, most recent first.  Ties on the
// second-resolution timestamp are broken by the monotonically increasing id.
func (r *CheckinRepo) ListAll(ctx context.Context) ([]model.Checkin, error) {
	const q = `SELECT id, name, seat, seat_en, user_agent, ip, created_at
	           FROM checkins
	           ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Checkin
	for rows.Next() {
		var c model.Checkin
		var ua, ip sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Seat, &c.SeatEN, &ua, &ip, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.UserAgent = ua.String
		c.IP = ip.String
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

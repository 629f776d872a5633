package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if necessary) the SQLite store at path and verifies
// the connection.  The parent directory is created when missing so the
// default data directory works on first run.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	// _busy_timeout lets concurrent request handlers wait for the writer
	// instead of failing with SQLITE_BUSY; _foreign_keys is on for hygiene.
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer at a time; a single connection avoids
	// lock contention between pooled connections on the same file.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Init creates the guests and checkins tables when they do not exist yet.
// Uniqueness of guest identity keys and seats is enforced here, at the
// storage layer, so racing writers cannot both succeed.
func Init(ctx context.Context, db *sql.DB) error {
	const guests = `CREATE TABLE IF NOT EXISTS guests (
		name         TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		seat         TEXT NOT NULL UNIQUE,
		seat_en      TEXT NOT NULL
	)`
	const checkins = `CREATE TABLE IF NOT EXISTS checkins (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		seat       TEXT,
		seat_en    TEXT,
		user_agent TEXT,
		ip         TEXT,
		created_at TEXT NOT NULL
	)`
	if _, err := db.ExecContext(ctx, guests); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, checkins); err != nil {
		return err
	}
	return nil
}

// Package guestlist reads and writes the external guest list file.  The
// file is a plain CSV with columns name,seat,seat_en.  It serves two
// purposes: first-run seed data for an empty directory, and an export
// target rewritten after every guest mutation so the last-known state
// survives a store reset.  The SQLite store stays authoritative at
// runtime; nothing ever reads the file while the server is serving.
package guestlist

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iliyamo/event-checkin/internal/repository"
	"github.com/iliyamo/event-checkin/internal/seatcode"
)

// Import loads guests from the CSV file at path into the directory.  A
// missing file is not an error (there is simply nothing to seed).  Rows
// with an invalid seat code or a duplicate of an earlier row are skipped
// with their error reported in the returned slice, so one bad line never
// blocks the rest of the list.
func Import(ctx context.Context, repo *repository.GuestRepo, path string) (int, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil, nil
		}
		return 0, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate short rows; seat_en is optional

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return 0, nil, nil
		}
		return 0, nil, err
	}
	col := columnIndex(header)

	var imported int
	var skipped []error
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, err
		}
		name := field(rec, col.name)
		seat, err := seatcode.Normalize(field(rec, col.seat))
		if err != nil {
			skipped = append(skipped, fmt.Errorf("line %d (%s): %w", line, name, err))
			continue
		}
		seatEN := field(rec, col.seatEN)
		if seatEN == "" {
			seatEN = seatcode.Label(seat)
		}
		if _, err := repo.Create(ctx, name, seat, seatEN); err != nil {
			skipped = append(skipped, fmt.Errorf("line %d (%s): %w", line, name, err))
			continue
		}
		imported++
	}
	return imported, skipped, nil
}

// Export writes the full directory to the CSV file at path.  The write
// goes to a temp file first and is renamed into place so a crash mid-write
// never truncates the previous snapshot.
func Export(ctx context.Context, repo *repository.GuestRepo, path string) error {
	guests, err := repo.ListAll(ctx)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".guests-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{"name", "seat", "seat_en"}); err != nil {
		tmp.Close()
		return err
	}
	for _, g := range guests {
		if err := w.Write([]string{g.DisplayName, g.Seat, g.SeatEN}); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// columns holds the index of each known header in the CSV file, or -1.
type columns struct {
	name   int
	seat   int
	seatEN int
}

// columnIndex resolves header names case-insensitively so hand-edited
// files with "Name" or "SEAT" headers still import.
func columnIndex(header []string) columns {
	col := columns{name: -1, seat: -1, seatEN: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			col.name = i
		case "seat":
			col.seat = i
		case "seat_en":
			col.seatEN = i
		}
	}
	return col
}

// field returns the trimmed value at index i, or "" when the column is
// absent from this row.
func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

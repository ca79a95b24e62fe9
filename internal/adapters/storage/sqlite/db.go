package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"medication-tracker/internal/domain/medications"
)

const memoryPath = ":memory:"

// Open abre (o crea) la base local y aplica el schema.
// Con ":memory:" la base vive mientras viva el *sql.DB.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "medications.db"
	}
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Una sola conexión: serializa escritores y mantiene viva la base en memoria.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		`PRAGMA foreign_keys = ON`,
		`PRAGMA busy_timeout = 5000`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS medications (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		dose        TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT '#4CAF50',
		photo_url   TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		start_date  TEXT,
		end_date    TEXT,
		active      INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		seq         INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS time_slots (
		id            TEXT PRIMARY KEY,
		medication_id TEXT NOT NULL REFERENCES medications(id),
		time_of_day   TEXT NOT NULL,
		recurrence    TEXT NOT NULL DEFAULT 'daily',
		with_food     INTEGER NOT NULL DEFAULT 0,
		active        INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_slots_medication ON time_slots(medication_id)`,
	`CREATE TABLE IF NOT EXISTS doses (
		id            TEXT PRIMARY KEY,
		medication_id TEXT NOT NULL REFERENCES medications(id),
		time_slot_id  TEXT NOT NULL REFERENCES time_slots(id),
		day           TEXT NOT NULL,
		scheduled_at  TEXT NOT NULL,
		taken_at      TEXT,
		state         TEXT NOT NULL DEFAULT 'pending',
		notes         TEXT NOT NULL DEFAULT '',
		UNIQUE (medication_id, time_slot_id, day)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_doses_day ON doses(day)`,
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return nil
}

// Los instantes se guardan como TEXT RFC3339Nano en UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatNullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.DateOnly), Valid: true}
}

func parseNullDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTimeOfDay(s string) medications.TimeOfDay {
	t, err := medications.ParseTimeOfDay(s)
	if err != nil {
		return medications.TimeOfDay{Hour: -1, Minute: -1}
	}
	return t
}

type scanner interface {
	Scan(dest ...any) error
}

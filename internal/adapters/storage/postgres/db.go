package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"medication-tracker/internal/domain/medications"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// defaults razonables para MVP (ajustable luego)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// schema: la unicidad (medication_id, time_slot_id, day) es la que garantiza
// una sola toma por horario y día aunque haya llamadas concurrentes.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS medications (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		dose        TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT '',
		photo_url   TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		start_date  DATE,
		end_date    DATE,
		active      BOOLEAN NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS time_slots (
		id            TEXT PRIMARY KEY,
		medication_id TEXT NOT NULL REFERENCES medications(id),
		time_of_day   TEXT NOT NULL,
		recurrence    TEXT NOT NULL DEFAULT 'daily',
		with_food     BOOLEAN NOT NULL DEFAULT FALSE,
		active        BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_time_slots_medication ON time_slots(medication_id)`,
	`CREATE TABLE IF NOT EXISTS doses (
		id            TEXT PRIMARY KEY,
		medication_id TEXT NOT NULL REFERENCES medications(id),
		time_slot_id  TEXT NOT NULL REFERENCES time_slots(id),
		day           TEXT NOT NULL,
		scheduled_at  TIMESTAMPTZ NOT NULL,
		taken_at      TIMESTAMPTZ,
		state         TEXT NOT NULL DEFAULT 'pending',
		notes         TEXT NOT NULL DEFAULT '',
		UNIQUE (medication_id, time_slot_id, day)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_doses_day ON doses(day)`,
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("postgres schema: %w", err)
		}
	}
	return nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// parseTimeOfDay no falla: un valor corrupto queda inválido y el materializador lo reporta.
func parseTimeOfDay(s string) medications.TimeOfDay {
	t, err := medications.ParseTimeOfDay(s)
	if err != nil {
		return medications.TimeOfDay{Hour: -1, Minute: -1}
	}
	return t
}

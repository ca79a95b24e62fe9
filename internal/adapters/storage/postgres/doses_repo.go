package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"medication-tracker/internal/domain/doses"
)

type DosesRepo struct {
	db *sql.DB
}

func NewDosesRepo(db *sql.DB) *DosesRepo {
	return &DosesRepo{db: db}
}

const doseColumns = `
	id, medication_id, time_slot_id,
	day, scheduled_at, taken_at,
	state, notes`

// CreateIfAbsent es un upsert sobre la clave única (medication_id, time_slot_id, day).
func (r *DosesRepo) CreateIfAbsent(ctx context.Context, d doses.Dose) (doses.Dose, bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO doses (`+doseColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (medication_id, time_slot_id, day) DO NOTHING
	`,
		d.ID,
		d.MedicationID,
		d.TimeSlotID,
		d.Day,
		d.ScheduledAt,
		toNullTime(d.TakenAt),
		string(d.State),
		d.Notes,
	)
	if err != nil {
		return doses.Dose{}, false, err
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return d, true, nil
	}

	existing, err := r.GetByKey(ctx, d.Key())
	if err != nil {
		return doses.Dose{}, false, err
	}
	return existing, false, nil
}

func (r *DosesRepo) GetByKey(ctx context.Context, key doses.Key) (doses.Dose, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+doseColumns+`
		FROM doses
		WHERE medication_id = $1 AND time_slot_id = $2 AND day = $3
	`, key.MedicationID, key.TimeSlotID, key.Day)

	d, err := scanDose(row)
	if errors.Is(err, sql.ErrNoRows) {
		return doses.Dose{}, doses.ErrNotFound
	}
	return d, err
}

func (r *DosesRepo) GetByID(ctx context.Context, id string) (doses.Dose, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return doses.Dose{}, doses.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+doseColumns+` FROM doses WHERE id = $1`, id)
	d, err := scanDose(row)
	if errors.Is(err, sql.ErrNoRows) {
		return doses.Dose{}, doses.ErrNotFound
	}
	return d, err
}

func (r *DosesRepo) ListByDayRange(ctx context.Context, from, to string) ([]doses.Dose, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+doseColumns+`
		FROM doses
		WHERE day >= $1 AND day <= $2
		ORDER BY scheduled_at ASC, id ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doses.Dose, 0)
	for rows.Next() {
		d, err := scanDose(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Transition usa el WHERE state = 'pending' como compare-and-set.
func (r *DosesRepo) Transition(ctx context.Context, id string, to doses.State, takenAt *time.Time) (doses.Dose, bool, error) {
	if err := doses.CheckTransition(to, takenAt); err != nil {
		return doses.Dose{}, false, err
	}
	at := sql.NullTime{}
	if to == doses.StateTaken {
		at = toNullTime(takenAt)
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE doses
		SET state = $2, taken_at = $3
		WHERE id = $1 AND state = 'pending'
		RETURNING `+doseColumns,
		id, string(to), at,
	)
	d, err := scanDose(row)
	if err == nil {
		return d, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return doses.Dose{}, false, err
	}

	// No se actualizó: o no existe o ya es terminal.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return doses.Dose{}, false, err
	}
	return current, false, nil
}

func scanDose(row scanner) (doses.Dose, error) {
	var d doses.Dose
	var takenAt sql.NullTime
	var state string
	if err := row.Scan(
		&d.ID,
		&d.MedicationID,
		&d.TimeSlotID,
		&d.Day,
		&d.ScheduledAt,
		&takenAt,
		&state,
		&d.Notes,
	); err != nil {
		return doses.Dose{}, err
	}
	d.TakenAt = fromNullTime(takenAt)
	d.State = doses.State(state)
	return d, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
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

func (r *DosesRepo) CreateIfAbsent(ctx context.Context, d doses.Dose) (doses.Dose, bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO doses (`+doseColumns+`)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT (medication_id, time_slot_id, day) DO NOTHING
	`,
		d.ID,
		d.MedicationID,
		d.TimeSlotID,
		d.Day,
		formatTime(d.ScheduledAt),
		formatNullTime(d.TakenAt),
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
		SELECT `+doseColumns+` FROM doses
		WHERE medication_id = ? AND time_slot_id = ? AND day = ?
	`, key.MedicationID, key.TimeSlotID, key.Day)

	d, err := scanDose(row)
	if errors.Is(err, sql.ErrNoRows) {
		return doses.Dose{}, doses.ErrNotFound
	}
	return d, err
}

func (r *DosesRepo) GetByID(ctx context.Context, id string) (doses.Dose, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+doseColumns+` FROM doses WHERE id = ?`, id)
	d, err := scanDose(row)
	if errors.Is(err, sql.ErrNoRows) {
		return doses.Dose{}, doses.ErrNotFound
	}
	return d, err
}

func (r *DosesRepo) ListByDayRange(ctx context.Context, from, to string) ([]doses.Dose, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+doseColumns+` FROM doses
		WHERE day >= ? AND day <= ?
		ORDER BY scheduled_at ASC, id ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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

// Transition: el UPDATE condicionado a state = 'pending' es el compare-and-set.
func (r *DosesRepo) Transition(ctx context.Context, id string, to doses.State, takenAt *time.Time) (doses.Dose, bool, error) {
	if err := doses.CheckTransition(to, takenAt); err != nil {
		return doses.Dose{}, false, err
	}
	at := sql.NullString{}
	if to == doses.StateTaken {
		at = formatNullTime(takenAt)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE doses SET state = ?, taken_at = ?
		WHERE id = ? AND state = 'pending'
	`, string(to), at, id)
	if err != nil {
		return doses.Dose{}, false, err
	}
	n, _ := res.RowsAffected()

	d, err := r.GetByID(ctx, id)
	if err != nil {
		return doses.Dose{}, false, err
	}
	return d, n == 1, nil
}

func scanDose(row scanner) (doses.Dose, error) {
	var (
		d           doses.Dose
		scheduledAt string
		takenAt     sql.NullString
		state       string
	)
	if err := row.Scan(
		&d.ID,
		&d.MedicationID,
		&d.TimeSlotID,
		&d.Day,
		&scheduledAt,
		&takenAt,
		&state,
		&d.Notes,
	); err != nil {
		return doses.Dose{}, err
	}

	var err error
	if d.ScheduledAt, err = parseTime(scheduledAt); err != nil {
		return doses.Dose{}, err
	}
	if d.TakenAt, err = parseNullTime(takenAt); err != nil {
		return doses.Dose{}, err
	}
	d.State = doses.State(state)
	return d, nil
}

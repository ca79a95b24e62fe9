package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"medication-tracker/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

const medicationColumns = `
	id, name, description, dose, color, photo_url, notes,
	start_date, end_date, active, created_at`

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication, slots []medications.TimeSlot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO medications (`+medicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		m.ID,
		m.Name,
		m.Description,
		m.Dose,
		m.Color,
		m.PhotoURL,
		m.Notes,
		toNullTime(m.StartDate),
		toNullTime(m.EndDate),
		m.Active,
		m.CreatedAt,
	); err != nil {
		return err
	}

	for _, s := range slots {
		if err := insertTimeSlot(ctx, tx, s); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET
			name = $2,
			description = $3,
			dose = $4,
			color = $5,
			photo_url = $6,
			notes = $7,
			start_date = $8,
			end_date = $9,
			active = $10
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Description,
		m.Dose,
		m.Color,
		m.PhotoURL,
		m.Notes,
		toNullTime(m.StartDate),
		toNullTime(m.EndDate),
		m.Active,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, medications.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+medicationColumns+` FROM medications WHERE id = $1`, id)
	m, err := scanMedication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, err
}

func (r *MedicationsRepo) List(ctx context.Context, filter medications.ListFilter) ([]medications.Medication, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + medicationColumns + ` FROM medications WHERE TRUE`)

	args := []any{}
	argN := 1

	if !filter.IncludeInactive {
		sb.WriteString(" AND active")
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}
	sb.WriteString(" ORDER BY created_at ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Deactivate desactiva medicamento y horarios en una sola transacción.
func (r *MedicationsRepo) Deactivate(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE medications SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return medications.ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `UPDATE time_slots SET active = FALSE WHERE medication_id = $1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *MedicationsRepo) CreateTimeSlot(ctx context.Context, s medications.TimeSlot) error {
	return insertTimeSlot(ctx, r.db, s)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTimeSlot(ctx context.Context, db execer, s medications.TimeSlot) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO time_slots (id, medication_id, time_of_day, recurrence, with_food, active)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		s.ID,
		s.MedicationID,
		s.TimeOfDay.String(),
		string(s.Recurrence),
		s.WithFood,
		s.Active,
	)
	return err
}

func (r *MedicationsRepo) UpdateTimeSlot(ctx context.Context, s medications.TimeSlot) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE time_slots
		SET time_of_day = $2, recurrence = $3, with_food = $4, active = $5
		WHERE id = $1
	`,
		s.ID,
		s.TimeOfDay.String(),
		string(s.Recurrence),
		s.WithFood,
		s.Active,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetTimeSlot(ctx context.Context, id string) (medications.TimeSlot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, medication_id, time_of_day, recurrence, with_food, active
		FROM time_slots
		WHERE id = $1
	`, id)
	s, err := scanTimeSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return medications.TimeSlot{}, medications.ErrNotFound
	}
	return s, err
}

func (r *MedicationsRepo) ListTimeSlots(ctx context.Context, medicationID string, includeInactive bool) ([]medications.TimeSlot, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT id, medication_id, time_of_day, recurrence, with_food, active
		FROM time_slots
		WHERE TRUE`)

	args := []any{}
	if medicationID != "" {
		sb.WriteString(" AND medication_id = $1")
		args = append(args, medicationID)
	}
	if !includeInactive {
		sb.WriteString(" AND active")
	}
	sb.WriteString(" ORDER BY time_of_day ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.TimeSlot, 0)
	for rows.Next() {
		s, err := scanTimeSlot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMedication(row scanner) (medications.Medication, error) {
	var m medications.Medication
	var start, end sql.NullTime
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Description,
		&m.Dose,
		&m.Color,
		&m.PhotoURL,
		&m.Notes,
		&start,
		&end,
		&m.Active,
		&m.CreatedAt,
	); err != nil {
		return medications.Medication{}, err
	}
	m.StartDate = fromNullTime(start)
	m.EndDate = fromNullTime(end)
	return m, nil
}

func scanTimeSlot(row scanner) (medications.TimeSlot, error) {
	var s medications.TimeSlot
	var tod, rec string
	if err := row.Scan(&s.ID, &s.MedicationID, &tod, &rec, &s.WithFood, &s.Active); err != nil {
		return medications.TimeSlot{}, err
	}
	s.TimeOfDay = parseTimeOfDay(tod)
	s.Recurrence = medications.Recurrence(rec)
	return s, nil
}

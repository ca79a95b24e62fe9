package sqlite

import (
	"context"
	"database/sql"
	"errors"
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

	// seq conserva el orden de alta aunque created_at coincida.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO medications (`+medicationColumns+`, seq)
		VALUES (?,?,?,?,?,?,?,?,?,?,?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM medications))
	`,
		m.ID,
		m.Name,
		m.Description,
		m.Dose,
		m.Color,
		m.PhotoURL,
		m.Notes,
		formatNullDate(m.StartDate),
		formatNullDate(m.EndDate),
		boolToInt(m.Active),
		formatTime(m.CreatedAt),
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
		SET name = ?, description = ?, dose = ?, color = ?, photo_url = ?, notes = ?,
			start_date = ?, end_date = ?, active = ?
		WHERE id = ?
	`,
		m.Name,
		m.Description,
		m.Dose,
		m.Color,
		m.PhotoURL,
		m.Notes,
		formatNullDate(m.StartDate),
		formatNullDate(m.EndDate),
		boolToInt(m.Active),
		m.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+medicationColumns+` FROM medications WHERE id = ?`, id)
	m, err := scanMedication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, err
}

func (r *MedicationsRepo) List(ctx context.Context, filter medications.ListFilter) ([]medications.Medication, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + medicationColumns + ` FROM medications WHERE 1 = 1`)

	args := []any{}
	if !filter.IncludeInactive {
		sb.WriteString(" AND active = 1")
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		// LIKE en sqlite es case-insensitive para ASCII
		sb.WriteString(" AND (name LIKE ? OR description LIKE ?)")
		args = append(args, "%"+q+"%", "%"+q+"%")
	}
	sb.WriteString(" ORDER BY seq ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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

func (r *MedicationsRepo) Deactivate(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE medications SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return medications.ErrNotFound
	}
	if _, err := tx.ExecContext(ctx, `UPDATE time_slots SET active = 0 WHERE medication_id = ?`, id); err != nil {
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
		VALUES (?,?,?,?,?,?)
	`,
		s.ID,
		s.MedicationID,
		s.TimeOfDay.String(),
		string(s.Recurrence),
		boolToInt(s.WithFood),
		boolToInt(s.Active),
	)
	return err
}

func (r *MedicationsRepo) UpdateTimeSlot(ctx context.Context, s medications.TimeSlot) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE time_slots
		SET time_of_day = ?, recurrence = ?, with_food = ?, active = ?
		WHERE id = ?
	`,
		s.TimeOfDay.String(),
		string(s.Recurrence),
		boolToInt(s.WithFood),
		boolToInt(s.Active),
		s.ID,
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
		FROM time_slots WHERE id = ?
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
		FROM time_slots WHERE 1 = 1`)

	args := []any{}
	if medicationID != "" {
		sb.WriteString(" AND medication_id = ?")
		args = append(args, medicationID)
	}
	if !includeInactive {
		sb.WriteString(" AND active = 1")
	}
	sb.WriteString(" ORDER BY time_of_day ASC, id ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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

func scanMedication(row scanner) (medications.Medication, error) {
	var (
		m          medications.Medication
		start, end sql.NullString
		active     int64
		createdAt  string
	)
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
		&active,
		&createdAt,
	); err != nil {
		return medications.Medication{}, err
	}

	var err error
	if m.StartDate, err = parseNullDate(start); err != nil {
		return medications.Medication{}, err
	}
	if m.EndDate, err = parseNullDate(end); err != nil {
		return medications.Medication{}, err
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return medications.Medication{}, err
	}
	m.Active = active != 0
	return m, nil
}

func scanTimeSlot(row scanner) (medications.TimeSlot, error) {
	var (
		s                medications.TimeSlot
		tod, rec         string
		withFood, active int64
	)
	if err := row.Scan(&s.ID, &s.MedicationID, &tod, &rec, &withFood, &active); err != nil {
		return medications.TimeSlot{}, err
	}
	s.TimeOfDay = parseTimeOfDay(tod)
	s.Recurrence = medications.Recurrence(rec)
	s.WithFood = withFood != 0
	s.Active = active != 0
	return s, nil
}

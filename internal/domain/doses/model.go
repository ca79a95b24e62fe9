package doses

import (
	"time"

	"medication-tracker/internal/domain/medications"
)

type State string

const (
	StatePending State = "pending"
	StateTaken   State = "taken"
	StateSkipped State = "skipped"

	// StatePostponed está reservado: ninguna transición entra ni sale de él todavía.
	StatePostponed State = "postponed"
)

// Dose es una toma concreta: un medicamento en un horario de un día calendario.
// Existe a lo sumo una por Key.
type Dose struct {
	ID           string
	MedicationID string
	TimeSlotID   string

	Day         string    // YYYY-MM-DD en la zona configurada
	ScheduledAt time.Time // Day + hora del horario
	TakenAt     *time.Time

	State State
	Notes string
}

func (d Dose) Key() Key {
	return Key{MedicationID: d.MedicationID, TimeSlotID: d.TimeSlotID, Day: d.Day}
}

// Key identifica la toma de un horario en un día.
type Key struct {
	MedicationID string
	TimeSlotID   string
	Day          string
}

// TodayDose es la toma enriquecida con los datos de presentación del medicamento y del horario.
type TodayDose struct {
	Dose

	MedicationName  string
	MedicationDose  string
	MedicationColor string

	TimeOfDay medications.TimeOfDay
	WithFood  bool

	// Late indica que sigue pendiente y su hora ya pasó.
	Late bool
}

// DayOf devuelve el día calendario (medianoche) del instante en loc.
func DayOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayKey formatea el día como se persiste en Dose.Day.
func DayKey(day time.Time) string {
	return day.Format(time.DateOnly)
}

package medications

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Recurrence define la cadencia de un horario. Por ahora solo existe "daily".
type Recurrence string

const (
	RecurrenceDaily Recurrence = "daily"
)

// Palette son los colores que se asignan cuando el cliente no envía uno.
var Palette = []string{
	"#FF5722", // deep orange
	"#2196F3", // blue
	"#4CAF50", // green
	"#9C27B0", // purple
	"#FF9800", // orange
	"#00BCD4", // cyan
	"#E91E63", // pink
	"#795548", // brown
	"#607D8B", // blue grey
	"#009688", // teal
}

// Medication representa un medicamento que la persona toma de forma recurrente.
// Nunca se borra: Active=false es el soft-delete.
type Medication struct {
	ID string

	Name        string
	Description string
	Dose        string // texto libre: "600mg - 1 comprimido"
	Color       string
	PhotoURL    string
	Notes       string

	StartDate *time.Time
	EndDate   *time.Time

	Active    bool
	CreatedAt time.Time
}

// TimeSlot es una hora del día en la que se debe tomar un medicamento.
type TimeSlot struct {
	ID           string
	MedicationID string

	TimeOfDay  TimeOfDay
	Recurrence Recurrence
	WithFood   bool

	Active bool
}

// TimeOfDay es hora:minuto en formato 24h.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay acepta "HH:MM" (también "H:MM").
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("time of day %q must be HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || len(hh) > 2 {
		return TimeOfDay{}, fmt.Errorf("time of day %q: invalid hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 {
		return TimeOfDay{}, fmt.Errorf("time of day %q: invalid minute", s)
	}
	t := TimeOfDay{Hour: h, Minute: m}
	if !t.Valid() {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return t, nil
}

func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

// String devuelve "HH:MM" con ceros a la izquierda; el orden lexicográfico coincide con el cronológico.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes son los minutos desde medianoche.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// On combina un día calendario con la hora del slot, en la zona del día recibido.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

// MinutesOf devuelve los minutos desde medianoche de un instante.
func MinutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ScheduleSummary resume los horarios para listados.
func ScheduleSummary(slots []TimeSlot) string {
	switch len(slots) {
	case 0:
		return "no schedule"
	case 1:
		return slots[0].TimeOfDay.String()
	case 2:
		return slots[0].TimeOfDay.String() + " and " + slots[1].TimeOfDay.String()
	default:
		return fmt.Sprintf("%d doses a day", len(slots))
	}
}

package doses

import (
	"context"
	"errors"
	"strings"
	"time"

	"medication-tracker/internal/domain/medications"
	"medication-tracker/internal/metrics"
	"medication-tracker/internal/platform/logger"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrDataIntegrity = errors.New("data integrity fault")
)

// ScheduleSource es lo que el motor necesita del store de medicamentos.
// medications.Service lo implementa.
type ScheduleSource interface {
	ListActive(ctx context.Context) ([]medications.Medication, error)
	ListActiveTimeSlots(ctx context.Context, medicationID string) ([]medications.TimeSlot, error)
	GetByID(ctx context.Context, id string) (medications.Medication, error)
}

type Service struct {
	repo     Repository
	schedule ScheduleSource
	log      logger.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewService arma el motor de tomas. log y loc pueden ser nil (Nop y time.Local).
func NewService(repo Repository, schedule ScheduleSource, log logger.Logger, loc *time.Location) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:     repo,
		schedule: schedule,
		log:      log,
		loc:      loc,
		now:      time.Now,
	}
}

// SetClock reemplaza el reloj (tests / router).
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// TodayDoses materializa y devuelve las tomas del día de now.
func (s *Service) TodayDoses(ctx context.Context, now time.Time) ([]TodayDose, error) {
	return s.MaterializeToday(ctx, now)
}

func (s *Service) NextDue(ctx context.Context, now time.Time) (TodayDose, bool, error) {
	items, err := s.MaterializeToday(ctx, now)
	if err != nil {
		return TodayDose{}, false, err
	}
	d, ok := SelectNextDue(items, medications.MinutesOf(now.In(s.loc)))
	return d, ok, nil
}

func (s *Service) TodayStats(ctx context.Context, now time.Time) (Stats, error) {
	items, err := s.MaterializeToday(ctx, now)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(items), nil
}

// TodayView junta todo lo que la pantalla de "hoy" necesita con una sola materialización.
type TodayView struct {
	Day      time.Time
	Greeting string
	Doses    []TodayDose
	NextDue  *TodayDose
	Stats    Stats
}

func (s *Service) Today(ctx context.Context, now time.Time) (TodayView, error) {
	items, err := s.MaterializeToday(ctx, now)
	if err != nil {
		return TodayView{}, err
	}
	local := now.In(s.loc)

	v := TodayView{
		Day:      DayOf(local, s.loc),
		Greeting: Greeting(local),
		Doses:    items,
		Stats:    ComputeStats(items),
	}
	if d, ok := SelectNextDue(items, medications.MinutesOf(local)); ok {
		v.NextDue = &d
	}
	return v, nil
}

// Greeting según la hora local.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Buenos días"
	case h < 20:
		return "Buenas tardes"
	default:
		return "Buenas noches"
	}
}

// ConfirmTaken marca la toma como tomada en at. Repetirlo no toca TakenAt.
func (s *Service) ConfirmTaken(ctx context.Context, id string, at time.Time) (Dose, error) {
	return s.transition(ctx, id, StateTaken, &at)
}

// ConfirmSkipped marca la toma como omitida. Repetirlo es un no-op.
func (s *Service) ConfirmSkipped(ctx context.Context, id string) (Dose, error) {
	return s.transition(ctx, id, StateSkipped, nil)
}

func (s *Service) transition(ctx context.Context, id string, to State, at *time.Time) (Dose, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dose{}, ErrInvalidInput
	}

	d, applied, err := s.repo.Transition(ctx, id, to, at)
	if err != nil {
		return Dose{}, err
	}
	metrics.DoseTransition(string(to), applied)

	if !applied {
		s.log.Debug("dose transition ignored", map[string]any{
			"dose_id": id,
			"state":   string(d.State),
			"target":  string(to),
		})
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Dose, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Dose{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// History devuelve las tomas registradas entre dos días (inclusive), de cualquier medicamento.
func (s *Service) History(ctx context.Context, from, to time.Time) ([]Dose, error) {
	fromKey := DayKey(DayOf(from, s.loc))
	toKey := DayKey(DayOf(to, s.loc))
	if toKey < fromKey {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByDayRange(ctx, fromKey, toKey)
}

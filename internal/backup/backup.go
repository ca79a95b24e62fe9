// Package backup arma una foto JSON de medicamentos, horarios y tomas recientes
// y la entrega a un Store (S3 en producción).
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
	"medication-tracker/internal/platform/logger"
)

var ErrInvalidInput = errors.New("invalid input")

// Store es el destino de la foto. key es relativo al bucket.
type Store interface {
	Put(ctx context.Context, key string, body []byte) error
}

type Snapshot struct {
	CreatedAt time.Time `json:"created_at"`
	From      string    `json:"from"`
	To        string    `json:"to"`

	Medications []Medication `json:"medications"`
	TimeSlots   []TimeSlot   `json:"time_slots"`
	Doses       []Dose       `json:"doses"`
}

type Medication struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Dose        string     `json:"dose"`
	Color       string     `json:"color"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
}

type TimeSlot struct {
	ID           string `json:"id"`
	MedicationID string `json:"medication_id"`
	Time         string `json:"time"`
	Recurrence   string `json:"recurrence"`
	WithFood     bool   `json:"with_food"`
	Active       bool   `json:"active"`
}

type Dose struct {
	ID           string     `json:"id"`
	MedicationID string     `json:"medication_id"`
	TimeSlotID   string     `json:"time_slot_id"`
	Day          string     `json:"day"`
	ScheduledAt  time.Time  `json:"scheduled_at"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
	State        string     `json:"state"`
	Notes        string     `json:"notes,omitempty"`
}

type Service struct {
	meds  medications.Repository
	doses doses.Repository
	loc   *time.Location
	log   logger.Logger
	now   func() time.Time
}

func NewService(meds medications.Repository, dr doses.Repository, loc *time.Location, log logger.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{meds: meds, doses: dr, loc: loc, log: log, now: time.Now}
}

// Build incluye todos los medicamentos (activos o no), todos los horarios y
// las tomas de los últimos days días contando hoy.
func (s *Service) Build(ctx context.Context, days int) (Snapshot, error) {
	if days < 1 {
		return Snapshot{}, ErrInvalidInput
	}
	now := s.now().In(s.loc)
	today := doses.DayOf(now, s.loc)
	from := doses.DayKey(today.AddDate(0, 0, -(days - 1)))
	to := doses.DayKey(today)

	meds, err := s.meds.List(ctx, medications.ListFilter{IncludeInactive: true})
	if err != nil {
		return Snapshot{}, fmt.Errorf("list medications: %w", err)
	}
	slots, err := s.meds.ListTimeSlots(ctx, "", true)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list time slots: %w", err)
	}
	ds, err := s.doses.ListByDayRange(ctx, from, to)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list doses: %w", err)
	}

	snap := Snapshot{
		CreatedAt:   now,
		From:        from,
		To:          to,
		Medications: make([]Medication, 0, len(meds)),
		TimeSlots:   make([]TimeSlot, 0, len(slots)),
		Doses:       make([]Dose, 0, len(ds)),
	}
	for _, m := range meds {
		snap.Medications = append(snap.Medications, Medication{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Dose:        m.Dose,
			Color:       m.Color,
			PhotoURL:    m.PhotoURL,
			Notes:       m.Notes,
			StartDate:   m.StartDate,
			EndDate:     m.EndDate,
			Active:      m.Active,
			CreatedAt:   m.CreatedAt,
		})
	}
	for _, sl := range slots {
		snap.TimeSlots = append(snap.TimeSlots, TimeSlot{
			ID:           sl.ID,
			MedicationID: sl.MedicationID,
			Time:         sl.TimeOfDay.String(),
			Recurrence:   string(sl.Recurrence),
			WithFood:     sl.WithFood,
			Active:       sl.Active,
		})
	}
	for _, d := range ds {
		snap.Doses = append(snap.Doses, Dose{
			ID:           d.ID,
			MedicationID: d.MedicationID,
			TimeSlotID:   d.TimeSlotID,
			Day:          d.Day,
			ScheduledAt:  d.ScheduledAt,
			TakenAt:      d.TakenAt,
			State:        string(d.State),
			Notes:        d.Notes,
		})
	}
	return snap, nil
}

// Key arma el nombre del objeto: prefix + timestamp UTC + ".json".
func Key(prefix string, at time.Time) string {
	prefix = strings.TrimSpace(prefix)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + at.UTC().Format("20060102T150405Z") + ".json"
}

// Run arma la foto y la sube. Devuelve la key usada.
func (s *Service) Run(ctx context.Context, store Store, prefix string, days int) (string, error) {
	snap, err := s.Build(ctx, days)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := Key(prefix, snap.CreatedAt)
	if err := store.Put(ctx, key, buf.Bytes()); err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}

	s.log.Info("backup uploaded", map[string]any{
		"key":         key,
		"medications": len(snap.Medications),
		"time_slots":  len(snap.TimeSlots),
		"doses":       len(snap.Doses),
		"from":        snap.From,
		"to":          snap.To,
	})
	return key, nil
}

package medications

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInactive     = errors.New("medication is inactive")
)

type Service struct {
	repo  Repository
	now   func() time.Time
	color func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		color: func() string {
			return Palette[rand.Intn(len(Palette))]
		},
	}
}

type CreateInput struct {
	Name        string
	Description string
	Dose        string
	Color       string
	PhotoURL    string
	Notes       string
	StartDate   *time.Time
	EndDate     *time.Time

	// Horarios iniciales; todos comparten WithFood.
	Times    []TimeOfDay
	WithFood bool
}

// Create registra el medicamento y, si vienen, sus horarios iniciales.
func (s *Service) Create(ctx context.Context, in CreateInput) (Medication, []TimeSlot, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Medication{}, nil, ErrInvalidInput
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return Medication{}, nil, ErrInvalidInput
	}
	for _, t := range in.Times {
		if !t.Valid() {
			return Medication{}, nil, ErrInvalidInput
		}
	}

	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = s.color()
	}

	m := Medication{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Dose:        strings.TrimSpace(in.Dose),
		Color:       color,
		PhotoURL:    strings.TrimSpace(in.PhotoURL),
		Notes:       strings.TrimSpace(in.Notes),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Active:      true,
		CreatedAt:   s.now(),
	}

	slots := make([]TimeSlot, 0, len(in.Times))
	for _, t := range in.Times {
		slots = append(slots, TimeSlot{
			ID:           uuid.NewString(),
			MedicationID: m.ID,
			TimeOfDay:    t,
			Recurrence:   RecurrenceDaily,
			WithFood:     in.WithFood,
			Active:       true,
		})
	}
	if err := s.repo.Create(ctx, m, slots); err != nil {
		return Medication{}, nil, err
	}

	return m, slots, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Medication, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.List(ctx, filter)
}

// ListActive es la vista que consume el materializador de tomas.
func (s *Service) ListActive(ctx context.Context) ([]Medication, error) {
	return s.repo.List(ctx, ListFilter{})
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string
	Description *string
	Dose        *string
	Color       *string
	PhotoURL    *string
	Notes       *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Medication, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Medication{}, ErrInvalidInput
		}
		m.Name = name
	}
	if in.Description != nil {
		m.Description = strings.TrimSpace(*in.Description)
	}
	if in.Dose != nil {
		m.Dose = strings.TrimSpace(*in.Dose)
	}
	if in.Color != nil {
		if c := strings.TrimSpace(*in.Color); c != "" {
			m.Color = c
		}
	}
	if in.PhotoURL != nil {
		m.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.Notes != nil {
		m.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// Deactivate es el soft-delete: el medicamento y sus horarios dejan de generar tomas,
// pero las tomas ya registradas se conservan.
func (s *Service) Deactivate(ctx context.Context, id string) (Medication, error) {
	m, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}
	// Idempotente
	if !m.Active {
		return m, nil
	}
	if err := s.repo.Deactivate(ctx, m.ID); err != nil {
		return Medication{}, err
	}
	return s.repo.GetByID(ctx, m.ID)
}

type TimeSlotInput struct {
	TimeOfDay TimeOfDay
	WithFood  bool
}

func (s *Service) AddTimeSlot(ctx context.Context, medicationID string, in TimeSlotInput) (TimeSlot, error) {
	if !in.TimeOfDay.Valid() {
		return TimeSlot{}, ErrInvalidInput
	}
	m, err := s.GetByID(ctx, medicationID)
	if err != nil {
		return TimeSlot{}, err
	}
	if !m.Active {
		return TimeSlot{}, ErrInactive
	}

	slot := TimeSlot{
		ID:           uuid.NewString(),
		MedicationID: m.ID,
		TimeOfDay:    in.TimeOfDay,
		Recurrence:   RecurrenceDaily,
		WithFood:     in.WithFood,
		Active:       true,
	}
	if err := s.repo.CreateTimeSlot(ctx, slot); err != nil {
		return TimeSlot{}, err
	}
	return slot, nil
}

type UpdateTimeSlotInput struct {
	TimeOfDay *TimeOfDay
	WithFood  *bool
}

func (s *Service) UpdateTimeSlot(ctx context.Context, medicationID, slotID string, in UpdateTimeSlotInput) (TimeSlot, error) {
	slot, err := s.slotOf(ctx, medicationID, slotID)
	if err != nil {
		return TimeSlot{}, err
	}
	if !slot.Active {
		return TimeSlot{}, ErrInactive
	}

	if in.TimeOfDay != nil {
		if !in.TimeOfDay.Valid() {
			return TimeSlot{}, ErrInvalidInput
		}
		slot.TimeOfDay = *in.TimeOfDay
	}
	if in.WithFood != nil {
		slot.WithFood = *in.WithFood
	}

	if err := s.repo.UpdateTimeSlot(ctx, slot); err != nil {
		return TimeSlot{}, err
	}
	return slot, nil
}

func (s *Service) DeactivateTimeSlot(ctx context.Context, medicationID, slotID string) (TimeSlot, error) {
	slot, err := s.slotOf(ctx, medicationID, slotID)
	if err != nil {
		return TimeSlot{}, err
	}
	if !slot.Active {
		return slot, nil
	}
	slot.Active = false
	if err := s.repo.UpdateTimeSlot(ctx, slot); err != nil {
		return TimeSlot{}, err
	}
	return slot, nil
}

// ListActiveTimeSlots devuelve los horarios activos ordenados por hora.
// Con medicationID vacío devuelve los de todos los medicamentos.
func (s *Service) ListActiveTimeSlots(ctx context.Context, medicationID string) ([]TimeSlot, error) {
	return s.repo.ListTimeSlots(ctx, strings.TrimSpace(medicationID), false)
}

// slotOf valida que el horario exista y pertenezca al medicamento.
func (s *Service) slotOf(ctx context.Context, medicationID, slotID string) (TimeSlot, error) {
	medicationID = strings.TrimSpace(medicationID)
	slotID = strings.TrimSpace(slotID)
	if medicationID == "" || slotID == "" {
		return TimeSlot{}, ErrInvalidInput
	}
	slot, err := s.repo.GetTimeSlot(ctx, slotID)
	if err != nil {
		return TimeSlot{}, err
	}
	if slot.MedicationID != medicationID {
		return TimeSlot{}, ErrNotFound
	}
	return slot, nil
}

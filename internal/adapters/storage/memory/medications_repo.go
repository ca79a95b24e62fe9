package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"medication-tracker/internal/domain/medications"
)

type medicationRepo struct {
	mu sync.RWMutex

	byID  map[string]medications.Medication
	order []string // orden de alta, para listados estables

	slots map[string]medications.TimeSlot
}

func NewMedicationRepo() medications.Repository {
	return &medicationRepo{
		byID:  make(map[string]medications.Medication),
		slots: make(map[string]medications.TimeSlot),
	}
}

func (r *medicationRepo) Create(ctx context.Context, m medications.Medication, slots []medications.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medication already exists")
	}

	// Se valida todo antes de escribir nada.
	seen := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if strings.TrimSpace(s.ID) == "" {
			return errors.New("time slot id required")
		}
		if s.MedicationID != m.ID {
			return medications.ErrInvalidInput
		}
		if _, exists := r.slots[s.ID]; exists {
			return errors.New("time slot already exists")
		}
		if _, dup := seen[s.ID]; dup {
			return errors.New("time slot already exists")
		}
		seen[s.ID] = struct{}{}
	}

	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	return nil
}

func (r *medicationRepo) Update(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.ID]; !exists {
		return medications.ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medicationRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, nil
}

func (r *medicationRepo) List(ctx context.Context, filter medications.ListFilter) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]medications.Medication, 0, len(r.order))
	for _, id := range r.order {
		m := r.byID[id]
		if !filter.IncludeInactive && !m.Active {
			continue
		}
		if q != "" {
			hay := strings.ToLower(m.Name + " " + m.Description)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *medicationRepo) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.ErrNotFound
	}
	m.Active = false
	r.byID[id] = m

	// Cascada a los horarios
	for sid, s := range r.slots {
		if s.MedicationID == id && s.Active {
			s.Active = false
			r.slots[sid] = s
		}
	}
	return nil
}

func (r *medicationRepo) CreateTimeSlot(ctx context.Context, s medications.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("time slot id required")
	}
	if _, ok := r.byID[s.MedicationID]; !ok {
		return medications.ErrNotFound
	}
	if _, exists := r.slots[s.ID]; exists {
		return errors.New("time slot already exists")
	}
	r.slots[s.ID] = s
	return nil
}

func (r *medicationRepo) UpdateTimeSlot(ctx context.Context, s medications.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.slots[s.ID]; !exists {
		return medications.ErrNotFound
	}
	r.slots[s.ID] = s
	return nil
}

func (r *medicationRepo) GetTimeSlot(ctx context.Context, id string) (medications.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.slots[id]
	if !ok {
		return medications.TimeSlot{}, medications.ErrNotFound
	}
	return s, nil
}

func (r *medicationRepo) ListTimeSlots(ctx context.Context, medicationID string, includeInactive bool) ([]medications.TimeSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.TimeSlot, 0)
	for _, s := range r.slots {
		if medicationID != "" && s.MedicationID != medicationID {
			continue
		}
		if !includeInactive && !s.Active {
			continue
		}
		out = append(out, s)
	}

	// Orden por hora; el id desempata para que el resultado sea determinista.
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].TimeOfDay.String(), out[j].TimeOfDay.String()
		if ti != tj {
			return ti < tj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

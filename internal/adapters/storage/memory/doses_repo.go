package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"medication-tracker/internal/domain/doses"
)

// doseRepo indexa por id y por Key; un único mutex hace atómicos el
// create-if-absent y el read-check-write de las transiciones.
type doseRepo struct {
	mu    sync.RWMutex
	byID  map[string]doses.Dose
	byKey map[doses.Key]string
}

func NewDoseRepo() doses.Repository {
	return &doseRepo{
		byID:  make(map[string]doses.Dose),
		byKey: make(map[doses.Key]string),
	}
}

func (r *doseRepo) CreateIfAbsent(ctx context.Context, d doses.Dose) (doses.Dose, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return doses.Dose{}, false, errors.New("dose id required")
	}
	if id, ok := r.byKey[d.Key()]; ok {
		return r.byID[id], false, nil
	}
	if _, exists := r.byID[d.ID]; exists {
		return doses.Dose{}, false, errors.New("dose already exists")
	}

	r.byID[d.ID] = d
	r.byKey[d.Key()] = d.ID
	return d, true, nil
}

func (r *doseRepo) GetByKey(ctx context.Context, key doses.Key) (doses.Dose, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[key]
	if !ok {
		return doses.Dose{}, doses.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *doseRepo) GetByID(ctx context.Context, id string) (doses.Dose, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return doses.Dose{}, doses.ErrNotFound
	}
	return d, nil
}

func (r *doseRepo) ListByDayRange(ctx context.Context, from, to string) ([]doses.Dose, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]doses.Dose, 0)
	for _, d := range r.byID {
		// YYYY-MM-DD compara bien como string
		if d.Day < from || d.Day > to {
			continue
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *doseRepo) Transition(ctx context.Context, id string, to doses.State, takenAt *time.Time) (doses.Dose, bool, error) {
	if err := doses.CheckTransition(to, takenAt); err != nil {
		return doses.Dose{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return doses.Dose{}, false, doses.ErrNotFound
	}

	var at time.Time
	if takenAt != nil {
		at = *takenAt
	}
	next, applied, err := doses.Apply(d, to, at)
	if err != nil {
		return doses.Dose{}, false, err
	}
	if applied {
		r.byID[id] = next
	}
	return next, applied, nil
}

package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medication-tracker/internal/domain/doses"
	"medication-tracker/internal/domain/medications"
)

func dose(id, day string, h int) doses.Dose {
	d, _ := time.Parse(time.DateOnly, day)
	return doses.Dose{
		ID:           id,
		MedicationID: "m1",
		TimeSlotID:   fmt.Sprintf("s%d", h),
		Day:          day,
		ScheduledAt:  d.Add(time.Duration(h) * time.Hour),
		State:        doses.StatePending,
	}
}

func TestDoseRepo_ConcurrentCreateIfAbsent(t *testing.T) {
	repo := NewDoseRepo()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = map[string]struct{}{}
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d, ok, err := repo.CreateIfAbsent(ctx, dose(fmt.Sprintf("d%d", i), "2024-03-10", 8))
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			ids[d.ID] = struct{}{}
			if ok {
				created++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, ids, 1)
}

func TestDoseRepo_ListByDayRangeOrdered(t *testing.T) {
	repo := NewDoseRepo()
	ctx := context.Background()

	for _, d := range []doses.Dose{
		dose("c", "2024-03-11", 8),
		dose("b", "2024-03-10", 14),
		dose("a", "2024-03-10", 8),
		dose("z", "2024-03-12", 8),
	} {
		_, _, err := repo.CreateIfAbsent(ctx, d)
		require.NoError(t, err)
	}

	got, err := repo.ListByDayRange(ctx, "2024-03-10", "2024-03-11")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestDoseRepo_Transition(t *testing.T) {
	repo := NewDoseRepo()
	ctx := context.Background()

	_, _, err := repo.CreateIfAbsent(ctx, dose("d1", "2024-03-10", 8))
	require.NoError(t, err)

	at := time.Now()
	_, _, err = repo.Transition(ctx, "nope", doses.StateTaken, &at)
	assert.ErrorIs(t, err, doses.ErrNotFound)

	// taken sin instante no llega a guardarse
	_, _, err = repo.Transition(ctx, "d1", doses.StateTaken, nil)
	assert.ErrorIs(t, err, doses.ErrInvalidInput)
	got, err := repo.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, doses.StatePending, got.State)
	assert.Nil(t, got.TakenAt)

	d, applied, err := repo.Transition(ctx, "d1", doses.StateSkipped, nil)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, doses.StateSkipped, d.State)

	d, applied, err = repo.Transition(ctx, "d1", doses.StateTaken, &at)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, doses.StateSkipped, d.State)
	assert.Nil(t, d.TakenAt)
}

func TestMedicationRepo_OrderAndCascade(t *testing.T) {
	repo := NewMedicationRepo()
	ctx := context.Background()

	for _, id := range []string{"m2", "m1"} {
		require.NoError(t, repo.Create(ctx, medications.Medication{ID: id, Name: id, Active: true}, nil))
	}
	require.NoError(t, repo.CreateTimeSlot(ctx, medications.TimeSlot{ID: "b", MedicationID: "m2", TimeOfDay: medications.TimeOfDay{Hour: 8}, Active: true}))
	require.NoError(t, repo.CreateTimeSlot(ctx, medications.TimeSlot{ID: "a", MedicationID: "m2", TimeOfDay: medications.TimeOfDay{Hour: 8}, Active: true}))
	require.NoError(t, repo.CreateTimeSlot(ctx, medications.TimeSlot{ID: "c", MedicationID: "m1", TimeOfDay: medications.TimeOfDay{Hour: 7}, Active: true}))

	// huérfano: medicamento inexistente
	assert.ErrorIs(t,
		repo.CreateTimeSlot(ctx, medications.TimeSlot{ID: "x", MedicationID: "ghost", Active: true}),
		medications.ErrNotFound)

	list, err := repo.List(ctx, medications.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m2", list[0].ID)

	slots, err := repo.ListTimeSlots(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{slots[0].ID, slots[1].ID, slots[2].ID})

	require.NoError(t, repo.Deactivate(ctx, "m2"))
	slots, err = repo.ListTimeSlots(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "c", slots[0].ID)

	assert.ErrorIs(t, repo.Deactivate(ctx, "ghost"), medications.ErrNotFound)
}

func TestMedicationRepo_CreateIsAllOrNothing(t *testing.T) {
	repo := NewMedicationRepo()
	ctx := context.Background()

	m := medications.Medication{ID: "m1", Name: "Ibuprofeno", Active: true}
	slot := func(id string, h int) medications.TimeSlot {
		return medications.TimeSlot{ID: id, MedicationID: "m1", TimeOfDay: medications.TimeOfDay{Hour: h}, Active: true}
	}

	err := repo.Create(ctx, m, []medications.TimeSlot{slot("s1", 8), slot("s1", 14)})
	require.Error(t, err)
	_, err = repo.GetByID(ctx, "m1")
	assert.ErrorIs(t, err, medications.ErrNotFound)

	// horario de otro medicamento
	other := slot("s9", 9)
	other.MedicationID = "m2"
	assert.ErrorIs(t, repo.Create(ctx, m, []medications.TimeSlot{other}), medications.ErrInvalidInput)

	require.NoError(t, repo.Create(ctx, m, []medications.TimeSlot{slot("s1", 8), slot("s2", 14)}))
	slots, err := repo.ListTimeSlots(ctx, "m1", false)
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

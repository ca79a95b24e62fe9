package doses

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	states := []State{StatePending, StateTaken, StateSkipped, StatePostponed}
	allowed := map[[2]State]bool{
		{StatePending, StateTaken}:   true,
		{StatePending, StateSkipped}: true,
	}

	for _, from := range states {
		for _, to := range states {
			assert.Equal(t, allowed[[2]State{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestApply(t *testing.T) {
	at := time.Date(2024, 3, 10, 8, 3, 0, 0, time.UTC)
	pending := Dose{ID: "d1", State: StatePending}

	taken, applied, err := Apply(pending, StateTaken, at)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, StateTaken, taken.State)
	require.NotNil(t, taken.TakenAt)
	assert.True(t, taken.TakenAt.Equal(at))
	// el original no se toca
	assert.Equal(t, StatePending, pending.State)

	again, applied, err := Apply(taken, StateSkipped, at.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, taken, again)

	skipped, applied, err := Apply(pending, StateSkipped, at)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Nil(t, skipped.TakenAt)

	_, _, err = Apply(pending, StatePostponed, at)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = Apply(pending, StatePending, at)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = Apply(pending, StateTaken, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckTransition(t *testing.T) {
	at := time.Date(2024, 3, 10, 8, 3, 0, 0, time.UTC)
	zero := time.Time{}

	tests := []struct {
		name    string
		to      State
		takenAt *time.Time
		ok      bool
	}{
		{"taken con instante", StateTaken, &at, true},
		{"taken sin instante", StateTaken, nil, false},
		{"taken con instante cero", StateTaken, &zero, false},
		{"skipped sin instante", StateSkipped, nil, true},
		{"postponed", StatePostponed, &at, false},
		{"pending", StatePending, nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckTransition(tc.to, tc.takenAt)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidInput)
			}
		})
	}
}

func TestStateTerminal(t *testing.T) {
	assert.False(t, StatePending.Terminal())
	assert.True(t, StateTaken.Terminal())
	assert.True(t, StateSkipped.Terminal())
	assert.False(t, StatePostponed.Terminal())
}

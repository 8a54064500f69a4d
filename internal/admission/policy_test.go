package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/association-registrations/internal/apperr"
	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
)

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func limits(reg, wait *int) model.Capacity {
	return model.Capacity{RegistrationMax: reg, WaitingListMax: wait}
}

func TestDecideNewRegistration(t *testing.T) {
	tests := []struct {
		name      string
		in        Input
		wantPos   *int
		wantError error
	}{
		{
			name: "no limit is always confirmed",
			in:   Input{Confirmed: 500},
		},
		{
			name: "free seat is confirmed",
			in:   Input{Capacity: limits(intp(2), intp(2)), Confirmed: 1},
		},
		{
			name:    "full seats append to queue tail",
			in:      Input{Capacity: limits(intp(1), intp(2)), Confirmed: 1, QueueLen: 1},
			wantPos: intp(1),
		},
		{
			name:      "full waiting list is rejected",
			in:        Input{Capacity: limits(intp(1), intp(2)), Confirmed: 1, QueueLen: 2},
			wantError: apperr.ErrCapacityExceeded,
		},
		{
			name:      "zero waiting list rejects once seats are full",
			in:        Input{Capacity: limits(intp(1), intp(0)), Confirmed: 1},
			wantError: apperr.ErrCapacityExceeded,
		},
		{
			name: "zero waiting list with free seat is confirmed",
			in:   Input{Capacity: limits(intp(1), intp(0))},
		},
		{
			name:    "unset waiting list max is unbounded",
			in:      Input{Capacity: limits(intp(1), nil), Confirmed: 1, QueueLen: 40},
			wantPos: intp(40),
		},
		{
			name: "requested position ignored for non-privileged",
			in:   Input{Capacity: limits(intp(5), nil), Requested: intp(0)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decide(tt.in)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPos, got.Position)
		})
	}
}

func TestDecideNonPrivilegedUpdateKeepsCurrentState(t *testing.T) {
	in := Input{
		Capacity:  limits(intp(1), nil),
		Confirmed: 0,
		QueueLen:  3,
		Requested: intp(0),
		Current:   &Current{Position: intp(2), Attended: nil},
		Attended:  boolp(true),
	}
	got, err := Decide(in)
	require.NoError(t, err)
	assert.Equal(t, intp(2), got.Position)
	assert.Nil(t, got.Attended)
}

func TestDecidePrivileged(t *testing.T) {
	t.Run("no explicit position confirms", func(t *testing.T) {
		got, err := Decide(Input{Capacity: limits(intp(1), intp(0)), Confirmed: 10, Privileged: true})
		require.NoError(t, err)
		assert.Nil(t, got.Position)
	})

	t.Run("no explicit position promotes an update", func(t *testing.T) {
		got, err := Decide(Input{
			Capacity:   limits(intp(1), nil),
			QueueLen:   2,
			Privileged: true,
			Current:    &Current{Position: intp(1)},
			Attended:   boolp(true),
		})
		require.NoError(t, err)
		assert.Nil(t, got.Position)
		assert.Equal(t, boolp(true), got.Attended)
	})

	t.Run("explicit tail on create", func(t *testing.T) {
		got, err := Decide(Input{Capacity: limits(intp(1), nil), QueueLen: 2, Privileged: true, Requested: intp(2)})
		require.NoError(t, err)
		assert.Equal(t, intp(2), got.Position)
	})

	t.Run("arbitrary explicit position is rejected", func(t *testing.T) {
		_, err := Decide(Input{Capacity: limits(intp(1), nil), QueueLen: 2, Privileged: true, Requested: intp(5)})
		assert.ErrorIs(t, err, apperr.ErrInvalidPosition)
	})

	t.Run("current position is a no-op", func(t *testing.T) {
		got, err := Decide(Input{
			Capacity:   limits(intp(1), nil),
			QueueLen:   3,
			Privileged: true,
			Requested:  intp(1),
			Current:    &Current{Position: intp(1)},
		})
		require.NoError(t, err)
		assert.Equal(t, intp(1), got.Position)
	})

	t.Run("queued registration appends at queue length", func(t *testing.T) {
		got, err := Decide(Input{
			Capacity:   limits(intp(1), intp(3)),
			QueueLen:   3,
			Privileged: true,
			Requested:  intp(3),
			Current:    &Current{Position: intp(0)},
		})
		require.NoError(t, err)
		assert.Equal(t, intp(2), got.Position)
	})

	t.Run("last index is not the tail for a queued registration", func(t *testing.T) {
		_, err := Decide(Input{
			Capacity:   limits(intp(1), nil),
			QueueLen:   3,
			Privileged: true,
			Requested:  intp(2),
			Current:    &Current{Position: intp(1)},
		})
		assert.ErrorIs(t, err, apperr.ErrInvalidPosition)
	})

	t.Run("full queue still lets its own entries move to the tail", func(t *testing.T) {
		got, err := Decide(Input{
			Capacity:   limits(intp(1), intp(2)),
			QueueLen:   2,
			Privileged: true,
			Requested:  intp(2),
			Current:    &Current{Position: intp(0)},
		})
		require.NoError(t, err)
		assert.Equal(t, intp(1), got.Position)
	})

	t.Run("confirmed registration cannot join a full queue", func(t *testing.T) {
		_, err := Decide(Input{
			Capacity:   limits(intp(1), intp(2)),
			QueueLen:   2,
			Privileged: true,
			Requested:  intp(2),
			Current:    &Current{},
		})
		assert.ErrorIs(t, err, apperr.ErrCapacityExceeded)
	})

	t.Run("explicit position without registration max is invalid", func(t *testing.T) {
		_, err := Decide(Input{Privileged: true, Requested: intp(0)})
		assert.ErrorIs(t, err, apperr.ErrInvalidPosition)
	})
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "confirmed", Decision{}.Outcome())
	assert.Equal(t, "waiting_list", Decision{Position: intp(0)}.Outcome())
}

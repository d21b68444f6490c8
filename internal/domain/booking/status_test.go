package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusScheduled, StatusInProgress, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusInProgress, StatusCompletedFromWorker, true},
		{StatusCompletedFromWorker, StatusCompleted, true},
		{StatusCompleted, StatusDisputed, true},
		{StatusDisputed, StatusCompleted, true},
		{StatusDisputed, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusScheduled, StatusDisputed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanCancel(t *testing.T) {
	assert.NoError(t, CanCancel(StatusScheduled))
	assert.NoError(t, CanCancel(StatusInProgress))
	assert.NoError(t, CanCancel(StatusCompletedFromWorker))
	assert.Equal(t, ErrCannotCancel, CanCancel(StatusCompleted))
	assert.Equal(t, ErrCannotCancel, CanCancel(StatusCancelled))
	assert.Equal(t, ErrCannotCancelDisputed, CanCancel(StatusDisputed))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusCompletedFromWorker.Valid())
	assert.False(t, Status("archived").Valid())
	assert.Equal(t, StatusScheduled, InitialStatus())
}

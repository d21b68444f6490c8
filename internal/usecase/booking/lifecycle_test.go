package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/models"
)

func TestLifecycle_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create().Execute(ctx, poster, f.input(worker.ID, 9, 12))
	require.NoError(t, err)

	b, err = NewStartWork(f.bookings, nil, f.log).Execute(ctx, worker, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), b.Status)

	b, err = NewCompleteByWorker(f.bookings, nil, f.log).Execute(ctx, worker, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompletedFromWorker), b.Status)

	b, err = NewCompleteByPoster(f.bookings, nil, f.log).Execute(ctx, poster, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), b.Status)
	assert.Equal(t, uint(4), b.Version)

	stored, ok := f.store.Booking(b.ID)
	require.True(t, ok)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
}

func TestStartWork_Guards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.seed(worker.ID, 9, 12, domain.StatusScheduled)
	start := NewStartWork(f.bookings, nil, f.log)

	_, err := start.Execute(ctx, poster, b.ID)
	assert.ErrorIs(t, err, domain.ErrPosterCannotStart)
	assert.Equal(t, "Poster cannot start the work", err.Error())

	_, err = start.Execute(ctx, worker2, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotWorker)

	_, err = start.Execute(ctx, worker, 404)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	_, err = start.Execute(ctx, worker, b.ID)
	require.NoError(t, err)

	_, err = start.Execute(ctx, worker, b.ID)
	assert.ErrorIs(t, err, domain.ErrCannotStart)
}

func TestCompleteByWorker_RequiresInProgress(t *testing.T) {
	f := newFixture(t)
	b := f.seed(worker.ID, 9, 12, domain.StatusScheduled)

	_, err := NewCompleteByWorker(f.bookings, nil, f.log).Execute(context.Background(), worker, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotInProgress)
}

func TestCompleteByPoster_FromInProgress(t *testing.T) {
	f := newFixture(t)
	b := f.seed(worker.ID, 9, 12, domain.StatusInProgress)
	complete := NewCompleteByPoster(f.bookings, nil, f.log)

	_, err := complete.Execute(context.Background(), worker, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotPoster)

	got, err := complete.Execute(context.Background(), poster, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)
}

func TestCancelBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cancel := NewCancelBooking(f.bookings, nil, f.log)

	cases := []struct {
		name   string
		status domain.Status
		want   error
	}{
		{name: "completed", status: domain.StatusCompleted, want: domain.ErrCannotCancel},
		{name: "cancelled", status: domain.StatusCancelled, want: domain.ErrCannotCancel},
		{name: "disputed", status: domain.StatusDisputed, want: domain.ErrCannotCancelDisputed},
		{name: "scheduled", status: domain.StatusScheduled},
		{name: "in progress", status: domain.StatusInProgress},
		{name: "awaiting confirmation", status: domain.StatusCompletedFromWorker},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := f.seed(worker.ID, 9, 12, tc.status)
			got, err := cancel.Execute(ctx, worker, b.ID)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
				stored, _ := f.store.Booking(b.ID)
				assert.Equal(t, string(tc.status), stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(domain.StatusCancelled), got.Status)
		})
	}
}

func TestCancelBooking_RequiresParticipantOrAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cancel := NewCancelBooking(f.bookings, nil, f.log)

	b := f.seed(worker.ID, 9, 12, domain.StatusScheduled)
	_, err := cancel.Execute(ctx, outside, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotParticipant)

	_, err = cancel.Execute(ctx, admin, b.ID)
	assert.NoError(t, err)
}

func TestTransition_ConcurrentModificationIsAConflict(t *testing.T) {
	f := newFixture(t)
	b := f.seed(worker.ID, 9, 12, domain.StatusScheduled)

	// Another writer bumps the row between our read and our write.
	f.bookings.BeforeWrite = func(*models.Booking) error {
		stored, _ := f.store.Booking(b.ID)
		stored.Version++
		f.store.PutBooking(stored)
		return nil
	}

	_, err := NewStartWork(f.bookings, nil, f.log).Execute(context.Background(), worker, b.ID)
	assert.ErrorIs(t, err, domain.ErrStaleBooking)

	stored, _ := f.store.Booking(b.ID)
	assert.Equal(t, string(domain.StatusScheduled), stored.Status)
}

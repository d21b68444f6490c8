package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
)

func TestUpdateBooking_Reschedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	update := NewUpdateBooking(f.bookings, nil, f.log)

	f.seed(worker.ID, 9, 12, domain.StatusScheduled)
	mine := f.seed(worker.ID, 13, 15, domain.StatusScheduled)

	// Moving into the other booking is refused.
	_, err := update.Execute(ctx, poster, UpdateBookingInput{
		BookingID: mine.ID,
		StartTime: at(11),
	})
	assert.ErrorIs(t, err, domain.ErrWorkerUnavailable)

	// Overlapping its own previous slot is fine.
	rate := 120.0
	got, err := update.Execute(ctx, poster, UpdateBookingInput{
		BookingID:  mine.ID,
		StartTime:  at(12),
		EndTime:    at(16),
		AgreedRate: &rate,
	})
	require.NoError(t, err)
	assert.Equal(t, *at(12), *got.StartTime)
	assert.Equal(t, *at(16), *got.EndTime)
	assert.Equal(t, 120.0, got.AgreedRate)
	assert.Equal(t, uint(2), got.Version)
}

func TestUpdateBooking_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	update := NewUpdateBooking(f.bookings, nil, f.log)
	b := f.seed(worker.ID, 9, 12, domain.StatusScheduled)

	_, err := update.Execute(ctx, poster, UpdateBookingInput{BookingID: b.ID, EndTime: at(8)})
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	negative := -1.0
	_, err = update.Execute(ctx, poster, UpdateBookingInput{BookingID: b.ID, AgreedRate: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidRate)

	_, err = update.Execute(ctx, worker, UpdateBookingInput{BookingID: b.ID, StartTime: at(10)})
	assert.ErrorIs(t, err, domain.ErrNotPoster)

	_, err = update.Execute(ctx, poster, UpdateBookingInput{BookingID: 404})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	stored, _ := f.store.Booking(b.ID)
	assert.Equal(t, *at(9), *stored.StartTime)
	assert.Equal(t, uint(1), stored.Version)
}

func TestUpdateBooking_StaleVersion(t *testing.T) {
	f := newFixture(t)
	b := f.seed(worker.ID, 9, 12, domain.StatusScheduled)

	stale := uint(7)
	_, err := NewUpdateBooking(f.bookings, nil, f.log).Execute(context.Background(), poster, UpdateBookingInput{
		BookingID: b.ID,
		Version:   &stale,
		StartTime: at(10),
	})
	assert.ErrorIs(t, err, domain.ErrStaleBooking)
}

func TestUpdateBooking_Status(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	update := NewUpdateBooking(f.bookings, nil, f.log)
	b := f.seed(worker.ID, 9, 12, domain.StatusInProgress)

	disputed := domain.StatusDisputed
	_, err := update.Execute(ctx, poster, UpdateBookingInput{BookingID: b.ID, Status: &disputed})
	assert.ErrorIs(t, err, domain.ErrStatusChangeRejected)

	cancelled := domain.StatusCancelled
	got, err := update.Execute(ctx, poster, UpdateBookingInput{BookingID: b.ID, Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)

	// Only scheduled or in-progress bookings can be rescheduled.
	_, err = update.Execute(ctx, poster, UpdateBookingInput{BookingID: b.ID, StartTime: at(10)})
	assert.ErrorIs(t, err, domain.ErrCannotReschedule)
}

func TestRemoveBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	remove := NewRemoveBooking(f.bookings, nil, f.log).WithClock(f.clock)

	b := f.seed(worker.ID, 9, 12, domain.StatusScheduled)
	assert.ErrorIs(t, remove.Execute(ctx, worker, b.ID), domain.ErrNotPoster)
	require.NoError(t, remove.Execute(ctx, poster, b.ID))

	stored, ok := f.store.Booking(b.ID)
	require.True(t, ok, "row is kept")
	require.NotNil(t, stored.DeletedAt)
	assert.Equal(t, fixedNow, *stored.DeletedAt)

	_, err := NewGetBooking(f.bookings).Execute(ctx, poster, b.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	disputed := f.seed(worker.ID, 13, 14, domain.StatusDisputed)
	assert.ErrorIs(t, remove.Execute(ctx, admin, disputed.ID), domain.ErrCannotRemoveDisputed)
}

func TestGetAndListBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	active := f.seed(worker.ID, 9, 12, domain.StatusScheduled)
	f.seed(worker.ID, 13, 14, domain.StatusCancelled)

	got, err := NewGetBooking(f.bookings).Execute(ctx, worker, active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	_, err = NewGetBooking(f.bookings).Execute(ctx, outside, active.ID)
	assert.ErrorIs(t, err, domain.ErrNotParticipant)

	list := NewListBookings(f.bookings)

	mine, err := list.Execute(ctx, worker, ListBookingsInput{As: ListAsWorker})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := list.Execute(ctx, worker, ListBookingsInput{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	posted, err := list.Execute(ctx, poster, ListBookingsInput{As: ListAsPoster})
	require.NoError(t, err)
	assert.Len(t, posted, 1)

	none, err := list.Execute(ctx, poster, ListBookingsInput{As: ListAsWorker})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	check := NewCheckAvailability(f.bookings, f.users)
	existing := f.seed(worker.ID, 9, 12, domain.StatusScheduled)

	got, err := check.Execute(ctx, worker.ID, *at(11), *at(13))
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, []uint{existing.ID}, got.Conflicting)

	got, err = check.Execute(ctx, worker.ID, *at(12), *at(14))
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Empty(t, got.Conflicting)

	_, err = check.Execute(ctx, "ghost", *at(12), *at(14))
	assert.ErrorIs(t, err, domain.ErrWorkerNotFound)

	_, err = check.Execute(ctx, worker.ID, *at(12), at(12).Add(-time.Minute))
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)
}

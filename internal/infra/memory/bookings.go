package memory

import (
	"context"
	"sort"
	"time"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type BookingRepo struct {
	s    *Store
	held bool

	// Fault injection for tests.
	BeforeWrite func(b *models.Booking) error
}

func NewBookingRepo(s *Store) *BookingRepo {
	return &BookingRepo{s: s}
}

func (r *BookingRepo) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	b, ok := r.s.bookings[id]
	if !ok || b.DeletedAt != nil {
		return nil, booking.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepo) FindOverlapping(
	ctx context.Context,
	workerID string,
	start time.Time,
	end time.Time,
	excludeID *uint,
) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	var forWorker []models.Booking
	for _, b := range r.s.bookings {
		if b.WorkerID == workerID {
			forWorker = append(forWorker, b)
		}
	}
	out := booking.Conflicts(forWorker, booking.Interval{Start: start, End: end}, excludeID)
	sortByStart(out)
	return out, nil
}

func (r *BookingRepo) ListByWorker(ctx context.Context, workerID string, includeCancelled bool) ([]models.Booking, error) {
	return r.list(ctx, includeCancelled, func(b models.Booking) bool { return b.WorkerID == workerID })
}

func (r *BookingRepo) ListByPoster(ctx context.Context, posterID string, includeCancelled bool) ([]models.Booking, error) {
	return r.list(ctx, includeCancelled, func(b models.Booking) bool { return b.PosterID == posterID })
}

func (r *BookingRepo) list(ctx context.Context, includeCancelled bool, match func(models.Booking) bool) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	var out []models.Booking
	for _, b := range r.s.bookings {
		if b.DeletedAt != nil || !match(b) {
			continue
		}
		if !includeCancelled && booking.Status(b.Status) == booking.StatusCancelled {
			continue
		}
		out = append(out, b)
	}
	sortByStart(out)
	return out, nil
}

func (r *BookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.BeforeWrite != nil {
		if err := r.BeforeWrite(b); err != nil {
			return err
		}
	}
	defer r.s.guard(r.held)()

	r.s.nextBooking++
	b.ID = r.s.nextBooking
	if b.Version == 0 {
		b.Version = 1
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	b.UpdatedAt = b.CreatedAt
	r.s.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepo) Update(ctx context.Context, b *models.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.BeforeWrite != nil {
		if err := r.BeforeWrite(b); err != nil {
			return err
		}
	}
	defer r.s.guard(r.held)()

	stored, ok := r.s.bookings[b.ID]
	if !ok || stored.DeletedAt != nil || stored.Version != b.Version {
		return booking.ErrVersionConflict
	}
	b.Version++
	b.UpdatedAt = time.Now().UTC()
	r.s.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepo) Remove(ctx context.Context, b *models.Booking, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.s.guard(r.held)()

	stored, ok := r.s.bookings[b.ID]
	if !ok || stored.DeletedAt != nil || stored.Version != b.Version {
		return booking.ErrVersionConflict
	}
	stored.DeletedAt = &at
	stored.Version++
	r.s.bookings[b.ID] = stored
	b.DeletedAt = &at
	b.Version = stored.Version
	return nil
}

func (r *BookingRepo) WithWorkerLock(
	ctx context.Context,
	workerID string,
	fn func(tx booking.Repository) error,
) error {
	if r.held {
		if _, ok := r.s.users[workerID]; !ok {
			return user.ErrNotFound
		}
		return fn(r)
	}
	return r.s.atomically(ctx, func() error {
		if _, ok := r.s.users[workerID]; !ok {
			return user.ErrNotFound
		}
		return fn(&BookingRepo{s: r.s, held: true, BeforeWrite: r.BeforeWrite})
	})
}

func sortByStart(bs []models.Booking) {
	sort.SliceStable(bs, func(i, j int) bool {
		a, b := bs[i].StartTime, bs[j].StartTime
		switch {
		case a == nil && b == nil:
			return bs[i].ID < bs[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Before(*b)
	})
}

var _ booking.Repository = (*BookingRepo)(nil)

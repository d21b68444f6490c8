package memory

import (
	"context"
	"time"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/dispute"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type DisputeRepo struct {
	s    *Store
	held bool
}

func NewDisputeRepo(s *Store) *DisputeRepo {
	return &DisputeRepo{s: s}
}

func (r *DisputeRepo) ExistsForBooking(ctx context.Context, bookingID uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	defer r.s.guard(r.held)()

	for _, d := range r.s.disputes {
		if d.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *DisputeRepo) GetByID(ctx context.Context, id uint) (*models.Dispute, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	d, ok := r.s.disputes[id]
	if !ok {
		return nil, dispute.ErrNotFound
	}
	return &d, nil
}

// GetByIDForUpdate is GetByID; WithinTx already holds the store lock.
func (r *DisputeRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Dispute, error) {
	return r.GetByID(ctx, id)
}

func (r *DisputeRepo) GetByIDWithParties(ctx context.Context, id uint) (*models.Dispute, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	d, ok := r.s.disputes[id]
	if !ok {
		return nil, dispute.ErrNotFound
	}
	r.attachParties(&d)
	return &d, nil
}

func (r *DisputeRepo) attachParties(d *models.Dispute) {
	if b, ok := r.s.bookings[d.BookingID]; ok {
		if t, ok := r.s.tasks[b.TaskID]; ok {
			b.Task = &t
		}
		b.Worker = r.userPtr(b.WorkerID)
		b.Poster = r.userPtr(b.PosterID)
		d.Booking = &b
	}
	d.RaisedByUser = r.userPtr(d.RaisedBy)
	if d.ResolvedBy != nil {
		d.ResolvedByUser = r.userPtr(*d.ResolvedBy)
	}
}

func (r *DisputeRepo) userPtr(id string) *models.User {
	u, ok := r.s.users[id]
	if !ok {
		return nil
	}
	return &u
}

func (r *DisputeRepo) List(ctx context.Context, status *dispute.Status) ([]models.Dispute, error) {
	return r.filter(ctx, func(d models.Dispute) bool {
		return status == nil || d.Status == string(*status)
	})
}

func (r *DisputeRepo) ListByUser(ctx context.Context, userID string) ([]models.Dispute, error) {
	return r.filter(ctx, func(d models.Dispute) bool { return d.RaisedBy == userID })
}

func (r *DisputeRepo) filter(ctx context.Context, match func(models.Dispute) bool) ([]models.Dispute, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	var out []models.Dispute
	for _, d := range r.s.disputes {
		if match(d) {
			r.attachParties(&d)
			out = append(out, d)
		}
	}
	byNewest(out, func(d models.Dispute) time.Time { return d.CreatedAt })
	return out, nil
}

func (r *DisputeRepo) CountByStatus(ctx context.Context, status dispute.Status) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	defer r.s.guard(r.held)()

	var n int64
	for _, d := range r.s.disputes {
		if d.Status == string(status) {
			n++
		}
	}
	return n, nil
}

func (r *DisputeRepo) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	defer r.s.guard(r.held)()
	return int64(len(r.s.disputes)), nil
}

func (r *DisputeRepo) Create(ctx context.Context, d *models.Dispute) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.s.guard(r.held)()

	for _, existing := range r.s.disputes {
		if existing.BookingID == d.BookingID {
			return dispute.ErrAlreadyExists
		}
	}
	r.s.nextDispute++
	d.ID = r.s.nextDispute
	stored := *d
	stored.Booking, stored.RaisedByUser, stored.ResolvedByUser = nil, nil, nil
	r.s.disputes[d.ID] = stored
	return nil
}

func (r *DisputeRepo) Update(ctx context.Context, d *models.Dispute) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.s.guard(r.held)()

	current, ok := r.s.disputes[d.ID]
	if !ok {
		return dispute.ErrNotFound
	}
	if dispute.Status(current.Status) == dispute.StatusResolved {
		return dispute.ErrClosed
	}
	stored := *d
	stored.Booking, stored.RaisedByUser, stored.ResolvedByUser = nil, nil, nil
	r.s.disputes[d.ID] = stored
	return nil
}

func (r *DisputeRepo) WithinTx(
	ctx context.Context,
	fn func(tx dispute.Repository, bookings booking.Repository) error,
) error {
	if r.held {
		return fn(r, &BookingRepo{s: r.s, held: true})
	}
	return r.s.atomically(ctx, func() error {
		return fn(&DisputeRepo{s: r.s, held: true}, &BookingRepo{s: r.s, held: true})
	})
}

var _ dispute.Repository = (*DisputeRepo)(nil)

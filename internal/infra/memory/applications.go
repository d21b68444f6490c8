package memory

import (
	"context"
	"time"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/task"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type ApplicationRepo struct {
	s    *Store
	held bool
}

func NewApplicationRepo(s *Store) *ApplicationRepo {
	return &ApplicationRepo{s: s}
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uint) (*models.TaskApplication, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	a, ok := r.s.apps[id]
	if !ok {
		return nil, task.ErrApplicationNotFound
	}
	return &a, nil
}

func (r *ApplicationRepo) Respond(ctx context.Context, a *models.TaskApplication) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.s.guard(r.held)()

	stored, ok := r.s.apps[a.ID]
	if !ok || task.ApplicationStatus(stored.Status) != task.ApplicationPending {
		return task.ErrApplicationAnswered
	}
	stored.Status = a.Status
	stored.RejectionReason = a.RejectionReason
	stored.RespondedAt = a.RespondedAt
	stored.UpdatedAt = time.Now().UTC()
	r.s.apps[a.ID] = stored
	return nil
}

func (r *ApplicationRepo) RejectPending(
	ctx context.Context,
	taskID uint,
	keepID uint,
	reason string,
	at time.Time,
) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	defer r.s.guard(r.held)()

	var n int64
	for id, a := range r.s.apps {
		if a.TaskID != taskID || id == keepID || task.ApplicationStatus(a.Status) != task.ApplicationPending {
			continue
		}
		why := reason
		a.Status = string(task.ApplicationRejected)
		a.RejectionReason = &why
		a.RespondedAt = &at
		a.UpdatedAt = at
		r.s.apps[id] = a
		n++
	}
	return n, nil
}

func (r *ApplicationRepo) WithWorkerLock(
	ctx context.Context,
	workerID string,
	fn func(tx task.ApplicationRepository, tasks task.Repository, bookings booking.Repository) error,
) error {
	run := func() error {
		if _, ok := r.s.users[workerID]; !ok {
			return user.ErrNotFound
		}
		return fn(
			&ApplicationRepo{s: r.s, held: true},
			&TaskRepo{s: r.s, held: true},
			&BookingRepo{s: r.s, held: true},
		)
	}
	if r.held {
		return run()
	}
	return r.s.atomically(ctx, run)
}

var _ task.ApplicationRepository = (*ApplicationRepo)(nil)

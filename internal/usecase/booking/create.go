package booking

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/task"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
	"github.com/taskhub/labor-marketplace/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	TaskID     uint
	WorkerID   string
	AgreedRate float64
	StartTime  *time.Time
	EndTime    *time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	bookings domain.Repository
	tasks    task.Repository
	users    user.Repository
	audit    *audit.Dispatcher
	log      logrus.FieldLogger
	now      timezone.Clock
}

func NewCreateBooking(
	bookings domain.Repository,
	tasks task.Repository,
	users user.Repository,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *CreateBooking {
	return &CreateBooking{
		bookings: bookings,
		tasks:    tasks,
		users:    users,
		audit:    audit,
		log:      log,
		now:      timezone.Now,
	}
}

func (uc *CreateBooking) WithClock(clock timezone.Clock) *CreateBooking {
	uc.now = clock
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	actor user.Actor,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Task and ownership
	// --------------------------------------------------
	t, err := uc.tasks.GetByID(ctx, in.TaskID)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	if t.PosterID != actor.ID && !actor.IsAdmin() {
		return nil, domain.ErrNotPoster
	}

	// --------------------------------------------------
	// Worker
	// --------------------------------------------------
	worker, err := uc.users.GetByID(ctx, in.WorkerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, err
	}
	if !user.RolesOf(worker).Has(user.RoleWorker) {
		return nil, domain.ErrNotAWorker
	}

	b, err := domain.New(domain.NewBooking{
		TaskID:     t.ID,
		WorkerID:   worker.ID,
		PosterID:   t.PosterID,
		AgreedRate: in.AgreedRate,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
	}, uc.now())
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Overlap check and insert under the worker lock
	// --------------------------------------------------
	err = uc.bookings.WithWorkerLock(ctx, worker.ID, func(tx domain.Repository) error {
		if err := ensureAvailable(ctx, tx, b, nil); err != nil {
			return err
		}
		return tx.Create(ctx, b)
	})
	if err != nil {
		return nil, writeErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"task_id":   b.TaskID,
			"worker_id": b.WorkerID,
		},
	})

	uc.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"worker_id":  b.WorkerID,
		"user_id":    actor.ID,
	}).Info("booking created")

	return b, nil
}

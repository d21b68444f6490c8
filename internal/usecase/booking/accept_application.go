package booking

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/task"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
	"github.com/taskhub/labor-marketplace/internal/timezone"
)

// AcceptApplication turns a pending application into a booking for the
// task's dates. The task is assigned and every other pending application
// on it is rejected in the same transaction.
type AcceptApplication struct {
	apps  task.ApplicationRepository
	tasks task.Repository
	users user.Repository
	audit *audit.Dispatcher
	log   logrus.FieldLogger
	now   timezone.Clock
}

func NewAcceptApplication(
	apps task.ApplicationRepository,
	tasks task.Repository,
	users user.Repository,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *AcceptApplication {
	return &AcceptApplication{
		apps:  apps,
		tasks: tasks,
		users: users,
		audit: audit,
		log:   log,
		now:   timezone.Now,
	}
}

func (uc *AcceptApplication) WithClock(clock timezone.Clock) *AcceptApplication {
	uc.now = clock
	return uc
}

func (uc *AcceptApplication) Execute(
	ctx context.Context,
	actor user.Actor,
	applicationID uint,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Application, task and ownership
	// --------------------------------------------------
	app, err := uc.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, task.ErrApplicationNotFound) {
			return nil, task.ErrApplicationMissing
		}
		return nil, err
	}

	t, err := uc.tasks.GetByID(ctx, app.TaskID)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	if t.PosterID != actor.ID && !actor.IsAdmin() {
		return nil, domain.ErrNotPoster
	}
	if err := task.CanAccept(app, t); err != nil {
		return nil, err
	}

	worker, err := uc.users.GetByID(ctx, app.WorkerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, err
	}
	if !user.RolesOf(worker).Has(user.RoleWorker) {
		return nil, domain.ErrNotAWorker
	}

	now := uc.now()
	b, err := domain.New(domain.NewBooking{
		TaskID:     t.ID,
		WorkerID:   worker.ID,
		PosterID:   t.PosterID,
		AgreedRate: app.ProposedBudget,
		StartTime:  t.StartDate,
		EndTime:    t.DueDate,
	}, now)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Booking, assignment and responses in one transaction
	// --------------------------------------------------
	var rejected int64
	err = uc.apps.WithWorkerLock(ctx, worker.ID, func(
		tx task.ApplicationRepository,
		tasks task.Repository,
		bookings domain.Repository,
	) error {
		if err := ensureAvailable(ctx, bookings, b, nil); err != nil {
			return err
		}
		if err := bookings.Create(ctx, b); err != nil {
			return err
		}

		if err := tasks.Assign(ctx, t.ID, now); err != nil {
			return err
		}

		app.Status = string(task.ApplicationAccepted)
		app.RespondedAt = &now
		if err := tx.Respond(ctx, app); err != nil {
			return err
		}

		n, err := tx.RejectPending(ctx, t.ID, app.ID, task.RejectedForOther, now)
		rejected = n
		return err
	})
	if err != nil {
		return nil, acceptErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "application_accepted",
		Entity:   "task_application",
		EntityID: &app.ID,
		Metadata: map[string]any{
			"task_id":    t.ID,
			"booking_id": b.ID,
			"worker_id":  b.WorkerID,
			"rejected":   rejected,
		},
	})

	uc.log.WithFields(logrus.Fields{
		"application_id": app.ID,
		"booking_id":     b.ID,
		"task_id":        t.ID,
		"user_id":        actor.ID,
	}).Info("application accepted")

	return b, nil
}

// acceptErr maps the in-transaction failures of an accept. A concurrent
// accept shows up as a task that is no longer open or an application
// that was answered in the meantime.
func acceptErr(err error) error {
	switch {
	case errors.Is(err, task.ErrNotOpen):
		return task.ErrTaskNotOpen
	case errors.Is(err, task.ErrNotFound):
		return domain.ErrTaskNotFound
	case errors.Is(err, task.ErrApplicationAnswered):
		return task.ErrApplicationProcessed
	}
	return writeErr(err)
}

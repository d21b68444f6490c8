package booking

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/infra/memory"
	"github.com/taskhub/labor-marketplace/internal/models"
	"github.com/taskhub/labor-marketplace/internal/timezone"
)

var (
	poster  = user.Actor{ID: "poster-1", Roles: user.RolePoster}
	worker  = user.Actor{ID: "worker-1", Roles: user.RoleWorker}
	worker2 = user.Actor{ID: "worker-2", Roles: user.RoleWorker}
	admin   = user.Actor{ID: "admin-1", Roles: user.RoleAdmin}
	both    = user.Actor{ID: "both-1", Roles: user.RoleWorker | user.RolePoster}
	outside = user.Actor{ID: "poster-2", Roles: user.RolePoster}

	fixedNow = time.Date(2024, 1, 9, 8, 0, 0, 0, time.UTC)
)

type fixture struct {
	store    *memory.Store
	bookings *memory.BookingRepo
	tasks    *memory.TaskRepo
	apps     *memory.ApplicationRepo
	users    *memory.UserRepo
	log      logrus.FieldLogger
	clock    timezone.Clock

	task     models.Task
	bothTask models.Task
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := memory.NewStore()
	for _, a := range []user.Actor{poster, worker, worker2, admin, both, outside} {
		s.PutUser(models.User{
			ID:    a.ID,
			Name:  a.ID,
			Email: a.ID + "@example.com",
			Roles: uint8(a.Roles),
		})
	}

	log, _ := test.NewNullLogger()

	return &fixture{
		store:    s,
		bookings: memory.NewBookingRepo(s),
		tasks:    memory.NewTaskRepo(s),
		apps:     memory.NewApplicationRepo(s),
		users:    memory.NewUserRepo(s),
		log:      log,
		clock:    timezone.Fixed(fixedNow),
		task:     s.PutTask(models.Task{PosterID: poster.ID, Title: "Paint the fence", Status: "open"}),
		bothTask: s.PutTask(models.Task{PosterID: both.ID, Title: "Move boxes", Status: "open"}),
	}
}

// at returns 2024-01-10 at the given hour, UTC.
func at(hour int) *time.Time {
	t := time.Date(2024, 1, 10, hour, 0, 0, 0, time.UTC)
	return &t
}

func (f *fixture) seed(workerID string, start, end int, status domain.Status) models.Booking {
	return f.store.PutBooking(models.Booking{
		TaskID:     f.task.ID,
		WorkerID:   workerID,
		PosterID:   poster.ID,
		AgreedRate: 50,
		StartTime:  at(start),
		EndTime:    at(end),
		Status:     string(status),
	})
}

func (f *fixture) create() *CreateBooking {
	return NewCreateBooking(f.bookings, f.tasks, f.users, nil, f.log).WithClock(f.clock)
}

func (f *fixture) input(workerID string, start, end int) CreateBookingInput {
	return CreateBookingInput{
		TaskID:     f.task.ID,
		WorkerID:   workerID,
		AgreedRate: 80,
		StartTime:  at(start),
		EndTime:    at(end),
	}
}

func (f *fixture) accept() *AcceptApplication {
	return NewAcceptApplication(f.apps, f.tasks, f.users, nil, f.log).WithClock(f.clock)
}

// datedTask seeds an open task of poster running from start to end on
// 2024-01-10.
func (f *fixture) datedTask(start, end int) models.Task {
	return f.store.PutTask(models.Task{
		PosterID:  poster.ID,
		Title:     "Assemble shelves",
		Status:    "open",
		StartDate: at(start),
		DueDate:   at(end),
	})
}

func (f *fixture) apply(taskID uint, workerID string, budget float64) models.TaskApplication {
	return f.store.PutApplication(models.TaskApplication{
		TaskID:         taskID,
		WorkerID:       workerID,
		ProposedBudget: budget,
	})
}

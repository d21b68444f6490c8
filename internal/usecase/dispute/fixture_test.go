package dispute

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/infra/memory"
	"github.com/taskhub/labor-marketplace/internal/models"
	"github.com/taskhub/labor-marketplace/internal/timezone"
)

var (
	worker  = user.Actor{ID: "worker-1", Roles: user.RoleWorker}
	poster  = user.Actor{ID: "poster-1", Roles: user.RolePoster}
	admin   = user.Actor{ID: "admin-1", Roles: user.RoleAdmin}
	outside = user.Actor{ID: "worker-2", Roles: user.RoleWorker}

	// Booking end used throughout: 2024-02-01 10:00 UTC.
	endedAt = time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	validReason = "The poster refused to confirm work that was delivered in full."
)

type fixture struct {
	store    *memory.Store
	disputes *memory.DisputeRepo
	bookings *memory.BookingRepo
	log      logrus.FieldLogger
	task     models.Task
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := memory.NewStore()
	for _, a := range []user.Actor{worker, poster, admin, outside} {
		s.PutUser(models.User{ID: a.ID, Name: a.ID, Email: a.ID + "@example.com", Roles: uint8(a.Roles)})
	}
	log, _ := test.NewNullLogger()

	return &fixture{
		store:    s,
		disputes: memory.NewDisputeRepo(s),
		bookings: memory.NewBookingRepo(s),
		log:      log,
		task:     s.PutTask(models.Task{PosterID: poster.ID, Title: "Assemble shelves", Status: "open"}),
	}
}

func (f *fixture) booking(status booking.Status) models.Booking {
	start := endedAt.Add(-3 * time.Hour)
	end := endedAt
	return f.store.PutBooking(models.Booking{
		TaskID:     f.task.ID,
		WorkerID:   worker.ID,
		PosterID:   poster.ID,
		AgreedRate: 120,
		StartTime:  &start,
		EndTime:    &end,
		Status:     string(status),
	})
}

func (f *fixture) raise(after time.Duration) *RaiseDispute {
	return NewRaiseDispute(f.disputes, nil, f.log, 0).WithClock(timezone.Fixed(endedAt.Add(after)))
}

func (f *fixture) canRaise(after time.Duration) *CanRaiseDispute {
	return NewCanRaiseDispute(f.disputes, f.bookings, 0).WithClock(timezone.Fixed(endedAt.Add(after)))
}

func (f *fixture) resolver() *ResolveDispute {
	return NewResolveDispute(f.disputes, nil, f.log).WithClock(timezone.Fixed(endedAt.Add(72 * time.Hour)))
}

func pct(v int) *int { return &v }

func actorWithID(id string) user.Actor {
	return user.Actor{ID: id}
}

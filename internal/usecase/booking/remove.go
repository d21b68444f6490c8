package booking

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/timezone"
)

// RemoveBooking soft-deletes a booking. The row stays in storage with
// deleted_at set and disappears from every read.
type RemoveBooking struct {
	bookings domain.Repository
	audit    *audit.Dispatcher
	log      logrus.FieldLogger
	now      timezone.Clock
}

func NewRemoveBooking(
	bookings domain.Repository,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *RemoveBooking {
	return &RemoveBooking{
		bookings: bookings,
		audit:    audit,
		log:      log,
		now:      timezone.Now,
	}
}

func (uc *RemoveBooking) WithClock(clock timezone.Clock) *RemoveBooking {
	uc.now = clock
	return uc
}

func (uc *RemoveBooking) Execute(
	ctx context.Context,
	actor user.Actor,
	bookingID uint,
) error {

	b, err := uc.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return loadErr(err)
	}
	if !canManage(b, actor) {
		return domain.ErrNotPoster
	}
	if domain.Status(b.Status) == domain.StatusDisputed {
		return domain.ErrCannotRemoveDisputed
	}

	if err := uc.bookings.Remove(ctx, b, uc.now()); err != nil {
		return writeErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "booking_removed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"user_id":    actor.ID,
	}).Info("booking removed")

	return nil
}

package booking

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

// UpdateBookingInput reschedules a booking. Nil fields keep their stored
// value. Version, when set, must match the stored version.
type UpdateBookingInput struct {
	BookingID  uint
	Version    *uint
	StartTime  *time.Time
	EndTime    *time.Time
	AgreedRate *float64
	Status     *domain.Status
}

type UpdateBooking struct {
	bookings domain.Repository
	audit    *audit.Dispatcher
	log      logrus.FieldLogger
}

func NewUpdateBooking(
	bookings domain.Repository,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *UpdateBooking {
	return &UpdateBooking{
		bookings: bookings,
		audit:    audit,
		log:      log,
	}
}

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	actor user.Actor,
	in UpdateBookingInput,
) (*models.Booking, error) {

	current, err := uc.bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, loadErr(err)
	}
	if !canManage(current, actor) {
		return nil, domain.ErrNotPoster
	}

	var updated *models.Booking
	err = uc.bookings.WithWorkerLock(ctx, current.WorkerID, func(tx domain.Repository) error {
		// Re-read under the lock so the version check sees the latest row.
		b, err := tx.GetByID(ctx, in.BookingID)
		if err != nil {
			return err
		}
		if in.Version != nil && *in.Version != b.Version {
			return domain.ErrVersionConflict
		}

		start, end, rate := b.StartTime, b.EndTime, b.AgreedRate
		if in.StartTime != nil {
			start = in.StartTime
		}
		if in.EndTime != nil {
			end = in.EndTime
		}
		if in.AgreedRate != nil {
			rate = *in.AgreedRate
		}

		if err := domain.Reschedule(b, start, end, rate); err != nil {
			return err
		}
		if in.Status != nil {
			if err := domain.ChangeStatus(b, *in.Status); err != nil {
				return err
			}
		}

		if err := ensureAvailable(ctx, tx, b, &b.ID); err != nil {
			return err
		}
		if err := tx.Update(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, writeErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "booking_rescheduled",
		Entity:   "booking",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"status":  updated.Status,
			"version": updated.Version,
		},
	})

	uc.log.WithFields(logrus.Fields{
		"booking_id": updated.ID,
		"status":     updated.Status,
		"user_id":    actor.ID,
	}).Info("booking rescheduled")

	return updated, nil
}

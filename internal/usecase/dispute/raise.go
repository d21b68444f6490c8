package dispute

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	domain "github.com/taskhub/labor-marketplace/internal/domain/dispute"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
	"github.com/taskhub/labor-marketplace/internal/timezone"
)

type RaiseDisputeInput struct {
	BookingID uint
	Reason    string
}

type RaiseDispute struct {
	disputes domain.Repository
	audit    *audit.Dispatcher
	log      logrus.FieldLogger
	now      timezone.Clock
	window   time.Duration
}

func NewRaiseDispute(
	disputes domain.Repository,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
	window time.Duration,
) *RaiseDispute {
	if window <= 0 {
		window = domain.DefaultWindow
	}
	return &RaiseDispute{
		disputes: disputes,
		audit:    audit,
		log:      log,
		now:      timezone.Now,
		window:   window,
	}
}

func (uc *RaiseDispute) WithClock(clock timezone.Clock) *RaiseDispute {
	uc.now = clock
	return uc
}

// Execute re-checks eligibility inside the transaction that creates the
// dispute and flips the booking, so the check and both writes commit
// together.
func (uc *RaiseDispute) Execute(
	ctx context.Context,
	actor user.Actor,
	in RaiseDisputeInput,
) (*models.Dispute, error) {

	now := uc.now()
	var created *models.Dispute

	err := uc.disputes.WithinTx(ctx, func(tx domain.Repository, bookings booking.Repository) error {
		b, err := bookings.GetByID(ctx, in.BookingID)
		if err != nil && !errors.Is(err, booking.ErrNotFound) {
			return err
		}

		exists := false
		if b != nil {
			if exists, err = tx.ExistsForBooking(ctx, b.ID); err != nil {
				return err
			}
		}

		if err := domain.CheckEligibility(b, actor.ID, exists, now, uc.window); err != nil {
			return err
		}

		reason, err := domain.ValidateReason(in.Reason)
		if err != nil {
			return err
		}

		d := domain.New(b.ID, actor.ID, reason, now)
		if err := tx.Create(ctx, d); err != nil {
			return err
		}

		if err := booking.MarkDisputed(b); err != nil {
			return err
		}
		if err := bookings.Update(ctx, b); err != nil {
			return err
		}

		created = d
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "dispute_raised",
		Entity:   "dispute",
		EntityID: &created.ID,
		Metadata: map[string]uint{"booking_id": created.BookingID},
	})

	uc.log.WithFields(logrus.Fields{
		"dispute_id": created.ID,
		"booking_id": created.BookingID,
		"user_id":    actor.ID,
	}).Info("dispute raised")

	return created, nil
}

package dispute

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	domain "github.com/taskhub/labor-marketplace/internal/domain/dispute"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
	"github.com/taskhub/labor-marketplace/internal/timezone"
)

type ResolveDisputeInput struct {
	DisputeID        uint
	Type             domain.ResolutionType
	Notes            string
	WorkerPercentage *int
}

type ResolveDispute struct {
	disputes domain.Repository
	audit    *audit.Dispatcher
	log      logrus.FieldLogger
	now      timezone.Clock
}

func NewResolveDispute(
	disputes domain.Repository,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *ResolveDispute {
	return &ResolveDispute{
		disputes: disputes,
		audit:    audit,
		log:      log,
		now:      timezone.Now,
	}
}

func (uc *ResolveDispute) WithClock(clock timezone.Clock) *ResolveDispute {
	uc.now = clock
	return uc
}

// Execute closes the dispute and returns its booking to Completed in one
// transaction.
func (uc *ResolveDispute) Execute(
	ctx context.Context,
	actor user.Actor,
	in ResolveDisputeInput,
) (*models.Dispute, error) {

	if !actor.IsAdmin() {
		return nil, domain.ErrAdminOnly
	}

	now := uc.now()
	var resolved *models.Dispute

	err := uc.disputes.WithinTx(ctx, func(tx domain.Repository, bookings booking.Repository) error {
		d, err := tx.GetByIDForUpdate(ctx, in.DisputeID)
		if err != nil {
			return err
		}

		if err := domain.Resolve(d, domain.Resolution{
			Type:             in.Type,
			Notes:            in.Notes,
			WorkerPercentage: in.WorkerPercentage,
			AdminID:          actor.ID,
		}, now); err != nil {
			return err
		}

		if err := tx.Update(ctx, d); err != nil {
			return err
		}

		b, err := bookings.GetByID(ctx, d.BookingID)
		if err != nil {
			return err
		}
		if err := booking.RestoreCompleted(b); err != nil {
			return err
		}
		if err := bookings.Update(ctx, b); err != nil {
			return err
		}

		resolved = d
		return nil
	})
	if errors.Is(err, domain.ErrClosed) {
		return nil, domain.ErrAlreadyResolved
	}
	if err != nil {
		return nil, mapErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "dispute_resolved",
		Entity:   "dispute",
		EntityID: &resolved.ID,
		Metadata: map[string]any{
			"resolution_type":   *resolved.ResolutionType,
			"worker_percentage": *resolved.WorkerPercentage,
		},
	})

	uc.log.WithFields(logrus.Fields{
		"dispute_id":        resolved.ID,
		"booking_id":        resolved.BookingID,
		"resolution_type":   *resolved.ResolutionType,
		"worker_percentage": *resolved.WorkerPercentage,
		"user_id":           actor.ID,
	}).Info("dispute resolved")

	return resolved, nil
}

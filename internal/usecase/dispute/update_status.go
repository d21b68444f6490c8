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

type UpdateDisputeStatus struct {
	disputes domain.Repository
	audit    *audit.Dispatcher
	log      logrus.FieldLogger
	now      timezone.Clock
}

func NewUpdateDisputeStatus(
	disputes domain.Repository,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *UpdateDisputeStatus {
	return &UpdateDisputeStatus{
		disputes: disputes,
		audit:    audit,
		log:      log,
		now:      timezone.Now,
	}
}

func (uc *UpdateDisputeStatus) WithClock(clock timezone.Clock) *UpdateDisputeStatus {
	uc.now = clock
	return uc
}

func (uc *UpdateDisputeStatus) Execute(
	ctx context.Context,
	actor user.Actor,
	disputeID uint,
	status domain.Status,
) (*models.Dispute, error) {

	if !actor.IsAdmin() {
		return nil, domain.ErrAdminOnly
	}

	var (
		d    *models.Dispute
		from string
	)
	err := uc.disputes.WithinTx(ctx, func(tx domain.Repository, _ booking.Repository) error {
		var err error
		if d, err = tx.GetByIDForUpdate(ctx, disputeID); err != nil {
			return err
		}

		from = d.Status
		if err := domain.ChangeStatus(d, status, uc.now()); err != nil {
			return err
		}
		return tx.Update(ctx, d)
	})
	if errors.Is(err, domain.ErrClosed) {
		return nil, domain.ErrCannotUpdateResolved
	}
	if err != nil {
		return nil, mapErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "dispute_status_changed",
		Entity:   "dispute",
		EntityID: &d.ID,
		Metadata: map[string]string{
			"from": from,
			"to":   d.Status,
		},
	})

	uc.log.WithFields(logrus.Fields{
		"dispute_id": d.ID,
		"status":     d.Status,
		"user_id":    actor.ID,
	}).Info("dispute status changed")

	return d, nil
}

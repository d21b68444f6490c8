package booking

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

// transition is the shared read, guard, versioned write path for the
// status-only operations. The guard mutates b in place.
type transition struct {
	bookings domain.Repository
	audit    *audit.Dispatcher
	log      logrus.FieldLogger

	action string
	guard  func(b *models.Booking, actor user.Actor) error
}

func (t *transition) run(
	ctx context.Context,
	actor user.Actor,
	bookingID uint,
) (*models.Booking, error) {

	b, err := t.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, loadErr(err)
	}

	from := b.Status
	if err := t.guard(b, actor); err != nil {
		return nil, err
	}

	if err := t.bookings.Update(ctx, b); err != nil {
		return nil, writeErr(err)
	}

	t.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   t.action,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{
			"from": from,
			"to":   b.Status,
		},
	})

	t.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"status":     b.Status,
		"user_id":    actor.ID,
		"action":     t.action,
	}).Info("booking status changed")

	return b, nil
}

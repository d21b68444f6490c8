package booking

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type CancelBooking struct {
	t transition
}

func NewCancelBooking(
	bookings domain.Repository,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *CancelBooking {
	return &CancelBooking{t: transition{
		bookings: bookings,
		audit:    audit,
		log:      log,
		action:   "booking_cancelled",
		guard: func(b *models.Booking, actor user.Actor) error {
			if !actor.IsAdmin() && !domain.IsParticipant(b, actor.ID) {
				return domain.ErrNotParticipant
			}
			return domain.Cancel(b)
		},
	}}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	actor user.Actor,
	bookingID uint,
) (*models.Booking, error) {
	return uc.t.run(ctx, actor, bookingID)
}

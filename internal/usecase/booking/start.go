package booking

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type StartWork struct {
	t transition
}

func NewStartWork(
	bookings domain.Repository,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *StartWork {
	return &StartWork{t: transition{
		bookings: bookings,
		audit:    audit,
		log:      log,
		action:   "booking_started",
		guard: func(b *models.Booking, actor user.Actor) error {
			return domain.Start(b, actor.ID)
		},
	}}
}

func (uc *StartWork) Execute(
	ctx context.Context,
	actor user.Actor,
	bookingID uint,
) (*models.Booking, error) {
	return uc.t.run(ctx, actor, bookingID)
}

package booking

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

// CompleteByPoster is the authoritative completion. Dispute and rating
// windows start from here.
type CompleteByPoster struct {
	t transition
}

func NewCompleteByPoster(
	bookings domain.Repository,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *CompleteByPoster {
	return &CompleteByPoster{t: transition{
		bookings: bookings,
		audit:    audit,
		log:      log,
		action:   "booking_completed",
		guard: func(b *models.Booking, actor user.Actor) error {
			return domain.CompleteByPoster(b, actor.ID)
		},
	}}
}

func (uc *CompleteByPoster) Execute(
	ctx context.Context,
	actor user.Actor,
	bookingID uint,
) (*models.Booking, error) {
	return uc.t.run(ctx, actor, bookingID)
}

package booking

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/taskhub/labor-marketplace/internal/audit"
	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

// CompleteByWorker records the worker's report that the job is done. The
// booking waits for the poster's confirmation afterwards.
type CompleteByWorker struct {
	t transition
}

func NewCompleteByWorker(
	bookings domain.Repository,
	audit *audit.Dispatcher,
	log logrus.FieldLogger,
) *CompleteByWorker {
	return &CompleteByWorker{t: transition{
		bookings: bookings,
		audit:    audit,
		log:      log,
		action:   "booking_completed_by_worker",
		guard: func(b *models.Booking, actor user.Actor) error {
			return domain.CompleteByWorker(b, actor.ID)
		},
	}}
}

func (uc *CompleteByWorker) Execute(
	ctx context.Context,
	actor user.Actor,
	bookingID uint,
) (*models.Booking, error) {
	return uc.t.run(ctx, actor, bookingID)
}

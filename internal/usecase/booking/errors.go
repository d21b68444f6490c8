package booking

import (
	"context"
	"errors"

	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/httperr"
	"github.com/taskhub/labor-marketplace/internal/models"
)

// loadErr maps a repository read failure onto the caller-facing error.
func loadErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrBookingNotFound
	}
	return err
}

// writeErr maps storage write failures onto the caller-facing errors.
func writeErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrVersionConflict):
		return domain.ErrStaleBooking
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrBookingNotFound
	case errors.Is(err, user.ErrNotFound):
		return domain.ErrWorkerNotFound
	case httperr.IsExclusionConflict(err):
		return domain.ErrWorkerUnavailable
	}
	return err
}

// ensureAvailable runs the overlap check for b against the worker's other
// blocking bookings. It must run inside WithWorkerLock.
func ensureAvailable(
	ctx context.Context,
	repo domain.Repository,
	b *models.Booking,
	excludeID *uint,
) error {

	if !domain.Blocks(b) {
		return nil
	}
	iv, ok := domain.IntervalOf(b)
	if !ok {
		return nil
	}

	conflicts, err := repo.FindOverlapping(ctx, b.WorkerID, iv.Start, iv.End, excludeID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return domain.ErrWorkerUnavailable
	}
	return nil
}

func canManage(b *models.Booking, actor user.Actor) bool {
	return actor.IsAdmin() || domain.IsPoster(b, actor.ID)
}

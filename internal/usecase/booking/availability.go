package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
)

type Availability struct {
	WorkerID    string    `json:"worker_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Available   bool      `json:"available"`
	Conflicting []uint    `json:"conflicting_booking_ids"`
}

// CheckAvailability is the read-only view of the same overlap query
// that guards create and reschedule.
type CheckAvailability struct {
	bookings domain.Repository
	users    user.Repository
}

func NewCheckAvailability(
	bookings domain.Repository,
	users user.Repository,
) *CheckAvailability {
	return &CheckAvailability{
		bookings: bookings,
		users:    users,
	}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	workerID string,
	start time.Time,
	end time.Time,
) (*Availability, error) {

	if err := domain.ValidateSchedule(&start, &end); err != nil {
		return nil, err
	}

	if _, err := uc.users.GetByID(ctx, workerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, err
	}

	conflicts, err := uc.bookings.FindOverlapping(ctx, workerID, start.UTC(), end.UTC(), nil)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(conflicts))
	for _, b := range conflicts {
		ids = append(ids, b.ID)
	}

	return &Availability{
		WorkerID:    workerID,
		Start:       start.UTC(),
		End:         end.UTC(),
		Available:   len(ids) == 0,
		Conflicting: ids,
	}, nil
}

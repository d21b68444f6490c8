package booking

import (
	"context"
	"time"

	"github.com/taskhub/labor-marketplace/internal/models"
)

type Repository interface {
	// -------- Reads (removed rows are never returned) --------
	GetByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// FindOverlapping returns the worker's blocking bookings whose range
	// intersects [start, end), skipping excludeID.
	FindOverlapping(
		ctx context.Context,
		workerID string,
		start time.Time,
		end time.Time,
		excludeID *uint,
	) ([]models.Booking, error)

	ListByWorker(
		ctx context.Context,
		workerID string,
		includeCancelled bool,
	) ([]models.Booking, error)

	ListByPoster(
		ctx context.Context,
		posterID string,
		includeCancelled bool,
	) ([]models.Booking, error)

	// -------- Writes --------
	Create(
		ctx context.Context,
		b *models.Booking,
	) error

	// Update persists b only if the stored version still equals b.Version,
	// then bumps b.Version. A mismatch returns ErrVersionConflict.
	Update(
		ctx context.Context,
		b *models.Booking,
	) error

	// Remove marks the row deleted at the given time.
	Remove(
		ctx context.Context,
		b *models.Booking,
		at time.Time,
	) error

	// -------- Serialisation --------

	// WithWorkerLock runs fn in one transaction holding an exclusive lock
	// scoped to the worker, so an overlap check and the write that follows
	// cannot interleave with another writer for the same worker.
	WithWorkerLock(
		ctx context.Context,
		workerID string,
		fn func(tx Repository) error,
	) error
}

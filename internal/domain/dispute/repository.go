package dispute

import (
	"context"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type Repository interface {
	ExistsForBooking(ctx context.Context, bookingID uint) (bool, error)

	GetByID(ctx context.Context, id uint) (*models.Dispute, error)

	// GetByIDForUpdate locks the row until the surrounding WithinTx ends.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Dispute, error)

	// GetByIDWithParties loads the booking, its task, worker and poster,
	// and the raising and resolving users.
	GetByIDWithParties(ctx context.Context, id uint) (*models.Dispute, error)

	// List returns every dispute when status is nil, newest first.
	List(ctx context.Context, status *Status) ([]models.Dispute, error)
	ListByUser(ctx context.Context, userID string) ([]models.Dispute, error)

	CountByStatus(ctx context.Context, status Status) (int64, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, d *models.Dispute) error
	// Update never overwrites a resolved row; it returns ErrClosed instead.
	Update(ctx context.Context, d *models.Dispute) error

	// WithinTx runs fn in one transaction; writes through either
	// repository commit or roll back together.
	WithinTx(ctx context.Context, fn func(tx Repository, bookings booking.Repository) error) error
}

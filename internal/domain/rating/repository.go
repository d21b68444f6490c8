package rating

import (
	"context"

	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type Repository interface {
	FindByTriple(ctx context.Context, raterID, rateeID string, bookingID uint) (*models.Rating, error)
	FindAllForRatee(ctx context.Context, rateeID string) ([]models.Rating, error)

	Create(ctx context.Context, r *models.Rating) error
	Update(ctx context.Context, r *models.Rating) error

	// WithinTx runs fn in one transaction together with the profile
	// collaborator that stores the recomputed average.
	WithinTx(ctx context.Context, fn func(tx Repository, profiles user.Repository) error) error
}

// SummaryCache keeps computed summaries between reads. Every Invalidate
// bumps a per-user generation; Set only stores a summary computed under
// the current one, so a read racing a submit cannot cache stale data.
type SummaryCache interface {
	// Get returns the cached summary, or a miss with the generation to
	// pass to Set once the summary has been computed.
	Get(ctx context.Context, userID string) (s *Summary, generation int64, ok bool)
	Set(ctx context.Context, s Summary, generation int64)
	Invalidate(ctx context.Context, userID string)
}

package rating

import (
	"context"
	"errors"

	domain "github.com/taskhub/labor-marketplace/internal/domain/rating"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
)

// GetUserRating serves a user's reputation summary, cached until the next
// rating for that user is saved.
type GetUserRating struct {
	ratings domain.Repository
	users   user.Repository
	cache   domain.SummaryCache
}

func NewGetUserRating(
	ratings domain.Repository,
	users user.Repository,
	cache domain.SummaryCache,
) *GetUserRating {
	return &GetUserRating{
		ratings: ratings,
		users:   users,
		cache:   cache,
	}
}

func (uc *GetUserRating) Execute(ctx context.Context, userID string) (*domain.Summary, error) {
	cached, generation, ok := uc.cache.Get(ctx, userID)
	if ok {
		return cached, nil
	}

	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	all, err := uc.ratings.FindAllForRatee(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	s := domain.Summary{
		UserID:  u.ID,
		Average: domain.Average(all, 0),
		Count:   len(all),
	}
	uc.cache.Set(ctx, s, generation)

	return &s, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/taskhub/labor-marketplace/internal/domain/rating"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type RatingRepo struct {
	s    *Store
	held bool

	// FailCreate makes Create return the error, for rollback tests.
	FailCreate error
}

func NewRatingRepo(s *Store) *RatingRepo {
	return &RatingRepo{s: s}
}

func (r *RatingRepo) FindByTriple(ctx context.Context, raterID, rateeID string, bookingID uint) (*models.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	for _, rt := range r.s.ratings {
		if rt.RaterID == raterID && rt.RateeID == rateeID && rt.BookingID == bookingID {
			found := rt
			return &found, nil
		}
	}
	return nil, rating.ErrNotFound
}

func (r *RatingRepo) FindAllForRatee(ctx context.Context, rateeID string) ([]models.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.s.guard(r.held)()

	var out []models.Rating
	for _, rt := range r.s.ratings {
		if rt.RateeID == rateeID {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RatingRepo) Create(ctx context.Context, rt *models.Rating) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.FailCreate != nil {
		return r.FailCreate
	}
	defer r.s.guard(r.held)()

	r.s.nextRating++
	rt.ID = r.s.nextRating
	r.s.ratings[rt.ID] = *rt
	return nil
}

func (r *RatingRepo) Update(ctx context.Context, rt *models.Rating) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.s.guard(r.held)()

	if _, ok := r.s.ratings[rt.ID]; !ok {
		return rating.ErrNotFound
	}
	r.s.ratings[rt.ID] = *rt
	return nil
}

func (r *RatingRepo) WithinTx(
	ctx context.Context,
	fn func(tx rating.Repository, profiles user.Repository) error,
) error {
	if r.held {
		return fn(r, &UserRepo{s: r.s, held: true})
	}
	return r.s.atomically(ctx, func() error {
		return fn(&RatingRepo{s: r.s, held: true, FailCreate: r.FailCreate}, &UserRepo{s: r.s, held: true})
	})
}

var _ rating.Repository = (*RatingRepo)(nil)

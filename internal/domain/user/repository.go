package user

import (
	"context"
	"errors"

	"github.com/taskhub/labor-marketplace/internal/models"
)

var (
	ErrNotFound   = errors.New("user: not found")
	ErrEmailTaken = errors.New("user: email already registered")
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateAverageRating is the profile collaborator the rating
	// aggregation writes through.
	UpdateAverageRating(ctx context.Context, userID string, average float64) error
}

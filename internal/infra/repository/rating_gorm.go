package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskhub/labor-marketplace/internal/domain/rating"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

func (r *RatingGormRepository) FindByTriple(
	ctx context.Context,
	raterID, rateeID string,
	bookingID uint,
) (*models.Rating, error) {

	var rt models.Rating
	if err := r.db.WithContext(ctx).
		Where("rater_id = ? AND ratee_id = ? AND booking_id = ?", raterID, rateeID, bookingID).
		First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rating.ErrNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *RatingGormRepository) FindAllForRatee(ctx context.Context, rateeID string) ([]models.Rating, error) {
	var out []models.Rating
	if err := r.db.WithContext(ctx).
		Where("ratee_id = ?", rateeID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RatingGormRepository) Create(ctx context.Context, rt *models.Rating) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rt).Error
}

func (r *RatingGormRepository) Update(ctx context.Context, rt *models.Rating) error {
	return r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("id = ?", rt.ID).
		Updates(map[string]any{
			"score":      rt.Score,
			"updated_at": rt.UpdatedAt,
		}).Error
}

func (r *RatingGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx rating.Repository, profiles user.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RatingGormRepository{db: tx}, NewUserGormRepository(tx))
	})
}

var _ rating.Repository = (*RatingGormRepository)(nil)

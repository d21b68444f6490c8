package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskhub/labor-marketplace/internal/domain/task"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/httperr"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
	if httperr.IsUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *UserGormRepository) UpdateAverageRating(ctx context.Context, userID string, average float64) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("average_rating", average)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

type TaskGormRepository struct {
	db *gorm.DB
}

func NewTaskGormRepository(db *gorm.DB) *TaskGormRepository {
	return &TaskGormRepository{db: db}
}

func (r *TaskGormRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var t models.Task
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, task.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskGormRepository) Assign(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND status = ?", id, string(task.StatusOpen)).
		Updates(map[string]any{
			"status":      string(task.StatusAssigned),
			"assigned_at": at,
			"updated_at":  at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return task.ErrNotFound
	}
	return task.ErrNotOpen
}

func (r *TaskGormRepository) Create(ctx context.Context, t *models.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

var (
	_ user.Repository = (*UserGormRepository)(nil)
	_ task.Repository = (*TaskGormRepository)(nil)
)

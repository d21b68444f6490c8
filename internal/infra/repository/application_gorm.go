package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/task"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type ApplicationGormRepository struct {
	db *gorm.DB
}

func NewApplicationGormRepository(db *gorm.DB) *ApplicationGormRepository {
	return &ApplicationGormRepository{db: db}
}

func (r *ApplicationGormRepository) GetByID(ctx context.Context, id uint) (*models.TaskApplication, error) {
	var a models.TaskApplication
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, task.ErrApplicationNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationGormRepository) Respond(ctx context.Context, a *models.TaskApplication) error {
	res := r.db.WithContext(ctx).
		Model(&models.TaskApplication{}).
		Where("id = ? AND status = ?", a.ID, string(task.ApplicationPending)).
		Updates(map[string]any{
			"status":           a.Status,
			"rejection_reason": a.RejectionReason,
			"responded_at":     a.RespondedAt,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return task.ErrApplicationAnswered
	}
	return nil
}

func (r *ApplicationGormRepository) RejectPending(
	ctx context.Context,
	taskID uint,
	keepID uint,
	reason string,
	at time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.TaskApplication{}).
		Where("task_id = ? AND id <> ? AND status = ?", taskID, keepID, string(task.ApplicationPending)).
		Updates(map[string]any{
			"status":           string(task.ApplicationRejected),
			"rejection_reason": reason,
			"responded_at":     at,
			"updated_at":       at,
		})
	return res.RowsAffected, res.Error
}

func (r *ApplicationGormRepository) WithWorkerLock(
	ctx context.Context,
	workerID string,
	fn func(tx task.ApplicationRepository, tasks task.Repository, bookings booking.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockWorker(tx, workerID); err != nil {
			return err
		}
		return fn(&ApplicationGormRepository{db: tx}, NewTaskGormRepository(tx), NewBookingGormRepository(tx))
	})
}

var _ task.ApplicationRepository = (*ApplicationGormRepository)(nil)

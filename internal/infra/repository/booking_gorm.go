package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/user"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// live scopes every read to rows that have not been removed.
func (r *BookingGormRepository) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("deleted_at IS NULL")
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *BookingGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.live(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) FindOverlapping(
	ctx context.Context,
	workerID string,
	start time.Time,
	end time.Time,
	excludeID *uint,
) ([]models.Booking, error) {

	q := r.live(ctx).
		Where(
			"worker_id = ? AND status <> ? AND start_time IS NOT NULL AND end_time IS NOT NULL AND start_time < ? AND end_time > ?",
			workerID,
			string(booking.StatusCancelled),
			end,
			start,
		)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var out []models.Booking
	if err := q.Order("start_time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingGormRepository) ListByWorker(
	ctx context.Context,
	workerID string,
	includeCancelled bool,
) ([]models.Booking, error) {
	return r.list(ctx, "worker_id = ?", workerID, includeCancelled)
}

func (r *BookingGormRepository) ListByPoster(
	ctx context.Context,
	posterID string,
	includeCancelled bool,
) ([]models.Booking, error) {
	return r.list(ctx, "poster_id = ?", posterID, includeCancelled)
}

func (r *BookingGormRepository) list(
	ctx context.Context,
	cond string,
	userID string,
	includeCancelled bool,
) ([]models.Booking, error) {

	q := r.live(ctx).
		Preload("Task").
		Where(cond, userID)
	if !includeCancelled {
		q = q.Where("status <> ?", string(booking.StatusCancelled))
	}

	var out []models.Booking
	if err := q.Order("start_time ASC NULLS LAST").Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *models.Booking,
) error {
	if b.Version == 0 {
		b.Version = 1
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *BookingGormRepository) Update(
	ctx context.Context,
	b *models.Booking,
) error {

	now := time.Now().UTC()
	res := r.live(ctx).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]any{
			"start_time":  b.StartTime,
			"end_time":    b.EndTime,
			"agreed_rate": b.AgreedRate,
			"status":      b.Status,
			"version":     b.Version + 1,
			"updated_at":  now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return booking.ErrVersionConflict
	}

	b.Version++
	b.UpdatedAt = now
	return nil
}

func (r *BookingGormRepository) Remove(
	ctx context.Context,
	b *models.Booking,
	at time.Time,
) error {

	res := r.live(ctx).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]any{
			"deleted_at": at,
			"version":    b.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return booking.ErrVersionConflict
	}

	b.DeletedAt = &at
	b.Version++
	return nil
}

// --------------------------------------------------
// Serialisation
// --------------------------------------------------

// WithWorkerLock takes a row lock on the worker's user row. Every booking
// write for that worker goes through here, so the lock orders them even
// when the conflicting booking rows do not exist yet.
func (r *BookingGormRepository) WithWorkerLock(
	ctx context.Context,
	workerID string,
	fn func(tx booking.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockWorker(tx, workerID); err != nil {
			return err
		}
		return fn(&BookingGormRepository{db: tx})
	})
}

// lockWorker holds FOR UPDATE on the worker's user row until tx ends.
func lockWorker(tx *gorm.DB, workerID string) error {
	var worker models.User
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", workerID).
		Take(&worker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.ErrNotFound
	}
	return err
}

// Compile-time check
var _ booking.Repository = (*BookingGormRepository)(nil)

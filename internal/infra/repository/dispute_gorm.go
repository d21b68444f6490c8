package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskhub/labor-marketplace/internal/domain/booking"
	"github.com/taskhub/labor-marketplace/internal/domain/dispute"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type DisputeGormRepository struct {
	db *gorm.DB
}

func NewDisputeGormRepository(db *gorm.DB) *DisputeGormRepository {
	return &DisputeGormRepository{db: db}
}

func withParties(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Booking").
		Preload("Booking.Task").
		Preload("Booking.Worker").
		Preload("Booking.Poster").
		Preload("RaisedByUser").
		Preload("ResolvedByUser")
}

func (r *DisputeGormRepository) ExistsForBooking(ctx context.Context, bookingID uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Dispute{}).
		Where("booking_id = ?", bookingID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *DisputeGormRepository) GetByID(ctx context.Context, id uint) (*models.Dispute, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *DisputeGormRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Dispute, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *DisputeGormRepository) GetByIDWithParties(ctx context.Context, id uint) (*models.Dispute, error) {
	return r.first(withParties(r.db.WithContext(ctx)), id)
}

func (r *DisputeGormRepository) first(q *gorm.DB, id uint) (*models.Dispute, error) {
	var d models.Dispute
	if err := q.Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dispute.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DisputeGormRepository) List(ctx context.Context, status *dispute.Status) ([]models.Dispute, error) {
	q := withParties(r.db.WithContext(ctx))
	if status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var out []models.Dispute
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DisputeGormRepository) ListByUser(ctx context.Context, userID string) ([]models.Dispute, error) {
	var out []models.Dispute
	if err := withParties(r.db.WithContext(ctx)).
		Where("raised_by = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DisputeGormRepository) CountByStatus(ctx context.Context, status dispute.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Dispute{}).
		Where("status = ?", string(status)).
		Count(&n).Error
	return n, err
}

func (r *DisputeGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Dispute{}).Count(&n).Error
	return n, err
}

func (r *DisputeGormRepository) Create(ctx context.Context, d *models.Dispute) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error
}

// Update writes the mutable columns, guarded on the stored status so a
// stale copy cannot reopen a resolved dispute.
func (r *DisputeGormRepository) Update(ctx context.Context, d *models.Dispute) error {
	res := r.db.WithContext(ctx).
		Model(&models.Dispute{}).
		Where("id = ? AND status <> ?", d.ID, string(dispute.StatusResolved)).
		Updates(map[string]any{
			"status":            d.Status,
			"resolution":        d.Resolution,
			"resolution_type":   d.ResolutionType,
			"worker_percentage": d.WorkerPercentage,
			"resolved_by":       d.ResolvedBy,
			"resolved_at":       d.ResolvedAt,
			"updated_at":        d.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Dispute{}).Where("id = ?", d.ID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return dispute.ErrNotFound
	}
	return dispute.ErrClosed
}

func (r *DisputeGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx dispute.Repository, bookings booking.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DisputeGormRepository{db: tx}, NewBookingGormRepository(tx))
	})
}

var _ dispute.Repository = (*DisputeGormRepository)(nil)

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/taskhub/labor-marketplace/internal/audit"
	"github.com/taskhub/labor-marketplace/internal/models"
)

type AuditGormStore struct {
	db *gorm.DB
}

func NewAuditGormStore(db *gorm.DB) *AuditGormStore {
	return &AuditGormStore{db: db}
}

func (s *AuditGormStore) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

func (s *AuditGormStore) ListAuditLogs(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

var _ audit.Store = (*AuditGormStore)(nil)

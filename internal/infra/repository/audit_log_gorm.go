package repository

import (
	"context"

	"velour/internal/domain/model"
	repo "velour/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

type auditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) repo.AuditLogRepository {
	return &auditLogGormRepository{db: db}
}

func (r *auditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return errors.Wrap(err, "create audit log")
	}
	return nil
}

func (r *auditLogGormRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&model.AuditLog{})

	if filter.Action != nil {
		q = q.Where("action = ?", *filter.Action)
	}
	if filter.ResourceType != nil {
		q = q.Where("resource_type = ?", *filter.ResourceType)
	}
	if filter.ResourceID != nil {
		q = q.Where("resource_id = ?", *filter.ResourceID)
	}
	if filter.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		q = q.Where("created_at <= ?", *filter.CreatedTo)
	}

	//新しい順
	q = q.Order("id DESC")

	limit, offset := normalizePage(filter.Limit, filter.Offset)
	q = q.Limit(limit).Offset(offset)

	var logs []model.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, errors.Wrap(err, "list audit logs")
	}
	return logs, nil
}

// limit/offset
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

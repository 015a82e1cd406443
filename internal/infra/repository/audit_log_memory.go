package repository

import (
	"context"
	"sync"

	"velour/internal/domain/model"
	repo "velour/internal/repository"
)

// STORAGE_DRIVER=memory 用
type auditLogMemoryRepository struct {
	mu     sync.Mutex
	logs   []model.AuditLog
	nextID int64
}

func NewAuditLogMemoryRepository() repo.AuditLogRepository {
	return &auditLogMemoryRepository{nextID: 1}
}

func (r *auditLogMemoryRepository) Create(ctx context.Context, log model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.ID = r.nextID
	r.nextID++
	r.logs = append(r.logs, log)
	return nil
}

func (r *auditLogMemoryRepository) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	//新しい順
	matched := make([]model.AuditLog, 0, len(r.logs))
	for i := len(r.logs) - 1; i >= 0; i-- {
		l := r.logs[i]
		if filter.Action != nil && l.Action != *filter.Action {
			continue
		}
		if filter.ResourceType != nil && l.ResourceType != *filter.ResourceType {
			continue
		}
		if filter.ResourceID != nil && l.ResourceID != *filter.ResourceID {
			continue
		}
		if filter.CreatedFrom != nil && l.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && l.CreatedAt.After(*filter.CreatedTo) {
			continue
		}
		matched = append(matched, l)
	}

	limit, offset := normalizePage(filter.Limit, filter.Offset)
	if offset >= len(matched) {
		return []model.AuditLog{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

package repository

import (
	"context"
	"time"

	"velour/internal/domain/model"
	repo "velour/internal/repository"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kv_recordsテーブルをlocalStorageとして使う
type KVGormRepository struct {
	db *gorm.DB
}

// DI
func NewKVGormRepository(db *gorm.DB) *KVGormRepository {
	return &KVGormRepository{db: db}
}

// keyで取得（無ければErrNotFound）
func (r *KVGormRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var rec model.KVRecord

	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&rec).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %q", key)
	}
	return []byte(rec.Value), nil
}

// まるごと上書き（無ければ作成）
func (r *KVGormRepository) Set(ctx context.Context, key string, value []byte) error {
	rec := model.KVRecord{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return errors.Wrapf(err, "set %q", key)
	}
	return nil
}

func (r *KVGormRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&model.KVRecord{}).Error; err != nil {
		return errors.Wrapf(err, "delete %q", key)
	}
	return nil
}

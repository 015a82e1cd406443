package repository

import (
	"context"
	"encoding/json"

	"velour/internal/domain/model"
	repo "velour/internal/repository"

	"github.com/go-faster/errors"
)

// DefaultThemeKey はテーマ設定の保存先（セッションIDを後ろに付ける）
const DefaultThemeKey = "VELOUR-theme-storage"

type themeRecord struct {
	Theme model.Theme `json:"theme"`
}

type ThemeKVRepository struct {
	kv     repo.KeyValueStore
	prefix string
}

// DI
func NewThemeKVRepository(kv repo.KeyValueStore, prefix string) *ThemeKVRepository {
	if prefix == "" {
		prefix = DefaultThemeKey
	}
	return &ThemeKVRepository{kv: kv, prefix: prefix}
}

// 未保存・壊れたデータ・知らないテーマは既定値
func (r *ThemeKVRepository) Get(ctx context.Context, sessionID string) (model.Theme, error) {
	raw, err := r.kv.Get(ctx, r.key(sessionID))
	if errors.Is(err, repo.ErrNotFound) {
		return model.DefaultTheme, nil
	}
	if err != nil {
		return "", err
	}

	var rec themeRecord
	if err := json.Unmarshal(raw, &rec); err != nil || !rec.Theme.Valid() {
		return model.DefaultTheme, nil
	}
	return rec.Theme, nil
}

func (r *ThemeKVRepository) Set(ctx context.Context, sessionID string, theme model.Theme) error {
	raw, err := json.Marshal(themeRecord{Theme: theme})
	if err != nil {
		return errors.Wrap(err, "marshal theme")
	}
	return r.kv.Set(ctx, r.key(sessionID), raw)
}

func (r *ThemeKVRepository) key(sessionID string) string {
	return r.prefix + ":" + sessionID
}

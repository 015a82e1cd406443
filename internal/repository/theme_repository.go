package repository

import (
	"context"

	"velour/internal/domain/model"
)

// セッションごとのテーマ設定
type ThemeRepository interface {
	// 未保存・壊れたデータは DefaultTheme
	Get(ctx context.Context, sessionID string) (model.Theme, error)
	Set(ctx context.Context, sessionID string, theme model.Theme) error
}

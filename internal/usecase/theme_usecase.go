package usecase

import (
	"context"
	"net/http"
	"strings"

	"velour/internal/domain/model"
	repo "velour/internal/repository"
)

type ThemeUsecase struct {
	themeRepo repo.ThemeRepository
}

// DI
func NewThemeUsecase(themeRepo repo.ThemeRepository) *ThemeUsecase {
	return &ThemeUsecase{themeRepo: themeRepo}
}

type ThemeResponse struct {
	Theme model.Theme `json:"theme"`
}

func (u *ThemeUsecase) Get(ctx context.Context, sessionID string) (ThemeResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return ThemeResponse{}, NewHTTPError(http.StatusUnauthorized, "session required")
	}
	t, err := u.themeRepo.Get(ctx, sessionID)
	if err != nil {
		return ThemeResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ThemeResponse{Theme: t}, nil
}

func (u *ThemeUsecase) Set(ctx context.Context, sessionID string, theme model.Theme) (ThemeResponse, error) {
	if strings.TrimSpace(sessionID) == "" {
		return ThemeResponse{}, NewHTTPError(http.StatusUnauthorized, "session required")
	}
	if !theme.Valid() {
		return ThemeResponse{}, NewHTTPError(http.StatusBadRequest, "invalid theme")
	}
	if err := u.themeRepo.Set(ctx, sessionID, theme); err != nil {
		return ThemeResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ThemeResponse{Theme: theme}, nil
}

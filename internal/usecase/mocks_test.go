package usecase_test

import (
	"context"
	"strings"
	"testing"

	"velour/internal/domain/model"
	repo "velour/internal/repository"
	"velour/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type ThemeRepoMock struct{ mock.Mock }

func (m *ThemeRepoMock) Get(ctx context.Context, sessionID string) (model.Theme, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(model.Theme), args.Error(1)
}

func (m *ThemeRepoMock) Set(ctx context.Context, sessionID string, theme model.Theme) error {
	args := m.Called(ctx, sessionID, theme)
	return args.Error(0)
}

type FormRelayMock struct{ mock.Mock }

func (m *FormRelayMock) Send(ctx context.Context, payload any) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// =====================
// helpers
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "want HTTPError, got %v", err) {
		assert.Equal(t, want, he.Status)
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"velour/internal/config"
	"velour/internal/handler"
	"velour/internal/infra/formrelay"
	infraRepo "velour/internal/infra/repository"
	"velour/internal/middleware"
	"velour/internal/server"
	"velour/internal/usecase"
	"velour/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	e       *echo.Echo
	session string
}

// メモリKVと埋め込みカタログで全ルートを組み立てる
func newTestApp(t *testing.T, relayURL string) *testApp {
	t.Helper()

	kv := infraRepo.NewMemoryKVStore()
	seed, err := infraRepo.SeedProducts()
	require.NoError(t, err)

	adminRepo := infraRepo.NewAdminProductKVRepository(kv, "")
	catalog := infraRepo.NewCatalogRepository(seed, adminRepo)
	audit := infraRepo.NewAuditLogMemoryRepository()
	themeRepo := infraRepo.NewThemeKVRepository(kv, "")
	logger := zap.NewNop()

	h := server.Handlers{
		Cart:         handler.NewCartHandler(usecase.NewCartUsecase(kv, catalog, "", logger)),
		Product:      handler.NewProductHandler(usecase.NewProductUsecase(catalog)),
		AdminProduct: handler.NewAdminProductHandler(usecase.NewAdminProductUsecase(adminRepo, audit, infraRepo.NewTxManagerMemory(kv, "", audit), logger)),
		Theme:        handler.NewThemeHandler(usecase.NewThemeUsecase(themeRepo)),
		Contact:      handler.NewContactHandler(usecase.NewContactUsecase(formrelay.NewClient(relayURL, time.Second), validator.NewFormValidator(), logger)),
		Health:       handler.NewHealthHandler(),
	}
	return &testApp{
		e:       server.New(config.Config{GoEnv: "dev"}, logger, h),
		session: "test-session",
	}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if a.session != "" {
		req.Header.Set(middleware.SessionHeader, a.session)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type cartItemDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    string  `json:"price"`
	Quantity int64   `json:"quantity"`
	Variant  *string `json:"variant"`
}

type cartDTO struct {
	Items     []cartItemDTO `json:"items"`
	IsVisible bool          `json:"is_visible"`
	ItemCount int64         `json:"item_count"`
	Total     string        `json:"total"`
}

type errorDTO struct {
	Error string `json:"error"`
}

func ptr[T any](v T) *T {
	return &v
}

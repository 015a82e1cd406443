package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"velour/internal/config"
	"velour/internal/handler"
	"velour/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// 起動に必要なハンドラ一式
type Handlers struct {
	Cart         *handler.CartHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Theme        *handler.ThemeHandler
	Contact      *handler.ContactHandler
	Health       *handler.HealthHandler
}

// New はミドルウェアとルートを登録したEchoを返す
func New(cfg config.Config, logger *zap.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(corsConfig(cfg)))

	RegisterRoutes(e, middleware.CartSession(!cfg.IsDev()), h)
	return e
}

// フロントのURLだけ許可（未設定なら全許可）
func corsConfig(cfg config.Config) echomw.CORSConfig {
	origins := []string{"*"}
	allowCredentials := false
	if cfg.FEURL != "" {
		origins = []string{cfg.FEURL}
		allowCredentials = true
	}
	return echomw.CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAccept, middleware.SessionHeader},
		ExposeHeaders:    []string{middleware.SessionHeader},
		AllowCredentials: allowCredentials,
	}
}

// Start はctxが終わるまで待ち受け、終わったらshutdownTimeout以内に止める
func Start(ctx context.Context, e *echo.Echo, addr string, shutdownTimeout time.Duration, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

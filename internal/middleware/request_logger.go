package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RequestLogger はアクセスログをzapに出す
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.RequestID != "" {
				fields = append(fields, zap.String("request_id", v.RequestID))
			}
			if id, ok := SessionID(c); ok {
				fields = append(fields, zap.String("session", id))
			}

			switch {
			case v.Error != nil:
				logger.Error("request", append(fields, zap.Error(v.Error))...)
			case v.Status >= 500:
				logger.Error("request", fields...)
			case v.Status >= 400:
				logger.Warn("request", fields...)
			default:
				logger.Info("request", fields...)
			}
			return nil
		},
	})
}

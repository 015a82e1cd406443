package middleware

import (
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "velour_session"
	SessionHeader     = "X-Session-ID"

	CtxSessionIDKey = "session_id" // string

	sessionMaxAge = 365 * 24 * time.Hour
)

var sessionIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// CartSession はカート・テーマ用のセッションIDを決める。
// cookie → X-Session-ID ヘッダの順に見て、無ければuuidを発行してcookieに入れる。
func CartSession(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(SessionCookieName); err == nil && sessionIDRe.MatchString(ck.Value) {
				id = ck.Value
			} else if h := c.Request().Header.Get(SessionHeader); sessionIDRe.MatchString(h) {
				id = h
			}

			//新規発行
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(sessionMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Response().Header().Set(SessionHeader, id)
			c.Set(CtxSessionIDKey, id)
			return next(c)
		}
	}
}

// SessionID はCartSessionが入れたIDを返す
func SessionID(c echo.Context) (string, bool) {
	id, ok := c.Get(CtxSessionIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

package handler

import (
	"net/http"

	"velour/internal/domain/model"
	"velour/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ThemeHandler struct {
	uc *usecase.ThemeUsecase
}

// DI
func NewThemeHandler(uc *usecase.ThemeUsecase) *ThemeHandler {
	return &ThemeHandler{uc: uc}
}

type SetThemeRequest struct {
	Theme string `json:"theme"`
}

func (h *ThemeHandler) RegisterRoutes(e *echo.Echo, session echo.MiddlewareFunc) {
	e.GET("/theme", h.get, session)
	e.PUT("/theme", h.set, session)
}

func (h *ThemeHandler) get(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session required"})
	}

	out, err := h.uc.Get(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ThemeHandler) set(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session required"})
	}

	var req SetThemeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Set(c.Request().Context(), sessionID, model.Theme(req.Theme))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

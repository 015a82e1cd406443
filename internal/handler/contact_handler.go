package handler

import (
	"net/http"

	"velour/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /newsletter と /contact
type ContactHandler struct {
	uc *usecase.ContactUsecase
}

// DI
func NewContactHandler(uc *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

type NewsletterRequest struct {
	Email string `json:"email"`
}

type ContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

func (h *ContactHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/newsletter", h.subscribe)
	e.POST("/contact", h.contact)
}

func (h *ContactHandler) subscribe(c echo.Context) error {
	var req NewsletterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.Subscribe(c.Request().Context(), req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "subscribed"})
}

func (h *ContactHandler) contact(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	err := h.uc.SendMessage(c.Request().Context(), usecase.ContactInput{
		Name:     req.Name,
		Email:    req.Email,
		Subject:  req.Subject,
		Category: req.Category,
		Message:  req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "sent"})
}

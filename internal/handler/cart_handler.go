package handler

import (
	"net/http"

	"velour/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartItemRequest struct {
	ProductID string  `json:"product_id"`
	Variant   *string `json:"variant"`
}

type UpdateCartItemRequest struct {
	Quantity *int64  `json:"quantity"`
	Variant  *string `json:"variant"`
}

// /cart, /cart/items/{id} を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo, session echo.MiddlewareFunc) {
	g := e.Group("/cart", session)

	g.GET("", h.getCart)
	g.DELETE("", h.clearCart)
	g.GET("/summary", h.summary)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:id", h.patchItem)
	g.DELETE("/items/:id", h.deleteItem)
	g.POST("/open", h.open)
	g.POST("/close", h.close)
}

func (h *CartHandler) getCart(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session required"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) summary(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session required"})
	}

	out, err := h.uc.Summary(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session required"})
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), sessionID, usecase.AddCartItemInput{
		ProductID: req.ProductID,
		Variant:   req.Variant,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) patchItem(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session required"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quantity required"})
	}

	out, err := h.uc.UpdateQuantity(c.Request().Context(), sessionID, c.Param("id"), usecase.UpdateCartItemInput{
		Quantity: *req.Quantity,
		Variant:  req.Variant,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ?variant= が無ければvariantなしの行
func (h *CartHandler) deleteItem(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session required"})
	}

	var variant *string
	if c.QueryParams().Has("variant") {
		v := c.QueryParam("variant")
		variant = &v
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), sessionID, c.Param("id"), variant)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session required"})
	}

	out, err := h.uc.ClearCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) open(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session required"})
	}

	out, err := h.uc.OpenCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) close(c echo.Context) error {
	sessionID, ok := getSessionID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "session required"})
	}

	out, err := h.uc.CloseCart(c.Request().Context(), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

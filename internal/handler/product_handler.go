package handler

import (
	"net/http"

	"velour/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/categories", h.categories)
	e.GET("/products/:id", h.detail)
}

func (h *ProductHandler) list(c echo.Context) error {
	var minPrice *decimal.Decimal
	if v := c.QueryParam("min_price"); v != "" {
		x, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
		}
		minPrice = &x
	}

	var maxPrice *decimal.Decimal
	if v := c.QueryParam("max_price"); v != "" {
		x, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_price"})
		}
		maxPrice = &x
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) categories(c echo.Context) error {
	out, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

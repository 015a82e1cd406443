package handler

import (
	"net/http"
	"strconv"
	"time"

	"velour/internal/domain/model"
	repo "velour/internal/repository"
	"velour/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/products と /admin/audit-logs
type AdminProductHandler struct {
	uc *usecase.AdminProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.AdminProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, session echo.MiddlewareFunc) {
	g := e.Group("/admin", session)

	g.GET("/products", h.list)
	g.POST("/products", h.save)
	g.DELETE("/products/:id", h.delete)
	g.GET("/audit-logs", h.auditLogs)
}

func (h *AdminProductHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) save(c echo.Context) error {
	actor, _ := getSessionID(c)

	var req model.Product
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.Save(c.Request().Context(), actor, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	actor, _ := getSessionID(c)

	if err := h.uc.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ?action=&resource_type=&resource_id=&from=&to=&limit=&offset=
func (h *AdminProductHandler) auditLogs(c echo.Context) error {
	var f repo.AuditLogFilter

	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := c.QueryParam("resource_type"); v != "" {
		rt := model.AuditResourceType(v)
		f.ResourceType = &rt
	}
	if v := c.QueryParam("resource_id"); v != "" {
		f.ResourceID = &v
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		f.CreatedFrom = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		f.CreatedTo = &t
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		f.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		f.Offset = n
	}

	logs, err := h.uc.ListAudit(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}

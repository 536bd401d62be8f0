package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /admin/productsのHTTP。ADMINのみ。
type AdminProductHandler struct {
	uc *usecase.AdminProductUsecase
}

func NewAdminProductHandler(uc *usecase.AdminProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type AdminCreateProductRequest struct {
	Name           string           `json:"name" validate:"required,max=255"`
	Description    string           `json:"description"`
	BasePrice      decimal.Decimal  `json:"base_price" validate:"required"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	Currency       string           `json:"currency" validate:"required,len=3"`
	Stock          int64            `json:"stock" validate:"gte=0"`
	IsActive       bool             `json:"is_active"`
}

type AdminUpdateProductRequest struct {
	Name           *string          `json:"name,omitempty"`
	Description    *string          `json:"description,omitempty"`
	BasePrice      *decimal.Decimal `json:"base_price,omitempty"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
	IsActive       *bool            `json:"is_active,omitempty"`
}

type SetStockRequest struct {
	Stock int64 `json:"stock" validate:"gte=0"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("/products", h.create)
	g.PATCH("/products/:id", h.update)
	g.DELETE("/products/:id", h.delete)
	g.PUT("/products/:id/stock", h.setStock)
	g.GET("/audit-logs", h.auditLogs)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req AdminCreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.AdminCreateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		BasePrice:      req.BasePrice,
		CompareAtPrice: req.CompareAtPrice,
		Currency:       req.Currency,
		Stock:          req.Stock,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusCreated, out)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	var req AdminUpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.Update(c.Request().Context(), productID, usecase.AdminUpdateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		BasePrice:      req.BasePrice,
		CompareAtPrice: req.CompareAtPrice,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, out)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.uc.Delete(c.Request().Context(), productID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, nil)
}

func (h *AdminProductHandler) setStock(c echo.Context) error {
	adminID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	var req SetStockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.uc.SetStock(c.Request().Context(), adminID, productID, req.Stock); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, nil)
}

func (h *AdminProductHandler) auditLogs(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid page")
		}
		page = p
	}
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid limit")
		}
		limit = l
	}

	out, err := h.uc.ListAuditLogs(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, out)
}

package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /admin/importsのHTTP。仕入れ元カタログからの取り込み。ADMINのみ。
type AdminImportHandler struct {
	uc *usecase.ImportUsecase
}

func NewAdminImportHandler(uc *usecase.ImportUsecase) *AdminImportHandler {
	return &AdminImportHandler{uc: uc}
}

type ImportVariantRequest struct {
	SKU        string            `json:"sku" validate:"required,max=100"`
	Attributes map[string]string `json:"attributes"`
}

type ImportProductRequest struct {
	Source        string                 `json:"source" validate:"required,max=100"`
	ExternalID    string                 `json:"external_id" validate:"required,max=255"`
	Name          string                 `json:"name" validate:"required,max=255"`
	Description   string                 `json:"description"`
	Cost          decimal.Decimal        `json:"cost" validate:"required"`
	MarkupPercent *decimal.Decimal       `json:"markup_percent,omitempty"`
	Variants      []ImportVariantRequest `json:"variants" validate:"dive"`
}

func (h *AdminImportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/imports")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.POST("", h.importProduct)
}

func (h *AdminImportHandler) importProduct(c echo.Context) error {
	adminID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req ImportProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	variants := make([]usecase.ImportVariantInput, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, usecase.ImportVariantInput{
			SKU:        v.SKU,
			Attributes: v.Attributes,
		})
	}

	out, err := h.uc.ImportProduct(c.Request().Context(), adminID, usecase.ImportProductInput{
		Source:        req.Source,
		ExternalID:    req.ExternalID,
		Name:          req.Name,
		Description:   req.Description,
		Cost:          req.Cost,
		MarkupPercent: req.MarkupPercent,
		Variants:      variants,
	})
	if err != nil {
		return writeError(c, err)
	}

	status := http.StatusCreated
	if out.AlreadyImported {
		status = http.StatusOK
	}
	return ok(c, status, out)
}

package handler

import (
	"net/http"
	"strconv"
	"time"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ギフトレジストリのHTTP。共有ビューだけ公開。
type RegistryHandler struct {
	uc *usecase.RegistryUsecase
}

func NewRegistryHandler(uc *usecase.RegistryUsecase) *RegistryHandler {
	return &RegistryHandler{uc: uc}
}

type CreateRegistryRequest struct {
	Title     string  `json:"title" validate:"required,max=255"`
	ChildName string  `json:"child_name" validate:"required,max=255"`
	BirthDate string  `json:"birth_date" validate:"required"`
	HeightCM  float64 `json:"height_cm" validate:"gte=0"`
	WeightKG  float64 `json:"weight_kg" validate:"gte=0"`
	IsPublic  bool    `json:"is_public"`
}

type UpdateRegistryRequest struct {
	Title     *string  `json:"title,omitempty"`
	ChildName *string  `json:"child_name,omitempty"`
	HeightCM  *float64 `json:"height_cm,omitempty"`
	WeightKG  *float64 `json:"weight_kg,omitempty"`
	IsPublic  *bool    `json:"is_public,omitempty"`
}

type AddRegistryItemRequest struct {
	ProductID  int64 `json:"product_id" validate:"required,gt=0"`
	DesiredQty int64 `json:"desired_qty" validate:"required,gt=0"`
}

type MarkPurchasedRequest struct {
	Qty int64 `json:"qty" validate:"required,gt=0"`
}

func (h *RegistryHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//共有リンクは未ログインでも見られる
	e.GET("/registries/shared/:slug", h.shared)

	g := e.Group("/registries")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create)
	g.GET("", h.listMine)
	g.GET("/:id", h.getMine)
	g.PATCH("/:id", h.update)
	g.GET("/:id/size-forecast", h.sizeForecast)
	g.POST("/:id/items", h.addItem)
	g.POST("/:id/items/:itemID/purchased", h.markPurchased)
}

func (h *RegistryHandler) create(c echo.Context) error {
	userID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req CreateRegistryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return failFields(c, map[string]string{"birth_date": "birth_date must be YYYY-MM-DD"})
	}

	out, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateRegistryInput{
		Title:     req.Title,
		ChildName: req.ChildName,
		BirthDate: birthDate,
		HeightCM:  req.HeightCM,
		WeightKG:  req.WeightKG,
		IsPublic:  req.IsPublic,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusCreated, out)
}

func (h *RegistryHandler) listMine(c echo.Context) error {
	userID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, out)
}

func (h *RegistryHandler) getMine(c echo.Context) error {
	userID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	registryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	out, err := h.uc.GetMine(c.Request().Context(), userID, registryID)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, out)
}

func (h *RegistryHandler) update(c echo.Context) error {
	userID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	registryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	var req UpdateRegistryRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.Update(c.Request().Context(), userID, registryID, usecase.UpdateRegistryInput{
		Title:     req.Title,
		ChildName: req.ChildName,
		HeightCM:  req.HeightCM,
		WeightKG:  req.WeightKG,
		IsPublic:  req.IsPublic,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, out)
}

func (h *RegistryHandler) sizeForecast(c echo.Context) error {
	userID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	registryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	out, err := h.uc.SizeForecast(c.Request().Context(), userID, registryID)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, out)
}

func (h *RegistryHandler) addItem(c echo.Context) error {
	userID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	registryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	var req AddRegistryItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.uc.AddItem(c.Request().Context(), userID, registryID, req.ProductID, req.DesiredQty)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusCreated, out)
}

func (h *RegistryHandler) markPurchased(c echo.Context) error {
	userID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	registryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid item id")
	}

	var req MarkPurchasedRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.uc.MarkPurchased(c.Request().Context(), userID, registryID, itemID, req.Qty)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, out)
}

func (h *RegistryHandler) shared(c echo.Context) error {
	out, err := h.uc.GetShared(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, out)
}

package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/pricing"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// 管理者向けの商品操作。変更はすべて監査ログに残す。
type AdminProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

func NewAdminProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *AdminProductUsecase {
	return &AdminProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

type AdminCreateProductInput struct {
	Name           string
	Description    string
	BasePrice      decimal.Decimal
	CompareAtPrice *decimal.Decimal
	Currency       string
	Stock          int64
	IsActive       bool
}

type AdminUpdateProductInput struct {
	Name           *string
	Description    *string
	BasePrice      *decimal.Decimal
	CompareAtPrice *decimal.Decimal
	IsActive       *bool
}

func (u *AdminProductUsecase) Create(ctx context.Context, in AdminCreateProductInput) (model.Product, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if in.BasePrice.LessThanOrEqual(decimal.Zero) {
		fields["base_price"] = "base_price must be positive"
	}
	if in.CompareAtPrice != nil && in.CompareAtPrice.LessThanOrEqual(in.BasePrice) {
		//参考価格は販売価格より高くないと意味がない
		fields["compare_at_price"] = "compare_at_price must be greater than base_price"
	}
	if in.Stock < 0 {
		fields["stock"] = "stock must not be negative"
	}
	if !pricing.ValidCurrency(in.Currency) {
		fields["currency"] = "currency must be an ISO 4217 code"
	}
	if len(fields) > 0 {
		return model.Product{}, NewValidationError(fields)
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		BasePrice:      in.BasePrice,
		CompareAtPrice: in.CompareAtPrice,
		Currency:       strings.ToUpper(in.Currency),
		Stock:          in.Stock,
		IsActive:       in.IsActive,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AdminProductUsecase) Update(ctx context.Context, productID int64, in AdminUpdateProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	fields := map[string]string{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			fields["name"] = "name is required"
		} else {
			p.Name = strings.TrimSpace(*in.Name)
		}
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.BasePrice != nil {
		if in.BasePrice.LessThanOrEqual(decimal.Zero) {
			fields["base_price"] = "base_price must be positive"
		} else {
			p.BasePrice = *in.BasePrice
		}
	}
	if in.CompareAtPrice != nil {
		if in.CompareAtPrice.LessThanOrEqual(p.BasePrice) {
			fields["compare_at_price"] = "compare_at_price must be greater than base_price"
		} else {
			p.CompareAtPrice = in.CompareAtPrice
		}
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if len(fields) > 0 {
		return model.Product{}, NewValidationError(fields)
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *AdminProductUsecase) Delete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.productRepo.SoftDelete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// SetStock は在庫の現在値を設定し、前後の値を監査ログに残す。
func (u *AdminProductUsecase) SetStock(ctx context.Context, adminUserID int64, productID int64, newStock int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if newStock < 0 {
		return NewValidationError(map[string]string{"stock": "stock must not be negative"})
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.SetStock(ctx, productID, newStock); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	before, _ := json.Marshal(map[string]any{"stock": p.Stock})
	after, _ := json.Marshal(map[string]any{"stock": newStock})
	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   string(before),
		AfterJSON:    string(after),
		CreatedAt:    time.Now(),
	})
	return nil
}

func (u *AdminProductUsecase) ListAuditLogs(ctx context.Context, page int, limit int) ([]model.AuditLog, error) {
	if page < 1 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	logs, err := u.auditRepo.List(ctx, repo.AuditLogFilter{Page: page, Limit: limit})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}

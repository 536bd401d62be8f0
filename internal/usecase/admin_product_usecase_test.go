package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminProductUsecase() (*usecase.AdminProductUsecase, *ProductRepoMock, *InventoryRepoMock, *AuditLogRepoMock) {
	productRepo := new(ProductRepoMock)
	inventoryRepo := new(InventoryRepoMock)
	auditRepo := new(AuditLogRepoMock)
	u := usecase.NewAdminProductUsecase(productRepo, inventoryRepo, auditRepo)
	return u, productRepo, inventoryRepo, auditRepo
}

func TestAdminProductUsecase_Create_Success(t *testing.T) {
	u, productRepo, _, _ := newAdminProductUsecase()
	ctx := context.Background()

	productRepo.On("Create", ctx, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Muslin Blanket" &&
			p.BasePrice.Equal(dec("34.99")) &&
			p.Currency == "USD" &&
			p.Stock == 12 &&
			p.IsActive
	})).Return(model.Product{ID: 3, Name: "Muslin Blanket"}, nil)

	out, err := u.Create(ctx, usecase.AdminCreateProductInput{
		Name:      "  Muslin Blanket ",
		BasePrice: dec("34.99"),
		Currency:  "USD",
		Stock:     12,
		IsActive:  true,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.ID)
	productRepo.AssertExpectations(t)
}

func TestAdminProductUsecase_Create_ValidationErrors(t *testing.T) {
	u, productRepo, _, _ := newAdminProductUsecase()

	compareAt := dec("20.00")
	_, err := u.Create(context.Background(), usecase.AdminCreateProductInput{
		Name:           " ",
		BasePrice:      dec("25.00"),
		CompareAtPrice: &compareAt,
		Currency:       "DOLLARS",
		Stock:          -1,
	})

	ve, ok := usecase.AsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "compare_at_price")
	assert.Contains(t, ve.Fields, "currency")
	assert.Contains(t, ve.Fields, "stock")
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminProductUsecase_Update_PartialFields(t *testing.T) {
	u, productRepo, _, _ := newAdminProductUsecase()
	ctx := context.Background()

	productRepo.On("FindByID", ctx, int64(3)).Return(model.Product{
		ID: 3, Name: "Muslin Blanket", BasePrice: dec("34.99"), IsActive: true,
	}, nil)
	productRepo.On("Update", ctx, mock.MatchedBy(func(p model.Product) bool {
		//名前だけ変わり、価格は据え置き
		return p.ID == 3 && p.Name == "Organic Muslin Blanket" && p.BasePrice.Equal(dec("34.99"))
	})).Return(nil)

	name := "Organic Muslin Blanket"
	out, err := u.Update(ctx, 3, usecase.AdminUpdateProductInput{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "Organic Muslin Blanket", out.Name)
	productRepo.AssertExpectations(t)
}

func TestAdminProductUsecase_Delete_UnknownIsNotFound(t *testing.T) {
	u, productRepo, _, _ := newAdminProductUsecase()
	ctx := context.Background()

	productRepo.On("SoftDelete", ctx, int64(99)).Return(repo.ErrNotFound)

	err := u.Delete(ctx, 99)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestAdminProductUsecase_SetStock_WritesBeforeAfterAudit(t *testing.T) {
	u, productRepo, inventoryRepo, auditRepo := newAdminProductUsecase()
	ctx := context.Background()

	productRepo.On("FindByID", ctx, int64(3)).Return(model.Product{ID: 3, Stock: 4}, nil)
	inventoryRepo.On("SetStock", ctx, int64(3), int64(20)).Return(nil)
	auditRepo.On("Create", ctx, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateStock &&
			l.ResourceType == model.AuditResourceProduct &&
			l.ResourceID == 3 &&
			l.ActorUserID == 9 &&
			strings.Contains(l.BeforeJSON, `"stock":4`) &&
			strings.Contains(l.AfterJSON, `"stock":20`)
	})).Return(nil)

	err := u.SetStock(ctx, 9, 3, 20)

	assert.NoError(t, err)
	auditRepo.AssertExpectations(t)
}

func TestAdminProductUsecase_SetStock_NegativeRejected(t *testing.T) {
	u, _, inventoryRepo, _ := newAdminProductUsecase()

	err := u.SetStock(context.Background(), 9, 3, -1)

	ve, ok := usecase.AsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "stock")
	inventoryRepo.AssertNotCalled(t, "SetStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminProductUsecase_ListAuditLogs_PassesPaging(t *testing.T) {
	u, _, _, auditRepo := newAdminProductUsecase()
	ctx := context.Background()

	auditRepo.On("List", ctx, repo.AuditLogFilter{Page: 2, Limit: 50}).Return([]model.AuditLog{
		{ID: 1, Action: model.AuditActionUpdateStock},
	}, nil)

	logs, err := u.ListAuditLogs(ctx, 2, 50)

	assert.NoError(t, err)
	assert.Len(t, logs, 1)
	auditRepo.AssertExpectations(t)
}

package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/pricing"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testRates() pricing.Rates {
	return pricing.Rates{
		TaxRate:               dec("0.08"),
		ShippingFlatFee:       dec("5.00"),
		FreeShippingThreshold: dec("50.00"),
	}
}

func newCartUsecase() (*usecase.CartUsecase, *CartRepoMock, *CartItemRepoMock, *ProductRepoMock, *VariantRepoMock, *PromoRepoMock) {
	cartRepo := new(CartRepoMock)
	itemRepo := new(CartItemRepoMock)
	productRepo := new(ProductRepoMock)
	variantRepo := new(VariantRepoMock)
	promoRepo := new(PromoRepoMock)
	u := usecase.NewCartUsecase(cartRepo, itemRepo, productRepo, variantRepo, promoRepo, testRates(), "USD")
	return u, cartRepo, itemRepo, productRepo, variantRepo, promoRepo
}

func TestCartUsecase_AddToCart_SnapshotsPriceAndName(t *testing.T) {
	u, cartRepo, itemRepo, productRepo, _, _ := newCartUsecase()
	ctx := context.Background()

	cartRepo.On("GetOrCreateActiveByUserID", ctx, int64(1)).Return(model.Cart{ID: 10, UserID: 1, Status: model.CartStatusActive}, nil)
	productRepo.On("FindByID", ctx, int64(7)).Return(model.Product{
		ID: 7, Name: "Organic Onesie", BasePrice: dec("24.99"), Stock: 5, IsActive: true,
	}, nil)
	itemRepo.On("ListByCartID", ctx, int64(10)).Return([]model.CartItem{}, nil).Once()

	itemRepo.On("Upsert", ctx, mock.MatchedBy(func(it model.CartItem) bool {
		return it.CartID == 10 &&
			it.ProductID == 7 &&
			it.Quantity == 2 &&
			it.UnitPriceSnapshot.Equal(dec("24.99")) &&
			it.ProductNameSnapshot == "Organic Onesie"
	})).Return(nil)

	itemRepo.On("ListByCartID", ctx, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 7, Quantity: 2, UnitPriceSnapshot: dec("24.99"), ProductNameSnapshot: "Organic Onesie"},
	}, nil)

	resp, err := u.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 7, Quantity: 2})

	assert.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.True(t, resp.Subtotal.Equal(dec("49.98")), "subtotal = %s", resp.Subtotal)
	itemRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_VariantPriceOverrideWins(t *testing.T) {
	u, cartRepo, itemRepo, productRepo, variantRepo, _ := newCartUsecase()
	ctx := context.Background()

	override := dec("29.99")
	vid := int64(70)

	cartRepo.On("GetOrCreateActiveByUserID", ctx, int64(1)).Return(model.Cart{ID: 10, Status: model.CartStatusActive}, nil)
	productRepo.On("FindByID", ctx, int64(7)).Return(model.Product{ID: 7, Name: "Onesie", BasePrice: dec("24.99"), Stock: 5, IsActive: true}, nil)
	variantRepo.On("FindByID", ctx, vid).Return(model.ProductVariant{ID: vid, ProductID: 7, SKU: "ONS-36M", PriceOverride: &override}, nil)
	itemRepo.On("ListByCartID", ctx, int64(10)).Return([]model.CartItem{}, nil)

	itemRepo.On("Upsert", ctx, mock.MatchedBy(func(it model.CartItem) bool {
		return it.UnitPriceSnapshot.Equal(override) && it.SKUSnapshot == "ONS-36M"
	})).Return(nil)

	_, err := u.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 7, VariantID: &vid, Quantity: 1})

	assert.NoError(t, err)
	itemRepo.AssertExpectations(t)
}

func TestCartUsecase_AddToCart_StockExceeded(t *testing.T) {
	u, cartRepo, itemRepo, productRepo, _, _ := newCartUsecase()
	ctx := context.Background()

	cartRepo.On("GetOrCreateActiveByUserID", ctx, int64(1)).Return(model.Cart{ID: 10}, nil)
	productRepo.On("FindByID", ctx, int64(7)).Return(model.Product{ID: 7, BasePrice: dec("24.99"), Stock: 3, IsActive: true}, nil)
	//既にカートに2個入っている
	itemRepo.On("ListByCartID", ctx, int64(10)).Return([]model.CartItem{
		{ID: 1, ProductID: 7, Quantity: 2, UnitPriceSnapshot: dec("24.99")},
	}, nil)

	_, err := u.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 7, Quantity: 2})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	itemRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCartUsecase_UpdateCartItem_NotOwnedIsNotFound(t *testing.T) {
	u, _, itemRepo, _, _, _ := newCartUsecase()
	ctx := context.Background()

	itemRepo.On("IsOwnedByUser", ctx, int64(99), int64(1)).Return(false, nil)

	_, err := u.UpdateCartItem(ctx, 1, 99, usecase.UpdateCartItemInput{Quantity: 2})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestCartUsecase_ApplyPromo_Expired(t *testing.T) {
	u, _, _, _, _, promoRepo := newCartUsecase()
	ctx := context.Background()

	expired := time.Now().Add(-24 * time.Hour)
	promoRepo.On("FindByCode", ctx, "WELCOME10").Return(model.PromoCode{
		ID: 1, Code: "WELCOME10", PercentOff: dec("10"), IsActive: true, ExpiresAt: &expired,
	}, nil)

	_, err := u.ApplyPromo(ctx, 1, "WELCOME10")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestCartUsecase_Summary_PercentPromoAndFreeShipping(t *testing.T) {
	u, cartRepo, itemRepo, _, _, promoRepo := newCartUsecase()
	ctx := context.Background()

	promoID := int64(3)
	cartRepo.On("GetOrCreateActiveByUserID", ctx, int64(1)).Return(model.Cart{ID: 10, PromoCodeID: &promoID}, nil)
	promoRepo.On("FindByID", ctx, promoID).Return(model.PromoCode{
		ID: promoID, Code: "SAVE10", PercentOff: dec("10"), IsActive: true,
	}, nil)
	itemRepo.On("ListByCartID", ctx, int64(10)).Return([]model.CartItem{
		{ID: 1, ProductID: 7, Quantity: 4, UnitPriceSnapshot: dec("15.00")},
	}, nil)

	resp, err := u.Summary(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, "SAVE10", resp.PromoCode)
	assert.True(t, resp.Totals.Subtotal.Equal(dec("60.00")))
	//60ドル以上なので送料無料
	assert.True(t, resp.Totals.Shipping.Equal(decimal.Zero))
	assert.True(t, resp.Totals.Discount.Equal(dec("6.00")))
	// 60 + 4.8 - 6
	assert.True(t, resp.Totals.Total.Equal(dec("58.80")), "total = %s", resp.Totals.Total)
}

func TestCartUsecase_GetCart_EmptyCart(t *testing.T) {
	u, cartRepo, itemRepo, _, _, _ := newCartUsecase()
	ctx := context.Background()

	cartRepo.On("GetOrCreateActiveByUserID", ctx, int64(1)).Return(model.Cart{ID: 10}, nil)
	itemRepo.On("ListByCartID", ctx, int64(10)).Return([]model.CartItem{}, nil)

	resp, err := u.GetCart(ctx, 1)

	assert.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Subtotal.Equal(decimal.Zero))
	assert.Equal(t, "USD", resp.Currency)
}

func TestCartUsecase_AddToCart_InactiveProduct(t *testing.T) {
	u, cartRepo, _, productRepo, _, _ := newCartUsecase()
	ctx := context.Background()

	cartRepo.On("GetOrCreateActiveByUserID", ctx, int64(1)).Return(model.Cart{ID: 10}, nil)
	productRepo.On("FindByID", ctx, int64(7)).Return(model.Product{ID: 7, IsActive: false}, nil)

	_, err := u.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 7, Quantity: 1})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestCartUsecase_AddToCart_UnknownProduct(t *testing.T) {
	u, cartRepo, _, productRepo, _, _ := newCartUsecase()
	ctx := context.Background()

	cartRepo.On("GetOrCreateActiveByUserID", ctx, int64(1)).Return(model.Cart{ID: 10}, nil)
	productRepo.On("FindByID", ctx, int64(404)).Return(model.Product{}, repo.ErrNotFound)

	_, err := u.AddToCart(ctx, 1, usecase.AddCartInput{ProductID: 404, Quantity: 1})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

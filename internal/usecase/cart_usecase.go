package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/pricing"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジック。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	variantRepo  repo.ProductVariantRepository
	promoRepo    repo.PromoCodeRepository

	rates    pricing.Rates
	currency string
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	variantRepo repo.ProductVariantRepository,
	promoRepo repo.PromoCodeRepository,
	rates pricing.Rates,
	currency string,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		promoRepo:    promoRepo,
		rates:        rates,
		currency:     currency,
	}
}

// priceは追加時点のスナップショットを返す。
type CartItemResponse struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	VariantID    *int64          `json:"variant_id,omitempty"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku,omitempty"`
	VariantAttrs string          `json:"variant_attrs,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
	Currency string             `json:"currency"`
}

// カートの金額内訳（小計・税・送料・値引・合計）。
type CartSummaryResponse struct {
	Items     []CartItemResponse `json:"items"`
	PromoCode string             `json:"promo_code,omitempty"`
	Totals    pricing.Totals     `json:"totals"`
}

type AddCartInput struct {
	ProductID int64
	VariantID *int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（無ければACTIVEを作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// AddToCart はカートに追加（同一商品・同一バリアントは数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// ACTIVEカート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	// バリアント指定があれば取得して価格・SKUを解決
	var variant *model.ProductVariant
	if in.VariantID != nil {
		v, err := u.variantRepo.FindByID(ctx, *in.VariantID)
		if err == repo.ErrNotFound || (err == nil && v.ProductID != in.ProductID) {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid variant_id")
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		variant = &v
	}

	// 既存数量を調べて在庫と突き合わせる
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var existingQty int64 = 0
	for _, it := range items {
		if it.ProductID == in.ProductID {
			existingQty += it.Quantity
		}
	}

	newQty := existingQty + in.Quantity
	if newQty > p.Stock {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	// 追加時点の価格・名前・SKUをスナップショット
	unitPrice := p.BasePrice
	sku := ""
	attrs := ""
	if variant != nil {
		unitPrice = pricing.ResolveUnitPrice(p.BasePrice, variant.PriceOverride)
		sku = variant.SKU
		attrs = variant.AttributesJSON
	}

	item := model.CartItem{
		CartID:               cart.ID,
		ProductID:            in.ProductID,
		VariantID:            in.VariantID,
		Quantity:             in.Quantity,
		UnitPriceSnapshot:    unitPrice,
		ProductNameSnapshot:  p.Name,
		SKUSnapshot:          sku,
		VariantAttrsSnapshot: attrs,
	}

	if err := u.cartItemRepo.Upsert(ctx, item); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 数量変更（所有チェック＋在庫チェック）。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//商品の在庫チェック
	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if in.Quantity > p.Stock {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// 明細削除
func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// ApplyPromo はプロモコードをカートに適用する。
func (u *CartUsecase) ApplyPromo(ctx context.Context, userID int64, code string) (CartSummaryResponse, error) {
	if userID <= 0 {
		return CartSummaryResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return CartSummaryResponse{}, NewValidationError(map[string]string{"code": "code is required"})
	}

	promo, err := u.promoRepo.FindByCode(ctx, code)
	if err == repo.ErrNotFound {
		return CartSummaryResponse{}, NewHTTPError(http.StatusBadRequest, "invalid promo code")
	}
	if err != nil {
		return CartSummaryResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !promo.Usable(time.Now()) {
		return CartSummaryResponse{}, NewHTTPError(http.StatusBadRequest, "promo code expired")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartSummaryResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.SetPromoCode(ctx, cart.ID, &promo.ID); err != nil {
		return CartSummaryResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildSummary(ctx, cart.ID, &promo)
}

// RemovePromo はプロモコードの適用を解除する。
func (u *CartUsecase) RemovePromo(ctx context.Context, userID int64) (CartSummaryResponse, error) {
	if userID <= 0 {
		return CartSummaryResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartSummaryResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.SetPromoCode(ctx, cart.ID, nil); err != nil {
		return CartSummaryResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildSummary(ctx, cart.ID, nil)
}

// Summary はカートの金額内訳を返す。
func (u *CartUsecase) Summary(ctx context.Context, userID int64) (CartSummaryResponse, error) {
	if userID <= 0 {
		return CartSummaryResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartSummaryResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	var promo *model.PromoCode
	if cart.PromoCodeID != nil {
		p, err := u.promoRepo.FindByID(ctx, *cart.PromoCodeID)
		if err != nil && err != repo.ErrNotFound {
			return CartSummaryResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err == nil {
			promo = &p
		}
	}

	return u.buildSummary(ctx, cart.ID, promo)
}

// cartIDの明細をまとめてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, lines, err := u.loadItems(ctx, cartID)
	if err != nil {
		return CartResponse{}, err
	}

	return CartResponse{
		Items:    items,
		Subtotal: pricing.Subtotal(lines).Round(2),
		Currency: u.currency,
	}, nil
}

func (u *CartUsecase) buildSummary(ctx context.Context, cartID int64, promo *model.PromoCode) (CartSummaryResponse, error) {
	items, lines, err := u.loadItems(ctx, cartID)
	if err != nil {
		return CartSummaryResponse{}, err
	}

	subtotal := pricing.Subtotal(lines)

	discount := decimal.Zero
	code := ""
	if promo != nil && promo.Usable(time.Now()) {
		discount = pricing.PromoDiscount(subtotal, promo.PercentOff, promo.AmountOff)
		code = promo.Code
	}

	totals := pricing.AssembleTotals(subtotal, discount, u.rates, u.currency)

	return CartSummaryResponse{
		Items:     items,
		PromoCode: code,
		Totals:    totals.Rounded(),
	}, nil
}

func (u *CartUsecase) loadItems(ctx context.Context, cartID int64) ([]CartItemResponse, []pricing.LineItem, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return nil, nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	lines := make([]pricing.LineItem, 0, len(items))

	for _, it := range items {
		respItems = append(respItems, CartItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			VariantID:    it.VariantID,
			Name:         it.ProductNameSnapshot,
			SKU:          it.SKUSnapshot,
			VariantAttrs: it.VariantAttrsSnapshot,
			Price:        it.UnitPriceSnapshot,
			Quantity:     it.Quantity,
			LineTotal:    pricing.LineTotal(it.UnitPriceSnapshot, it.Quantity).Round(2),
		})

		lines = append(lines, pricing.LineItem{
			UnitPrice: it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	return respItems, lines, nil
}

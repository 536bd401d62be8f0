package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderFixture struct {
	u         *usecase.OrderUsecase
	tx        *TxManagerMock
	addresses *AddressRepoMock
	orders    *OrderRepoMock
	items     *OrderItemRepoMock
	sequences *OrderSequenceRepoMock
	carts     *CartRepoMock
	cartItems *CartItemRepoMock
	inventory *InventoryRepoMock
	products  *ProductRepoMock
	promos    *PromoRepoMock
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		addresses: new(AddressRepoMock),
		orders:    new(OrderRepoMock),
		items:     new(OrderItemRepoMock),
		sequences: new(OrderSequenceRepoMock),
		carts:     new(CartRepoMock),
		cartItems: new(CartItemRepoMock),
		inventory: new(InventoryRepoMock),
		products:  new(ProductRepoMock),
		promos:    new(PromoRepoMock),
	}
	f.tx = &TxManagerMock{Repos: &TxReposMock{
		orders:    f.orders,
		items:     f.items,
		sequences: f.sequences,
		carts:     f.carts,
		cartItems: f.cartItems,
		inventory: f.inventory,
		products:  f.products,
		promos:    f.promos,
	}}
	f.tx.On("WithinTx", mock.Anything).Return(nil).Maybe()
	f.u = usecase.NewOrderUsecase(f.tx, f.addresses, testRates(), "USD")
	return f
}

func (f *orderFixture) ownAddress(ctx context.Context, userID int64) {
	f.addresses.On("FindByID", ctx, int64(5)).Return(model.Address{
		ID: 5, UserID: userID,
		Name: "Taro Yamada", PostalCode: "100-0001", Prefecture: "Tokyo",
		City: "Chiyoda", Line1: "1-1-1",
	}, nil)
}

func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.ownAddress(ctx, 1)

	f.orders.On("FindByIdempotencyKey", ctx, int64(1), "key-abc").Return(model.Order{}, false, nil)
	f.carts.On("FindActiveByUserID", ctx, int64(1)).Return(model.Cart{ID: 10, UserID: 1, Status: model.CartStatusActive}, nil)
	f.cartItems.On("ListByCartID", ctx, int64(10)).Return([]model.CartItem{
		{ID: 1, CartID: 10, ProductID: 7, Quantity: 2, UnitPriceSnapshot: dec("24.99"), ProductNameSnapshot: "Onesie"},
		{ID: 2, CartID: 10, ProductID: 8, Quantity: 1, UnitPriceSnapshot: dec("12.50"), ProductNameSnapshot: "Bib"},
	}, nil)
	f.products.On("FindByID", ctx, int64(7)).Return(model.Product{ID: 7, IsActive: true, Stock: 10}, nil)
	f.products.On("FindByID", ctx, int64(8)).Return(model.Product{ID: 8, IsActive: true, Stock: 10}, nil)
	f.inventory.On("DecreaseStockIfEnough", ctx, int64(7), int64(2)).Return(true, nil)
	f.inventory.On("DecreaseStockIfEnough", ctx, int64(8), int64(1)).Return(true, nil)
	f.sequences.On("Next", ctx).Return(int64(42), nil)

	f.orders.On("Create", ctx, mock.MatchedBy(func(o model.Order) bool {
		// subtotal 62.48 / 送料無料 / 税 5.00 → 合計 67.48
		return o.OrderNumber == "ORD-000042" &&
			o.Status == model.OrderStatusPending &&
			o.Subtotal.Equal(dec("62.48")) &&
			o.Shipping.Equal(dec("0")) &&
			o.Total.Equal(dec("67.48")) &&
			o.ShipName == "Taro Yamada" &&
			o.IdempotencyKey == "key-abc"
	})).Return(int64(100), nil)
	f.items.On("CreateBulk", ctx, int64(100), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 && items[0].LineTotal.Equal(dec("49.98"))
	})).Return(nil)
	f.carts.On("UpdateStatus", ctx, int64(10), model.CartStatusCheckedOut).Return(nil)
	f.carts.On("Clear", ctx, int64(10)).Return(nil)

	out, err := f.u.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{AddressID: 5, IdempotencyKey: "key-abc"})

	assert.NoError(t, err)
	assert.Equal(t, "ORD-000042", out.OrderNumber)
	assert.Equal(t, string(model.OrderStatusPending), out.Status)
	assert.Len(t, out.Items, 2)
	f.orders.AssertExpectations(t)
	f.carts.AssertExpectations(t)
}

func TestOrderUsecase_PlaceOrder_IdempotentReplay(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.ownAddress(ctx, 1)

	existing := model.Order{ID: 100, UserID: 1, OrderNumber: "ORD-000042", Status: model.OrderStatusPending}
	f.orders.On("FindByIdempotencyKey", ctx, int64(1), "key-abc").Return(existing, true, nil)
	f.items.On("ListByOrderID", ctx, int64(100)).Return([]model.OrderItem{}, nil)

	out, err := f.u.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{AddressID: 5, IdempotencyKey: "key-abc"})

	assert.NoError(t, err)
	assert.Equal(t, "ORD-000042", out.OrderNumber)
	//再送では新しい注文を作らない
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.sequences.AssertNotCalled(t, "Next", mock.Anything)
}

func TestOrderUsecase_PlaceOrder_OutOfStock(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.ownAddress(ctx, 1)

	f.orders.On("FindByIdempotencyKey", ctx, int64(1), "key-abc").Return(model.Order{}, false, nil)
	f.carts.On("FindActiveByUserID", ctx, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	f.cartItems.On("ListByCartID", ctx, int64(10)).Return([]model.CartItem{
		{ID: 1, ProductID: 7, Quantity: 5, UnitPriceSnapshot: dec("24.99")},
	}, nil)
	f.products.On("FindByID", ctx, int64(7)).Return(model.Product{ID: 7, IsActive: true, Stock: 1}, nil)
	f.inventory.On("DecreaseStockIfEnough", ctx, int64(7), int64(5)).Return(false, nil)

	_, err := f.u.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{AddressID: 5, IdempotencyKey: "key-abc"})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_EmptyCart(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	f.ownAddress(ctx, 1)

	f.orders.On("FindByIdempotencyKey", ctx, int64(1), "key-abc").Return(model.Order{}, false, nil)
	f.carts.On("FindActiveByUserID", ctx, int64(1)).Return(model.Cart{ID: 10, UserID: 1}, nil)
	f.cartItems.On("ListByCartID", ctx, int64(10)).Return([]model.CartItem{}, nil)

	_, err := f.u.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{AddressID: 5, IdempotencyKey: "key-abc"})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestOrderUsecase_PlaceOrder_OtherUsersAddressForbidden(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	//住所はユーザー2のもの
	f.ownAddress(ctx, 2)

	_, err := f.u.PlaceOrder(ctx, 1, usecase.PlaceOrderInput{AddressID: 5, IdempotencyKey: "key-abc"})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
}

func TestOrderUsecase_PlaceOrder_MissingIdempotencyKey(t *testing.T) {
	f := newOrderFixture()

	_, err := f.u.PlaceOrder(context.Background(), 1, usecase.PlaceOrderInput{AddressID: 5})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestOrderUsecase_ListMyOrders_PassesPaging(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.orders.On("ListByUserID", ctx, int64(1), 2, 10).Return([]model.Order{
		{ID: 100, UserID: 1, OrderNumber: "ORD-000100"},
	}, int64(23), nil)
	f.items.On("ListByOrderID", ctx, int64(100)).Return([]model.OrderItem{}, nil)

	out, err := f.u.ListMyOrders(ctx, 1, 2, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(23), out.Total)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 10, out.Limit)
	assert.Len(t, out.Items, 1)
	f.orders.AssertExpectations(t)
}

func TestOrderUsecase_ListMyOrders_RejectsBadPaging(t *testing.T) {
	f := newOrderFixture()

	for _, c := range [][2]int{{0, 20}, {1, 0}, {1, 101}} {
		_, err := f.u.ListMyOrders(context.Background(), 1, c[0], c[1])

		he, ok := usecase.AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Status)
	}
}

func TestOrderUsecase_GetMyOrderDetail_OtherUsersOrderIsNotFound(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.orders.On("FindByID", ctx, int64(100)).Return(model.Order{ID: 100, UserID: 2}, nil)

	_, err := f.u.GetMyOrderDetail(ctx, 1, 100)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestOrderUsecase_GetMyOrderDetail_NotFound(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	f.orders.On("FindByID", ctx, int64(9999)).Return(model.Order{}, repo.ErrNotFound)

	_, err := f.u.GetMyOrderDetail(ctx, 1, 9999)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

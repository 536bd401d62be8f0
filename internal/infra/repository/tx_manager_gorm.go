package repository

import (
	"context"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders          repo.OrderRepository
	orderItems      repo.OrderItemRepository
	orderSequences  repo.OrderSequenceRepository
	carts           repo.CartRepository
	cartItems       repo.CartItemRepository
	inventory       repo.InventoryRepository
	products        repo.ProductRepository
	productVariants repo.ProductVariantRepository
	promoCodes      repo.PromoCodeRepository
	supplierImports repo.SupplierImportRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                   { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository           { return r.orderItems }
func (r *txReposGorm) OrderSequences() repo.OrderSequenceRepository   { return r.orderSequences }
func (r *txReposGorm) Carts() repo.CartRepository                     { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository             { return r.cartItems }
func (r *txReposGorm) Inventory() repo.InventoryRepository            { return r.inventory }
func (r *txReposGorm) Products() repo.ProductRepository               { return r.products }
func (r *txReposGorm) ProductVariants() repo.ProductVariantRepository { return r.productVariants }
func (r *txReposGorm) PromoCodes() repo.PromoCodeRepository           { return r.promoCodes }
func (r *txReposGorm) SupplierImports() repo.SupplierImportRepository { return r.supplierImports }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:          NewOrderGormRepository(tx),
			orderItems:      NewOrderItemGormRepository(tx),
			orderSequences:  NewOrderSequenceGormRepository(tx),
			carts:           NewCartGormRepository(tx),
			cartItems:       NewCartGormRepository(tx),
			inventory:       NewInventoryGormRepository(tx),
			products:        NewProductGormRepository(tx),
			productVariants: NewProductVariantGormRepository(tx),
			promoCodes:      NewPromoCodeGormRepository(tx),
			supplierImports: NewSupplierImportGormRepository(tx),
		}
		return fn(r)
	})
}

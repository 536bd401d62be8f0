package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 「よく一緒に購入されている商品」。過去の注文明細の同時出現から求める。
type RecommendationRepository interface {
	FrequentlyBoughtWith(ctx context.Context, productID int64, limit int) ([]model.Product, error)
}

package repository

import (
	"context"

	"storefront/internal/domain/model"

	"gorm.io/gorm"
)

type RecommendationGormRepository struct {
	db *gorm.DB
}

func NewRecommendationGormRepository(db *gorm.DB) *RecommendationGormRepository {
	return &RecommendationGormRepository{db: db}
}

// 同じ注文に一緒に入っていた回数が多い公開商品を返す。
func (r *RecommendationGormRepository) FrequentlyBoughtWith(ctx context.Context, productID int64, limit int) ([]model.Product, error) {
	var ids []int64

	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.product_id").
		Joins("JOIN order_items AS base ON base.order_id = oi.order_id AND base.product_id = ?", productID).
		Where("oi.product_id <> ?", productID).
		Group("oi.product_id").
		Order("COUNT(*) DESC").
		Limit(limit).
		Pluck("oi.product_id", &ids).Error
	if err != nil {
		return []model.Product{}, err
	}

	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	var products []model.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&products).Error; err != nil {
		return []model.Product{}, err
	}

	// 同時購入回数の順に並べ直す
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]model.Product, 0, len(products))
	for _, id := range ids {
		if p, found := byID[id]; found {
			out = append(out, p)
		}
	}
	return out, nil
}

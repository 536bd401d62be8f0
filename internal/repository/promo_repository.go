package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type PromoCodeRepository interface {
	FindByCode(ctx context.Context, code string) (model.PromoCode, error)
	FindByID(ctx context.Context, id int64) (model.PromoCode, error)
}

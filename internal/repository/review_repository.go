package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ReviewRepository interface {
	ListByProductID(ctx context.Context, productID int64, page int, limit int) ([]model.Review, int64, error)
	FindByID(ctx context.Context, id int64) (model.Review, error)
	ExistsByProductAndUser(ctx context.Context, productID int64, userID int64) (bool, error)
	Create(ctx context.Context, r model.Review) (model.Review, error)
	DeleteByID(ctx context.Context, id int64) error
}

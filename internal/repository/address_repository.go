package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type AddressRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)
	FindByID(ctx context.Context, id int64) (model.Address, error)
	Create(ctx context.Context, a model.Address) (model.Address, error)
	Update(ctx context.Context, a model.Address) error
	Delete(ctx context.Context, id int64) error
	// 既存のデフォルトを外してから設定する
	SetDefault(ctx context.Context, userID int64, addressID int64) error
}

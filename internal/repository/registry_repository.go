package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type RegistryRepository interface {
	Create(ctx context.Context, r model.Registry) (model.Registry, error)
	FindByID(ctx context.Context, id int64) (model.Registry, error)
	FindBySlug(ctx context.Context, slug string) (model.Registry, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Registry, error)
	Update(ctx context.Context, r model.Registry) error

	AddItem(ctx context.Context, item model.RegistryItem) (model.RegistryItem, error)
	ListItems(ctx context.Context, registryID int64) ([]model.RegistryItem, error)
	FindItemByID(ctx context.Context, itemID int64) (model.RegistryItem, error)
	UpdateItem(ctx context.Context, item model.RegistryItem) error
}

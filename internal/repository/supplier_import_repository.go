package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type SupplierImportRepository interface {
	Create(ctx context.Context, imp model.SupplierImport) (model.SupplierImport, error)
	FindBySourceAndExternalID(ctx context.Context, source string, externalID string) (model.SupplierImport, bool, error)
}

package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"

	"gorm.io/gorm"
)

type SupplierImportGormRepository struct {
	db *gorm.DB
}

func NewSupplierImportGormRepository(db *gorm.DB) *SupplierImportGormRepository {
	return &SupplierImportGormRepository{db: db}
}

func (r *SupplierImportGormRepository) Create(ctx context.Context, imp model.SupplierImport) (model.SupplierImport, error) {
	if err := r.db.WithContext(ctx).Create(&imp).Error; err != nil {
		return model.SupplierImport{}, err
	}
	return imp, nil
}

func (r *SupplierImportGormRepository) FindBySourceAndExternalID(ctx context.Context, source string, externalID string) (model.SupplierImport, bool, error) {
	var imp model.SupplierImport
	err := r.db.WithContext(ctx).
		Where("source = ? AND external_id = ?", source, externalID).
		First(&imp).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.SupplierImport{}, false, nil
	}
	if err != nil {
		return model.SupplierImport{}, false, err
	}
	return imp, true, nil
}

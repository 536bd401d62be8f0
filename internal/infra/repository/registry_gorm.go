package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type RegistryGormRepository struct {
	db *gorm.DB
}

func NewRegistryGormRepository(db *gorm.DB) *RegistryGormRepository {
	return &RegistryGormRepository{db: db}
}

func (r *RegistryGormRepository) Create(ctx context.Context, reg model.Registry) (model.Registry, error) {
	if err := r.db.WithContext(ctx).Create(&reg).Error; err != nil {
		return model.Registry{}, err
	}
	return reg, nil
}

func (r *RegistryGormRepository) FindByID(ctx context.Context, id int64) (model.Registry, error) {
	var reg model.Registry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Registry{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Registry{}, err
	}
	return reg, nil
}

func (r *RegistryGormRepository) FindBySlug(ctx context.Context, slug string) (model.Registry, error) {
	var reg model.Registry
	err := r.db.WithContext(ctx).Where("share_slug = ?", slug).First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Registry{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Registry{}, err
	}
	return reg, nil
}

func (r *RegistryGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Registry, error) {
	var items []model.Registry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&items).Error; err != nil {
		return []model.Registry{}, err
	}
	return items, nil
}

func (r *RegistryGormRepository) Update(ctx context.Context, reg model.Registry) error {
	res := r.db.WithContext(ctx).Model(&model.Registry{}).
		Where("id = ?", reg.ID).
		Updates(map[string]interface{}{
			"title":      reg.Title,
			"child_name": reg.ChildName,
			"birth_date": reg.BirthDate,
			"height_cm":  reg.HeightCM,
			"weight_kg":  reg.WeightKG,
			"is_public":  reg.IsPublic,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RegistryGormRepository) AddItem(ctx context.Context, item model.RegistryItem) (model.RegistryItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.RegistryItem{}, err
	}
	return item, nil
}

func (r *RegistryGormRepository) ListItems(ctx context.Context, registryID int64) ([]model.RegistryItem, error) {
	var items []model.RegistryItem
	if err := r.db.WithContext(ctx).
		Where("registry_id = ?", registryID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.RegistryItem{}, err
	}
	return items, nil
}

func (r *RegistryGormRepository) FindItemByID(ctx context.Context, itemID int64) (model.RegistryItem, error) {
	var item model.RegistryItem
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RegistryItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.RegistryItem{}, err
	}
	return item, nil
}

func (r *RegistryGormRepository) UpdateItem(ctx context.Context, item model.RegistryItem) error {
	res := r.db.WithContext(ctx).Model(&model.RegistryItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"desired_qty":   item.DesiredQty,
			"purchased_qty": item.PurchasedQty,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

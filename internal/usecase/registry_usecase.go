package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/sizing"

	"github.com/google/uuid"
)

// ギフトレジストリ＋成長トラッカー。
type RegistryUsecase struct {
	registryRepo repo.RegistryRepository
	productRepo  repo.ProductRepository
	predictor    sizing.Predictor

	now func() time.Time
}

func NewRegistryUsecase(
	registryRepo repo.RegistryRepository,
	productRepo repo.ProductRepository,
	predictor sizing.Predictor,
) *RegistryUsecase {
	return &RegistryUsecase{
		registryRepo: registryRepo,
		productRepo:  productRepo,
		predictor:    predictor,
		now:          time.Now,
	}
}

type CreateRegistryInput struct {
	Title     string
	ChildName string
	BirthDate time.Time
	HeightCM  float64
	WeightKG  float64
	IsPublic  bool
}

type UpdateRegistryInput struct {
	Title     *string
	ChildName *string
	HeightCM  *float64
	WeightKG  *float64
	IsPublic  *bool
}

type RegistryItemOutput struct {
	ID           int64         `json:"id"`
	Product      model.Product `json:"product"`
	DesiredQty   int64         `json:"desired_qty"`
	PurchasedQty int64         `json:"purchased_qty"`
}

type RegistryDetailOutput struct {
	Registry model.Registry       `json:"registry"`
	Items    []RegistryItemOutput `json:"items"`
	Forecast []sizing.Forecast    `json:"forecast"`
}

func (u *RegistryUsecase) Create(ctx context.Context, userID int64, in CreateRegistryInput) (model.Registry, error) {
	if userID <= 0 {
		return model.Registry{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(in.ChildName) == "" {
		fields["child_name"] = "child_name is required"
	}
	if in.BirthDate.IsZero() {
		fields["birth_date"] = "birth_date is required"
	}
	if in.HeightCM < 0 {
		fields["height_cm"] = "height_cm must not be negative"
	}
	if in.WeightKG < 0 {
		fields["weight_kg"] = "weight_kg must not be negative"
	}
	if len(fields) > 0 {
		return model.Registry{}, NewValidationError(fields)
	}

	created, err := u.registryRepo.Create(ctx, model.Registry{
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		ChildName: strings.TrimSpace(in.ChildName),
		BirthDate: in.BirthDate,
		HeightCM:  in.HeightCM,
		WeightKG:  in.WeightKG,
		ShareSlug: uuid.NewString(),
		IsPublic:  in.IsPublic,
	})
	if err != nil {
		return model.Registry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *RegistryUsecase) ListMine(ctx context.Context, userID int64) ([]model.Registry, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	regs, err := u.registryRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return regs, nil
}

// GetMine は本人のレジストリだけ返す。他人のIDは404。
func (u *RegistryUsecase) GetMine(ctx context.Context, userID int64, registryID int64) (RegistryDetailOutput, error) {
	reg, err := u.findOwned(ctx, userID, registryID)
	if err != nil {
		return RegistryDetailOutput{}, err
	}
	return u.buildDetail(ctx, reg)
}

func (u *RegistryUsecase) Update(ctx context.Context, userID int64, registryID int64, in UpdateRegistryInput) (model.Registry, error) {
	reg, err := u.findOwned(ctx, userID, registryID)
	if err != nil {
		return model.Registry{}, err
	}

	fields := map[string]string{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			fields["title"] = "title is required"
		} else {
			reg.Title = strings.TrimSpace(*in.Title)
		}
	}
	if in.ChildName != nil {
		if strings.TrimSpace(*in.ChildName) == "" {
			fields["child_name"] = "child_name is required"
		} else {
			reg.ChildName = strings.TrimSpace(*in.ChildName)
		}
	}
	if in.HeightCM != nil {
		if *in.HeightCM < 0 {
			fields["height_cm"] = "height_cm must not be negative"
		} else {
			reg.HeightCM = *in.HeightCM
		}
	}
	if in.WeightKG != nil {
		if *in.WeightKG < 0 {
			fields["weight_kg"] = "weight_kg must not be negative"
		} else {
			reg.WeightKG = *in.WeightKG
		}
	}
	if in.IsPublic != nil {
		reg.IsPublic = *in.IsPublic
	}
	if len(fields) > 0 {
		return model.Registry{}, NewValidationError(fields)
	}

	if err := u.registryRepo.Update(ctx, reg); err != nil {
		return model.Registry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return reg, nil
}

func (u *RegistryUsecase) AddItem(ctx context.Context, userID int64, registryID int64, productID int64, desiredQty int64) (model.RegistryItem, error) {
	if _, err := u.findOwned(ctx, userID, registryID); err != nil {
		return model.RegistryItem{}, err
	}
	if productID <= 0 {
		return model.RegistryItem{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if desiredQty < 1 {
		return model.RegistryItem{}, NewValidationError(map[string]string{"desired_qty": "desired_qty must be at least 1"})
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.RegistryItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.RegistryItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.RegistryItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	item, err := u.registryRepo.AddItem(ctx, model.RegistryItem{
		RegistryID: registryID,
		ProductID:  productID,
		DesiredQty: desiredQty,
	})
	if err != nil {
		return model.RegistryItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

// MarkPurchased は購入済み数を加算する。希望数を超えては積まない。
func (u *RegistryUsecase) MarkPurchased(ctx context.Context, userID int64, registryID int64, itemID int64, qty int64) (model.RegistryItem, error) {
	if _, err := u.findOwned(ctx, userID, registryID); err != nil {
		return model.RegistryItem{}, err
	}
	if qty < 1 {
		return model.RegistryItem{}, NewValidationError(map[string]string{"qty": "qty must be at least 1"})
	}

	item, err := u.registryRepo.FindItemByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return model.RegistryItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.RegistryItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if item.RegistryID != registryID {
		return model.RegistryItem{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	item.PurchasedQty += qty
	if item.PurchasedQty > item.DesiredQty {
		item.PurchasedQty = item.DesiredQty
	}
	if err := u.registryRepo.UpdateItem(ctx, item); err != nil {
		return model.RegistryItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

// GetShared は共有スラッグでの公開ビュー。非公開は404。
func (u *RegistryUsecase) GetShared(ctx context.Context, slug string) (RegistryDetailOutput, error) {
	if slug == "" {
		return RegistryDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}

	reg, err := u.registryRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return RegistryDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return RegistryDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !reg.IsPublic {
		return RegistryDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return u.buildDetail(ctx, reg)
}

// SizeForecast は子どもの月齢・実測値からのサイズ予測。
func (u *RegistryUsecase) SizeForecast(ctx context.Context, userID int64, registryID int64) ([]sizing.Forecast, error) {
	reg, err := u.findOwned(ctx, userID, registryID)
	if err != nil {
		return nil, err
	}
	return u.forecastFor(reg), nil
}

func (u *RegistryUsecase) findOwned(ctx context.Context, userID int64, registryID int64) (model.Registry, error) {
	if userID <= 0 {
		return model.Registry{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if registryID <= 0 {
		return model.Registry{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	reg, err := u.registryRepo.FindByID(ctx, registryID)
	if err == repo.ErrNotFound {
		return model.Registry{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Registry{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if reg.UserID != userID {
		return model.Registry{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return reg, nil
}

func (u *RegistryUsecase) forecastFor(reg model.Registry) []sizing.Forecast {
	return u.predictor.Forecast(reg.BirthDate, sizing.Measurements{
		HeightCM: reg.HeightCM,
		WeightKG: reg.WeightKG,
	}, u.now())
}

func (u *RegistryUsecase) buildDetail(ctx context.Context, reg model.Registry) (RegistryDetailOutput, error) {
	items, err := u.registryRepo.ListItems(ctx, reg.ID)
	if err != nil {
		return RegistryDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return RegistryDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]RegistryItemOutput, 0, len(items))
	for _, it := range items {
		p, found := byID[it.ProductID]
		if !found {
			continue
		}
		out = append(out, RegistryItemOutput{
			ID:           it.ID,
			Product:      p,
			DesiredQty:   it.DesiredQty,
			PurchasedQty: it.PurchasedQty,
		})
	}

	return RegistryDetailOutput{
		Registry: reg,
		Items:    out,
		Forecast: u.forecastFor(reg),
	}, nil
}

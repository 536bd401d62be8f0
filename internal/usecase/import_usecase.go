package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// 仕入れ元カタログからの商品取り込み（ドロップシッピング）。
// 取り込んだ商品は下書き（非公開）で作成し、公開は管理者が明示的に行う。
// 商品・バリアント・取り込み記録は1トランザクションで書く。途中で失敗した
// 商品行だけが残ると、(source, external_id) の冪等ガードが効かず再実行で
// 重複するため。
type ImportUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository

	defaultMarkupPercent decimal.Decimal
	currency             string
}

func NewImportUsecase(
	tx repo.TransactionManager,
	auditRepo repo.AuditLogRepository,
	defaultMarkupPercent decimal.Decimal,
	currency string,
) *ImportUsecase {
	return &ImportUsecase{
		tx:                   tx,
		auditRepo:            auditRepo,
		defaultMarkupPercent: defaultMarkupPercent,
		currency:             currency,
	}
}

type ImportVariantInput struct {
	SKU        string
	Attributes map[string]string
}

type ImportProductInput struct {
	Source      string
	ExternalID  string
	Name        string
	Description string
	Cost        decimal.Decimal
	//nilなら設定のデフォルト上乗せ率
	MarkupPercent *decimal.Decimal
	Variants      []ImportVariantInput
}

type ImportProductOutput struct {
	Product  model.Product        `json:"product"`
	Import   model.SupplierImport `json:"import"`
	Variants int                  `json:"variants"`
	//既に取り込み済みだった場合true
	AlreadyImported bool `json:"already_imported"`
}

func (u *ImportUsecase) ImportProduct(ctx context.Context, adminUserID int64, in ImportProductInput) (ImportProductOutput, error) {
	if adminUserID <= 0 {
		return ImportProductOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	fields := map[string]string{}
	if strings.TrimSpace(in.Source) == "" {
		fields["source"] = "source is required"
	}
	if strings.TrimSpace(in.ExternalID) == "" {
		fields["external_id"] = "external_id is required"
	}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if in.Cost.LessThanOrEqual(decimal.Zero) {
		fields["cost"] = "cost must be positive"
	}
	markup := u.defaultMarkupPercent
	if in.MarkupPercent != nil {
		if in.MarkupPercent.IsNegative() {
			fields["markup_percent"] = "markup_percent must not be negative"
		} else {
			markup = *in.MarkupPercent
		}
	}
	seen := map[string]bool{}
	for _, v := range in.Variants {
		sku := strings.TrimSpace(v.SKU)
		if sku == "" {
			fields["variants"] = "variant sku is required"
			break
		}
		if seen[sku] {
			fields["variants"] = "duplicate variant sku"
			break
		}
		seen[sku] = true
	}
	if len(fields) > 0 {
		return ImportProductOutput{}, NewValidationError(fields)
	}

	source := strings.TrimSpace(in.Source)
	externalID := strings.TrimSpace(in.ExternalID)

	//販売価格 = 仕入れ値 * (1 + 上乗せ率/100)
	price := in.Cost.Mul(decimal.NewFromInt(1).Add(markup.Div(decimal.NewFromInt(100)))).Round(2)

	var out ImportProductOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//同じ仕入れ元・同じ商品の二重取り込みは冪等に返す
		if existing, found, err := r.SupplierImports().FindBySourceAndExternalID(ctx, source, externalID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		} else if found {
			p, err := r.Products().FindByID(ctx, existing.ProductID)
			if err != nil && err != repo.ErrNotFound {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = ImportProductOutput{Product: p, Import: existing, AlreadyImported: true}
			return nil
		}

		product, err := r.Products().Create(ctx, model.Product{
			Name:        strings.TrimSpace(in.Name),
			Description: strings.TrimSpace(in.Description),
			BasePrice:   price,
			Currency:    u.currency,
			Stock:       0,
			IsActive:    false,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if len(in.Variants) > 0 {
			variants := make([]model.ProductVariant, 0, len(in.Variants))
			for _, v := range in.Variants {
				attrs, _ := json.Marshal(v.Attributes)
				variants = append(variants, model.ProductVariant{
					ProductID:      product.ID,
					SKU:            strings.TrimSpace(v.SKU),
					AttributesJSON: string(attrs),
				})
			}
			if err := r.ProductVariants().CreateBulk(ctx, variants); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		imp, err := r.SupplierImports().Create(ctx, model.SupplierImport{
			AdminUserID:   adminUserID,
			Source:        source,
			ExternalID:    externalID,
			ProductID:     product.ID,
			Cost:          in.Cost,
			MarkupPercent: markup,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = ImportProductOutput{
			Product:  product,
			Import:   imp,
			Variants: len(in.Variants),
		}
		return nil
	})
	if err != nil {
		return ImportProductOutput{}, err
	}

	if !out.AlreadyImported {
		after, _ := json.Marshal(map[string]any{
			"source":      source,
			"external_id": externalID,
			"cost":        in.Cost,
			"base_price":  price,
		})
		//監査ログの失敗で取り込み自体は失敗させない
		_ = u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionImportProduct,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   out.Product.ID,
			AfterJSON:    string(after),
			CreatedAt:    time.Now(),
		})
	}

	return out, nil
}

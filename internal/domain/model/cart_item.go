package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細。
// 追加時点の価格・商品名・SKUを必ずスナップショットで保存（後からカタログを
// 編集しても過去の明細は変わらない）。
type CartItem struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64  `gorm:"not null;index" json:"cart_id"`
	ProductID int64  `gorm:"not null;index" json:"product_id"`
	VariantID *int64 `gorm:"index" json:"variant_id,omitempty"`
	Quantity  int64  `gorm:"not null" json:"quantity"`

	UnitPriceSnapshot    decimal.Decimal `gorm:"type:numeric(12,2);not null;column:unit_price_snapshot" json:"unit_price_snapshot"`
	ProductNameSnapshot  string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	SKUSnapshot          string          `gorm:"type:varchar(100);column:sku_snapshot" json:"sku_snapshot"`
	VariantAttrsSnapshot string          `gorm:"type:text" json:"variant_attrs_snapshot"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

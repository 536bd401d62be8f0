package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品バリアント（サイズ・色など）。
type ProductVariant struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64  `gorm:"not null;index" json:"product_id"`
	SKU       string `gorm:"type:varchar(100);not null;uniqueIndex" json:"sku"`

	//属性はJSON文字列で保存する（{"size":"3-6M","color":"sage"}）
	AttributesJSON string `gorm:"type:text" json:"attributes_json"`

	//上書き価格。無ければ商品の基本価格
	PriceOverride *decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_override,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

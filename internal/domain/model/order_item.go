package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64  `gorm:"not null;index" json:"order_id"`
	ProductID int64  `gorm:"not null;index" json:"product_id"`
	VariantID *int64 `gorm:"index" json:"variant_id,omitempty"`

	ProductNameSnapshot  string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	SKUSnapshot          string          `gorm:"type:varchar(100);column:sku_snapshot" json:"sku_snapshot"`
	VariantAttrsSnapshot string          `gorm:"type:text" json:"variant_attrs_snapshot"`
	UnitPriceSnapshot    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price_snapshot"`

	Quantity int64 `gorm:"not null" json:"quantity"`

	//quantity × unit_price_snapshot
	LineTotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

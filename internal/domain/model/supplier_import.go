package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 仕入れ元からの取り込み記録（ドロップシッピング）。
type SupplierImport struct {
	ID          int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminUserID int64 `gorm:"not null;index" json:"admin_user_id"`

	//仕入れ元の識別子。同じ仕入れ元の同じ商品は二重に取り込まない
	Source     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_imports_source_external" json:"source"`
	ExternalID string `gorm:"type:varchar(255);not null;uniqueIndex:idx_imports_source_external" json:"external_id"`

	//取り込みで作成した商品
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	//仕入れ値と適用した上乗せ率
	Cost          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"cost"`
	MarkupPercent decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"markup_percent"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

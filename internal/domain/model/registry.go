package model

import "time"

// 成長トラッカー付きのギフトレジストリ。
type Registry struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	ChildName string    `gorm:"type:varchar(255);not null" json:"child_name"`
	BirthDate time.Time `gorm:"not null" json:"birth_date"`

	//直近の実測値。未計測は0
	HeightCM float64 `gorm:"not null;default:0" json:"height_cm"`
	WeightKG float64 `gorm:"not null;default:0" json:"weight_kg"`

	//共有URL用のスラッグ（uuid）
	ShareSlug string `gorm:"type:varchar(36);not null;uniqueIndex" json:"share_slug"`

	IsPublic  bool      `gorm:"not null;default:false" json:"is_public"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// レジストリの明細。
type RegistryItem struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	RegistryID int64 `gorm:"not null;index;uniqueIndex:idx_registry_items_registry_product" json:"registry_id"`
	ProductID  int64 `gorm:"not null;index;uniqueIndex:idx_registry_items_registry_product" json:"product_id"`

	//希望数と購入済み数
	DesiredQty   int64 `gorm:"not null;default:1" json:"desired_qty"`
	PurchasedQty int64 `gorm:"not null;default:0" json:"purchased_qty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

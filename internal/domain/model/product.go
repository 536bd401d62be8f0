package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	//基本価格。バリアント側に上書きがあればそちらが優先
	BasePrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_price"`

	//参考価格（取り消し線表示用）。無ければnull
	CompareAtPrice *decimal.Decimal `gorm:"type:numeric(12,2)" json:"compare_at_price,omitempty"`

	Currency  string         `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Stock     int64          `gorm:"not null" json:"stock"`
	IsActive  bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// プロモコード。percent_offとamount_offはどちらか一方を使う（percent優先）。
type PromoCode struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Code string `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`

	PercentOff decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"percent_off"`
	AmountOff  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"amount_off"`

	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Usable は今このコードが使えるか。
func (p PromoCode) Usable(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return false
	}
	return true
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusPaid     OrderStatus = "PAID"
	OrderStatusShipped  OrderStatus = "SHIPPED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// 注文。作成後は追記のみ（ステータス遷移だけ）。
type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//表示用の注文番号（ORD-000001形式）。採番はorder_sequences
	OrderNumber string `gorm:"type:varchar(20);not null;uniqueIndex" json:"order_number"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//金額の内訳。total = subtotal + tax + shipping - discount
	Subtotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tax"`
	Shipping decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shipping"`
	Discount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount"`
	Total    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Currency string          `gorm:"type:varchar(3);not null" json:"currency"`

	//配送先スナップショット（住所録を後から編集しても注文は変わらない）
	ShipName       string `gorm:"type:varchar(255);not null" json:"ship_name"`
	ShipPostalCode string `gorm:"type:varchar(20);not null" json:"ship_postal_code"`
	ShipPrefecture string `gorm:"type:varchar(100);not null" json:"ship_prefecture"`
	ShipCity       string `gorm:"type:varchar(255);not null" json:"ship_city"`
	ShipLine1      string `gorm:"type:varchar(255);not null" json:"ship_line1"`
	ShipLine2      string `gorm:"type:varchar(255)" json:"ship_line2"`
	ShipPhone      string `gorm:"type:varchar(30)" json:"ship_phone"`

	IdempotencyKey string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

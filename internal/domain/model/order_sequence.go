package model

// 注文番号の採番カウンタ。1行だけ持ち、行ロックで加算する。
// 「既存件数+1」方式は同時チェックアウトで重複するため使わない。
type OrderSequence struct {
	ID    int64 `gorm:"primaryKey"`
	Value int64 `gorm:"not null"`
}

package pricing

import (
	"fmt"

	"golang.org/x/text/currency"
)

// FormatOrderNumber は連番を表示用の注文番号にする（ORD-000001形式）。
// 連番の採番自体はDB側（order_sequences）が担当する。
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("ORD-%06d", seq)
}

// ValidCurrency はISO 4217の通貨コードかどうか。
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}

package pricing

import (
	"github.com/shopspring/decimal"
)

// カート・注文で共通に使う明細1行分。
type LineItem struct {
	UnitPrice decimal.Decimal
	Quantity  int64
}

// 金額の内訳。total = subtotal + tax + shipping - discount（0未満にはしない）。
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// 税率・送料の設定値。configから渡す。
type Rates struct {
	TaxRate               decimal.Decimal
	ShippingFlatFee       decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

// Subtotal は Σ unitPrice × quantity。空リストは0。
// 途中で丸めない（丸めはDTOに出すときだけ）。
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return sum
}

// LineTotal は明細1行の金額。
func LineTotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// ShippingFee は送料。しきい値以上（ちょうども含む）なら無料。
func ShippingFee(subtotal decimal.Decimal, r Rates) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(r.FreeShippingThreshold) {
		return decimal.Zero
	}
	return r.ShippingFlatFee
}

// Tax は小計×税率。
func Tax(subtotal decimal.Decimal, r Rates) decimal.Decimal {
	return subtotal.Mul(r.TaxRate)
}

// AssembleTotals は内訳をまとめる。入力は検証済み前提（ここではチェックしない）。
func AssembleTotals(subtotal decimal.Decimal, discount decimal.Decimal, r Rates, currency string) Totals {
	tax := Tax(subtotal, r)
	shipping := ShippingFee(subtotal, r)

	total := subtotal.Add(tax).Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
		Currency: currency,
	}
}

// Rounded は各金額を通貨の最小単位（2桁）へ丸めたコピーを返す。
// 合計は丸め済みの各項目から計算し直す。元のTotalを単独で丸めると、
// 税と値引の丸めが逆方向に出たとき内訳と1セントずれる。
func (t Totals) Rounded() Totals {
	subtotal := t.Subtotal.Round(2)
	tax := t.Tax.Round(2)
	shipping := t.Shipping.Round(2)
	discount := t.Discount.Round(2)

	total := subtotal.Add(tax).Add(shipping).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
		Currency: t.Currency,
	}
}

// ResolveUnitPrice はバリアントの上書き価格があればそちら、無ければ基本価格。
func ResolveUnitPrice(basePrice decimal.Decimal, override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return basePrice
}

// PromoDiscount はプロモコードの値引額。percentOff優先、無ければamountOff。
// 値引が小計を超える場合は小計まで。
func PromoDiscount(subtotal decimal.Decimal, percentOff decimal.Decimal, amountOff decimal.Decimal) decimal.Decimal {
	var d decimal.Decimal
	if percentOff.IsPositive() {
		d = subtotal.Mul(percentOff).Div(decimal.NewFromInt(100))
	} else {
		d = amountOff
	}

	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	return d
}

package pricing_test

import (
	"testing"

	"storefront/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func usRates() pricing.Rates {
	return pricing.Rates{
		TaxRate:               dec("0.08"),
		ShippingFlatFee:       dec("5.99"),
		FreeShippingThreshold: dec("50"),
	}
}

func TestSubtotal_Empty(t *testing.T) {
	got := pricing.Subtotal(nil)
	assert.True(t, got.Equal(decimal.Zero))
}

func TestSubtotal_SumOfLineTotals(t *testing.T) {
	items := []pricing.LineItem{
		{UnitPrice: dec("24.99"), Quantity: 2},
		{UnitPrice: dec("12.50"), Quantity: 1},
	}

	got := pricing.Subtotal(items)
	assert.True(t, got.Equal(dec("62.48")), "got %s", got)
}

func TestSubtotal_OrderIndependent(t *testing.T) {
	a := []pricing.LineItem{
		{UnitPrice: dec("1.01"), Quantity: 3},
		{UnitPrice: dec("0.99"), Quantity: 7},
		{UnitPrice: dec("19.95"), Quantity: 1},
	}
	b := []pricing.LineItem{a[2], a[0], a[1]}

	assert.True(t, pricing.Subtotal(a).Equal(pricing.Subtotal(b)))
}

func TestShippingFee_BelowThreshold(t *testing.T) {
	got := pricing.ShippingFee(dec("49.99"), usRates())
	assert.True(t, got.Equal(dec("5.99")))
}

func TestShippingFee_AtThresholdIsFree(t *testing.T) {
	// ちょうどしきい値は送料無料
	got := pricing.ShippingFee(dec("50"), usRates())
	assert.True(t, got.Equal(decimal.Zero))
}

func TestShippingFee_AboveThreshold(t *testing.T) {
	got := pricing.ShippingFee(dec("62.48"), usRates())
	assert.True(t, got.Equal(decimal.Zero))
}

func TestAssembleTotals_Invariant(t *testing.T) {
	cases := []struct {
		name     string
		subtotal string
		discount string
	}{
		{"no discount below threshold", "31.47", "0"},
		{"discount below threshold", "31.47", "5"},
		{"no discount above threshold", "62.48", "0"},
		{"discount above threshold", "120.00", "12.34"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pricing.AssembleTotals(dec(tc.subtotal), dec(tc.discount), usRates(), "USD")

			want := got.Subtotal.Add(got.Tax).Add(got.Shipping).Sub(got.Discount)
			assert.True(t, got.Total.Equal(want), "total=%s want=%s", got.Total, want)
			assert.Equal(t, "USD", got.Currency)
		})
	}
}

func TestAssembleTotals_TwoLineBreakdown(t *testing.T) {
	// [{24.99 x2}, {12.50 x1}] → 小計62.48、税8%=4.9984、送料0、合計67.4784
	items := []pricing.LineItem{
		{UnitPrice: dec("24.99"), Quantity: 2},
		{UnitPrice: dec("12.50"), Quantity: 1},
	}

	got := pricing.AssembleTotals(pricing.Subtotal(items), decimal.Zero, usRates(), "USD")

	assert.True(t, got.Subtotal.Equal(dec("62.48")))
	assert.True(t, got.Tax.Equal(dec("4.9984")), "tax=%s", got.Tax)
	assert.True(t, got.Shipping.Equal(decimal.Zero))
	assert.True(t, got.Total.Equal(dec("67.4784")), "total=%s", got.Total)

	rounded := got.Rounded()
	assert.Equal(t, "67.48", rounded.Total.StringFixed(2))
}

func TestRounded_KeepsBreakdownInvariant(t *testing.T) {
	// 税と値引の丸めが逆方向に出るケース。
	// 小計61.93、税8%=4.9544→4.95、値引7%=4.3351→4.34。
	subtotal := dec("61.93")
	discount := pricing.PromoDiscount(subtotal, dec("7"), decimal.Zero)

	got := pricing.AssembleTotals(subtotal, discount, usRates(), "USD").Rounded()

	want := got.Subtotal.Add(got.Tax).Add(got.Shipping).Sub(got.Discount)
	assert.True(t, got.Total.Equal(want), "total=%s want=%s", got.Total, want)
	assert.Equal(t, "4.95", got.Tax.StringFixed(2))
	assert.Equal(t, "4.34", got.Discount.StringFixed(2))
	assert.Equal(t, "62.54", got.Total.StringFixed(2))
}

func TestRounded_TotalNeverNegative(t *testing.T) {
	got := pricing.Totals{Subtotal: dec("0.004"), Discount: dec("0.01"), Currency: "USD"}.Rounded()
	assert.True(t, got.Total.Equal(decimal.Zero), "total=%s", got.Total)
}

func TestAssembleTotals_TotalNeverNegative(t *testing.T) {
	got := pricing.AssembleTotals(dec("10"), dec("100"), usRates(), "USD")
	assert.True(t, got.Total.Equal(decimal.Zero), "total=%s", got.Total)
}

func TestResolveUnitPrice(t *testing.T) {
	base := dec("19.99")

	assert.True(t, pricing.ResolveUnitPrice(base, nil).Equal(base))

	override := dec("17.49")
	assert.True(t, pricing.ResolveUnitPrice(base, &override).Equal(override))
}

func TestPromoDiscount_Percent(t *testing.T) {
	got := pricing.PromoDiscount(dec("100"), dec("10"), decimal.Zero)
	assert.True(t, got.Equal(dec("10")))
}

func TestPromoDiscount_Amount(t *testing.T) {
	got := pricing.PromoDiscount(dec("100"), decimal.Zero, dec("15"))
	assert.True(t, got.Equal(dec("15")))
}

func TestPromoDiscount_CappedAtSubtotal(t *testing.T) {
	got := pricing.PromoDiscount(dec("10"), decimal.Zero, dec("25"))
	assert.True(t, got.Equal(dec("10")))
}

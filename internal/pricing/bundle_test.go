package pricing_test

import (
	"testing"

	"storefront/internal/pricing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func bundleCandidates() []pricing.BundleCandidate {
	return []pricing.BundleCandidate{
		{ProductID: 1, BasePrice: dec("29.99")},
		{ProductID: 2, BasePrice: dec("12.50")},
		{ProductID: 3, BasePrice: dec("24.99")},
	}
}

func TestQuoteBundle_AllSelectedTenPercentOff(t *testing.T) {
	// 3商品 [29.99, 12.50, 24.99] 全選択・10%OFF
	q, ok := pricing.QuoteBundle(bundleCandidates(), []int64{1, 2, 3}, dec("10"))

	assert.True(t, ok)
	assert.True(t, q.TotalPrice.Equal(dec("67.48")), "total=%s", q.TotalPrice)
	assert.True(t, q.Savings.Equal(dec("6.748")), "savings=%s", q.Savings)
	assert.True(t, q.FinalPrice.Equal(dec("60.732")), "final=%s", q.FinalPrice)
	assert.Equal(t, "60.73", q.FinalPrice.Round(2).StringFixed(2))
}

func TestQuoteBundle_FinalEqualsTotalMinusSavings(t *testing.T) {
	q, ok := pricing.QuoteBundle(bundleCandidates(), []int64{1, 3}, dec("15"))

	assert.True(t, ok)
	assert.True(t, q.FinalPrice.Equal(q.TotalPrice.Sub(q.Savings)))
}

func TestQuoteBundle_NoDiscountConfigured(t *testing.T) {
	q, ok := pricing.QuoteBundle(bundleCandidates(), []int64{2}, decimal.Zero)

	assert.True(t, ok)
	assert.True(t, q.Savings.Equal(decimal.Zero))
	assert.True(t, q.FinalPrice.Equal(q.TotalPrice))
}

func TestQuoteBundle_EmptySelectionIsDistinctState(t *testing.T) {
	_, ok := pricing.QuoteBundle(bundleCandidates(), nil, dec("10"))
	assert.False(t, ok)
}

func TestQuoteBundle_UnknownAndDuplicateIDsIgnored(t *testing.T) {
	q, ok := pricing.QuoteBundle(bundleCandidates(), []int64{2, 2, 99}, dec("10"))

	assert.True(t, ok)
	assert.Equal(t, []int64{2}, q.SelectedIDs)
	assert.True(t, q.TotalPrice.Equal(dec("12.50")))
}

func TestQuoteBundle_OnlyUnknownIDs(t *testing.T) {
	_, ok := pricing.QuoteBundle(bundleCandidates(), []int64{98, 99}, dec("10"))
	assert.False(t, ok)
}

package pricing

import (
	"github.com/shopspring/decimal"
)

// まとめ買い候補（メイン商品＋おすすめ商品）。
type BundleCandidate struct {
	ProductID int64
	BasePrice decimal.Decimal
}

// まとめ買いの見積り。
type BundleQuote struct {
	SelectedIDs []int64         `json:"selected_ids"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Savings     decimal.Decimal `json:"savings"`
	FinalPrice  decimal.Decimal `json:"final_price"`
}

// QuoteBundle は選択された候補の合計と値引を計算する。
// 候補に無いIDは無視。有効な選択が1つも無ければ ok=false
// （選択ゼロは「金額0」ではなく別の状態として扱う）。
func QuoteBundle(candidates []BundleCandidate, selectedIDs []int64, discountPercent decimal.Decimal) (BundleQuote, bool) {
	byID := make(map[int64]decimal.Decimal, len(candidates))
	for _, c := range candidates {
		byID[c.ProductID] = c.BasePrice
	}

	total := decimal.Zero
	picked := make([]int64, 0, len(selectedIDs))
	seen := make(map[int64]bool, len(selectedIDs))

	for _, id := range selectedIDs {
		price, found := byID[id]
		if !found || seen[id] {
			continue
		}
		seen[id] = true
		picked = append(picked, id)
		total = total.Add(price)
	}

	if len(picked) == 0 {
		return BundleQuote{}, false
	}

	savings := decimal.Zero
	if discountPercent.IsPositive() {
		savings = total.Mul(discountPercent).Div(decimal.NewFromInt(100))
	}

	return BundleQuote{
		SelectedIDs: picked,
		TotalPrice:  total,
		Savings:     savings,
		FinalPrice:  total.Sub(savings),
	}, true
}

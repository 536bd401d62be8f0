package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/pricing"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// まとめ買い（メイン商品＋よく一緒に購入されている商品）の見積り。
type BundleUsecase struct {
	productRepo repo.ProductRepository
	recommender repo.RecommendationRepository

	discountPercent decimal.Decimal
	maxCandidates   int
}

func NewBundleUsecase(
	productRepo repo.ProductRepository,
	recommender repo.RecommendationRepository,
	discountPercent decimal.Decimal,
) *BundleUsecase {
	return &BundleUsecase{
		productRepo:     productRepo,
		recommender:     recommender,
		discountPercent: discountPercent,
		maxCandidates:   3,
	}
}

type BundleProductOutput struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
}

type BundleQuoteOutput struct {
	//選択ゼロは金額0ではなく別の状態として返す
	HasSelection bool                  `json:"has_selection"`
	Candidates   []BundleProductOutput `json:"candidates"`
	Quote        *pricing.BundleQuote  `json:"quote,omitempty"`
}

// FrequentlyBoughtTogether はメイン商品へのおすすめ（候補リスト）。
func (u *BundleUsecase) FrequentlyBoughtTogether(ctx context.Context, productID int64) ([]BundleProductOutput, error) {
	if productID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	main, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !main.IsActive {
		return nil, NewHTTPError(http.StatusNotFound, "not found")
	}

	recs, err := u.recommender.FrequentlyBoughtWith(ctx, productID, u.maxCandidates)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]BundleProductOutput, 0, len(recs)+1)
	out = append(out, toBundleProduct(main))
	for _, p := range recs {
		out = append(out, toBundleProduct(p))
	}
	return out, nil
}

// Quote は選択された候補の見積りを返す。
func (u *BundleUsecase) Quote(ctx context.Context, productID int64, selectedIDs []int64) (BundleQuoteOutput, error) {
	candidates, err := u.FrequentlyBoughtTogether(ctx, productID)
	if err != nil {
		return BundleQuoteOutput{}, err
	}

	pcs := make([]pricing.BundleCandidate, 0, len(candidates))
	for _, c := range candidates {
		pcs = append(pcs, pricing.BundleCandidate{ProductID: c.ID, BasePrice: c.BasePrice})
	}

	quote, ok := pricing.QuoteBundle(pcs, selectedIDs, u.discountPercent)
	if !ok {
		return BundleQuoteOutput{HasSelection: false, Candidates: candidates}, nil
	}

	//丸めた後も final = total - savings を保つ
	quote.TotalPrice = quote.TotalPrice.Round(2)
	quote.Savings = quote.Savings.Round(2)
	quote.FinalPrice = quote.TotalPrice.Sub(quote.Savings)

	return BundleQuoteOutput{
		HasSelection: true,
		Candidates:   candidates,
		Quote:        &quote,
	}, nil
}

func toBundleProduct(p model.Product) BundleProductOutput {
	return BundleProductOutput{
		ID:        p.ID,
		Name:      p.Name,
		BasePrice: p.BasePrice,
	}
}

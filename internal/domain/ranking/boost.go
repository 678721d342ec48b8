package ranking

import (
	"math"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
)

// Boost multipliers and caps. All multipliers are >= 1, so the score can never
// drop below the no-signal baseline of 1.0.
const (
	featuredMultiplier = 1.5
	onSaleMultiplier   = 1.3
	inStockMultiplier  = 1.2

	ratingBonusMax = 0.5 // reached at a 5.0 rating
	reviewBonusMax = 0.5 // reached at reviewSaturation reviews
	viewBonusMax   = 0.3 // reached at viewSaturation views

	reviewSaturation = 100
	viewSaturation   = 1000
)

// BoostScore computes the multiplicative ranking score for a product from its
// business signals. It is a pure function of the product record: recomputed on
// every index sync and stored only in the search document, never in the catalog.
//
// The result is rounded to two decimal places and is always >= 1.0.
func BoostScore(p *entity.Product) float64 {
	score := 1.0

	if p.IsFeatured {
		score *= featuredMultiplier
	}
	if p.OnSale() {
		score *= onSaleMultiplier
	}
	if p.AverageRating > 0 {
		score *= 1 + clamp01(p.AverageRating/5)*ratingBonusMax
	}
	if p.ReviewCount > 0 {
		score *= 1 + clamp01(float64(p.ReviewCount)/reviewSaturation)*reviewBonusMax
	}
	if p.ViewCount > 0 {
		score *= 1 + clamp01(float64(p.ViewCount)/viewSaturation)*viewBonusMax
	}
	if p.InStock() {
		score *= inStockMultiplier
	}

	return math.Round(score*100) / 100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package indexer

import (
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/ranking"
)

// BuildDocument projects a product and its category into the index document.
// All pricing and ranking fields are computed here, at sync time, so the
// index never holds state the catalog cannot reproduce.
func BuildDocument(p *entity.Product, c *entity.Category) entity.SearchDocument {
	doc := entity.SearchDocument{
		ID:               p.ID,
		Slug:             p.Slug,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price.InexactFloat64(),
		FinalPrice:       p.EffectivePrice().InexactFloat64(),
		DiscountPercent:  p.DiscountPercent(),
		StockQuantity:    p.StockQuantity,
		InStock:          p.InStock(),
		CategoryID:       p.CategoryID,
		IsFeatured:       p.IsFeatured,
		OnSale:           p.OnSale(),
		AverageRating:    p.AverageRating,
		ReviewCount:      p.ReviewCount,
		ViewCount:        p.ViewCount,
		PurchaseCount:    p.PurchaseCount,
		Tags:             p.Tags,
		MetaTitle:        p.MetaTitle,
		MetaKeywords:     p.MetaKeywords,
		BoostScore:       ranking.BoostScore(p),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.SalePrice.Valid {
		sp := p.SalePrice.Decimal.InexactFloat64()
		doc.SalePrice = &sp
	}
	if c != nil {
		doc.CategoryName = c.Name
		doc.CategorySlug = c.Slug
	}
	return doc
}

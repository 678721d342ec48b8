package mysql

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestSearchWhere_OnlyActive(t *testing.T) {
	f := &search.Filters{}
	f.Normalize()
	where, args := searchWhere(f)

	assert.Equal(t, "p.status = ?", where)
	assert.Equal(t, []any{"active"}, args)
}

func TestSearchWhere_FreeTextBecomesLike(t *testing.T) {
	f := &search.Filters{Query: "điện thoại"}
	f.Normalize()
	where, args := searchWhere(f)

	assert.Contains(t, where, "p.name LIKE ? OR p.description LIKE ? OR p.short_description LIKE ?")
	assert.Contains(t, args, "%điện thoại%")
	// the raw query string never lands in the SQL text
	assert.NotContains(t, where, "điện thoại")
}

func TestSearchWhere_StructuredFilters(t *testing.T) {
	featured := true
	viewMin := 100
	rating := 4.0
	f := &search.Filters{
		CategorySlug: "phones",
		MinPrice:     dec(5_000_000),
		MaxPrice:     dec(15_000_000),
		MinRating:    &rating,
		IsFeatured:   &featured,
		InStockOnly:  true,
		OnSaleOnly:   true,
		ViewCountMin: &viewMin,
		Tags:         []string{"5g", "oled"},
	}
	f.Normalize()
	where, args := searchWhere(f)

	assert.Contains(t, where, "c.slug = ?")
	assert.Contains(t, where, "COALESCE(p.sale_price, p.price) >= ?")
	assert.Contains(t, where, "COALESCE(p.sale_price, p.price) <= ?")
	assert.Contains(t, where, "p.average_rating >= ?")
	assert.Contains(t, where, "p.is_featured = ?")
	assert.Contains(t, where, "p.stock_quantity > 0")
	assert.Contains(t, where, "p.sale_price IS NOT NULL AND p.sale_price < p.price")
	assert.Contains(t, where, "p.view_count >= ?")
	assert.Contains(t, where, "JSON_CONTAINS(p.tags, JSON_QUOTE(?))")
	// status + slug + 2 prices + rating + featured + views + 2 tags
	assert.Len(t, args, 9)
}

func TestSearchOrder_Whitelist(t *testing.T) {
	cases := []struct {
		name  string
		sort  string
		order string
		want  string
	}{
		{"price ascending uses effective price", search.SortPrice, "asc", "COALESCE(p.sale_price, p.price) ASC"},
		{"rating descending", search.SortRating, "desc", "p.average_rating DESC"},
		{"unknown key falls back to recency", "boost; DELETE FROM products", "asc", "p.created_at DESC"},
		{"relevance has no sql meaning", search.SortRelevance, "desc", "p.created_at DESC"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &search.Filters{SortBy: tc.sort, SortOrder: tc.order}
			f.Normalize()
			assert.Equal(t, tc.want, searchOrder(f))
		})
	}
}

package search_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestFilters_Normalize(t *testing.T) {
	f := &search.Filters{Query: "  iphone  ", Page: 0, Limit: 0, SortOrder: "sideways"}
	f.Normalize()

	assert.Equal(t, "iphone", f.Query)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, search.DefaultLimit, f.Limit)
	assert.Equal(t, "desc", f.SortOrder)

	f = &search.Filters{Limit: 5000, Page: 3}
	f.Normalize()
	assert.Equal(t, search.MaxLimit, f.Limit)
	assert.Equal(t, search.MaxLimit*2, f.Offset())
}

func TestFilters_Validate(t *testing.T) {
	cases := []struct {
		name    string
		f       search.Filters
		wantErr bool
	}{
		{"empty is fine", search.Filters{}, false},
		{"one-char query rejected", search.Filters{Query: "a"}, true},
		{"two-char query accepted", search.Filters{Query: "tv"}, false},
		{"multibyte single rune rejected", search.Filters{Query: "đ"}, true},
		{"negative min price", search.Filters{MinPrice: dec(-1)}, true},
		{"inverted price range", search.Filters{MinPrice: dec(100), MaxPrice: dec(50)}, true},
		{"valid price range", search.Filters{MinPrice: dec(50), MaxPrice: dec(100)}, false},
		{"rating above five", search.Filters{MinRating: ptr(5.5)}, true},
		{"valid rating", search.Filters{MinRating: ptr(4.0)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.f.Normalize()
			err := tc.f.Validate()
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

// has_next holds exactly when page < ceil(total/limit); has_prev exactly when page > 1.
func TestNewPagination(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		limit    int
		total    int64
		pages    int
		hasNext  bool
		hasPrev  bool
	}{
		{"first of many", 1, 12, 100, 9, true, false},
		{"middle", 5, 12, 100, 9, true, true},
		{"last page", 9, 12, 100, 9, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"single page", 1, 20, 7, 1, false, false},
		{"empty result", 1, 20, 0, 0, false, false},
		{"page beyond end", 10, 20, 7, 1, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := search.NewPagination(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.page, p.CurrentPage)
			assert.Equal(t, tc.pages, p.TotalPages)
			assert.Equal(t, tc.total, p.TotalRecords)
			assert.Equal(t, tc.hasNext, p.HasNext, "has_next")
			assert.Equal(t, tc.hasPrev, p.HasPrev, "has_prev")
			assert.Equal(t, tc.hasNext, p.CurrentPage < p.TotalPages)
			assert.Equal(t, tc.hasPrev, p.CurrentPage > 1)
		})
	}
}

func TestSortWhitelists(t *testing.T) {
	// Recognized keys resolve on both paths.
	for _, key := range []string{
		search.SortPrice, search.SortRating, search.SortNewest,
		search.SortPopularity, search.SortBestselling, search.SortName,
	} {
		_, ok := search.IndexSortField(key)
		assert.True(t, ok, "index field for %q", key)
		_, ok = search.SQLSortColumn(key)
		assert.True(t, ok, "sql column for %q", key)
	}

	// Unknown keys fall through to relevance / recency.
	for _, key := range []string{"", search.SortRelevance, "price; DROP TABLE products"} {
		_, ok := search.IndexSortField(key)
		assert.False(t, ok, "index field for %q", key)
		_, ok = search.SQLSortColumn(key)
		assert.False(t, ok, "sql column for %q", key)
	}

	// Price sorts by what the buyer pays, not the list price.
	field, _ := search.IndexSortField(search.SortPrice)
	assert.Equal(t, "final_price", field)
	expr, _ := search.SQLSortColumn(search.SortPrice)
	assert.Equal(t, "COALESCE(p.sale_price, p.price)", expr)
}

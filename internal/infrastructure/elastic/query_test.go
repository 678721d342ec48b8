package elastic

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

func filters(mut func(*search.Filters)) *search.Filters {
	f := &search.Filters{}
	if mut != nil {
		mut(f)
	}
	f.Normalize()
	return f
}

func boolQuery(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	fs, ok := body["query"].(map[string]any)["function_score"].(map[string]any)
	require.True(t, ok, "query must be a function_score")
	// ranking multiplies relevance by the stored boost score
	fvf := fs["field_value_factor"].(map[string]any)
	assert.Equal(t, "boost_score", fvf["field"])
	assert.Equal(t, "multiply", fs["boost_mode"])
	return fs["query"].(map[string]any)["bool"].(map[string]any)
}

func TestBuildSearchBody_FreeText(t *testing.T) {
	body := buildSearchBody(filters(func(f *search.Filters) { f.Query = "iphone 15" }))
	bq := boolQuery(t, body)

	must := bq["must"].([]any)
	require.Len(t, must, 1)
	mm := must[0].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "iphone 15", mm["query"])
	assert.Equal(t, "AUTO", mm["fuzziness"])
	assert.Contains(t, mm["fields"], "name^5")

	// browse-mode boosts must not leak into a text search
	assert.Nil(t, bq["should"])

	// free text requests did-you-mean suggestions
	require.Contains(t, body, "suggest")
	assert.Equal(t, "iphone 15", body["suggest"].(map[string]any)["text"])
}

func TestBuildSearchBody_BrowseMode(t *testing.T) {
	body := buildSearchBody(filters(nil))
	bq := boolQuery(t, body)

	assert.Nil(t, bq["must"])
	should := bq["should"].([]any)
	assert.Len(t, should, 3)
	assert.NotContains(t, body, "suggest")
}

func TestBuildSearchBody_FiltersAreHardFilters(t *testing.T) {
	min := decimal.NewFromInt(5_000_000)
	max := decimal.NewFromInt(15_000_000)
	body := buildSearchBody(filters(func(f *search.Filters) {
		f.CategorySlug = "phones"
		f.MinPrice = &min
		f.MaxPrice = &max
		f.InStockOnly = true
		f.Tags = []string{"5g", "oled"}
	}))
	bq := boolQuery(t, body)

	filterCtx := bq["filter"].([]any)
	// slug + price range + in_stock + two tag terms
	assert.Len(t, filterCtx, 5)

	priceRange := filterCtx[1].(map[string]any)["range"].(map[string]any)["final_price"].(map[string]any)
	assert.Equal(t, 5_000_000.0, priceRange["gte"])
	assert.Equal(t, 15_000_000.0, priceRange["lte"])
}

func TestBuildSearchBody_Pagination(t *testing.T) {
	body := buildSearchBody(filters(func(f *search.Filters) {
		f.Page = 3
		f.Limit = 12
	}))
	assert.Equal(t, 24, body["from"])
	assert.Equal(t, 12, body["size"])
	assert.Equal(t, true, body["track_total_hits"])
}

func TestBuildSearchBody_SortWhitelist(t *testing.T) {
	// whitelisted key maps onto the effective-price field
	body := buildSearchBody(filters(func(f *search.Filters) {
		f.SortBy = search.SortPrice
		f.SortOrder = "asc"
	}))
	sort := body["sort"].([]any)
	first := sort[0].(map[string]any)
	assert.Contains(t, first, "final_price")
	assert.Equal(t, "asc", first["final_price"].(map[string]any)["order"])

	// unknown keys fall back to relevance order (no sort clause at all)
	body = buildSearchBody(filters(func(f *search.Filters) { f.SortBy = "garbage" }))
	assert.NotContains(t, body, "sort")
}

func TestBuildSearchBody_AlwaysRequestsFacets(t *testing.T) {
	body := buildSearchBody(filters(nil))
	aggs := body["aggs"].(map[string]any)
	assert.Contains(t, aggs, "categories")
	assert.Contains(t, aggs, "price_stats")
	assert.Contains(t, aggs, "avg_rating")
}

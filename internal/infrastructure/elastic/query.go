package elastic

import (
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

// Weighted fields for free-text matching. Name dominates; meta fields trail.
var searchFields = []string{
	"name^5",
	"short_description^3",
	"category_name^2",
	"tags^2",
	"sku^2",
	"meta_title",
	"meta_keywords",
}

// buildSearchBody translates a normalized filter set into one search request.
//
// Free text is a fuzzy weighted multi_match; without it the bool query boosts
// featured, high-view and high-rating items so browsing stays sensible. Every
// structured filter goes into the filter context: filters narrow the candidate
// set and never influence ranking. Ranking itself multiplies relevance by the
// precomputed boost_score.
func buildSearchBody(f *search.Filters) map[string]any {
	boolQuery := map[string]any{}

	if f.HasQuery() {
		boolQuery["must"] = []any{
			map[string]any{
				"multi_match": map[string]any{
					"query":                f.Query,
					"fields":               searchFields,
					"fuzziness":            "AUTO",
					"minimum_should_match": "70%",
				},
			},
		}
	} else {
		// Browse mode: bias toward featured / popular / well-rated items.
		boolQuery["should"] = []any{
			map[string]any{"term": map[string]any{"is_featured": map[string]any{"value": true, "boost": 2.0}}},
			map[string]any{"range": map[string]any{"view_count": map[string]any{"gte": 100, "boost": 1.5}}},
			map[string]any{"range": map[string]any{"average_rating": map[string]any{"gte": 4.0, "boost": 1.5}}},
		}
	}

	if filters := buildFilterContext(f); len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	body := map[string]any{
		"from":             f.Offset(),
		"size":             f.Limit,
		"track_total_hits": true,
		"query": map[string]any{
			"function_score": map[string]any{
				"query": map[string]any{"bool": boolQuery},
				"field_value_factor": map[string]any{
					"field":   "boost_score",
					"missing": 1.0,
				},
				"boost_mode": "multiply",
			},
		},
		"aggs": buildAggregations(),
	}

	if s := buildSort(f); s != nil {
		body["sort"] = s
	}
	if f.HasQuery() {
		body["suggest"] = map[string]any{
			"text": f.Query,
			"name_suggestion": map[string]any{
				"term": map[string]any{"field": "name"},
			},
		}
	}

	return body
}

// buildFilterContext emits one hard filter per structured parameter.
// Tags are ANDed: every requested tag must be present.
func buildFilterContext(f *search.Filters) []any {
	var filters []any

	if f.CategoryID != "" {
		filters = append(filters, term("category_id", f.CategoryID))
	}
	if f.CategorySlug != "" {
		filters = append(filters, term("category_slug", f.CategorySlug))
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		bounds := map[string]any{}
		if f.MinPrice != nil {
			bounds["gte"], _ = f.MinPrice.Float64()
		}
		if f.MaxPrice != nil {
			bounds["lte"], _ = f.MaxPrice.Float64()
		}
		filters = append(filters, map[string]any{"range": map[string]any{"final_price": bounds}})
	}
	if f.MinRating != nil {
		filters = append(filters, map[string]any{"range": map[string]any{"average_rating": map[string]any{"gte": *f.MinRating}}})
	}
	if f.IsFeatured != nil {
		filters = append(filters, term("is_featured", *f.IsFeatured))
	}
	if f.InStockOnly {
		filters = append(filters, term("in_stock", true))
	}
	if f.OnSaleOnly {
		filters = append(filters, term("on_sale", true))
	}
	if f.ViewCountMin != nil {
		filters = append(filters, map[string]any{"range": map[string]any{"view_count": map[string]any{"gte": *f.ViewCountMin}}})
	}
	for _, tag := range f.Tags {
		filters = append(filters, term("tags", tag))
	}

	return filters
}

func term(field string, value any) map[string]any {
	return map[string]any{"term": map[string]any{field: value}}
}

// buildSort maps the whitelisted sort key onto an index field, score as the
// tiebreaker. Unrecognized keys return nil: pure relevance order.
func buildSort(f *search.Filters) []any {
	field, ok := search.IndexSortField(f.SortBy)
	if !ok {
		return nil
	}
	return []any{
		map[string]any{field: map[string]any{"order": f.SortOrder}},
		"_score",
	}
}

// buildAggregations requests the facets computed alongside every search:
// category breakdown, effective-price stats and the average rating.
func buildAggregations() map[string]any {
	return map[string]any{
		"categories": map[string]any{
			"terms": map[string]any{"field": "category_slug", "size": 20},
			"aggs": map[string]any{
				"name": map[string]any{
					"terms": map[string]any{"field": "category_name.keyword", "size": 1},
				},
			},
		},
		"price_stats": map[string]any{
			"stats": map[string]any{"field": "final_price"},
		},
		"avg_rating": map[string]any{
			"avg": map[string]any{"field": "average_rating"},
		},
	}
}

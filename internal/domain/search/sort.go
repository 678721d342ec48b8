package search

// indexSortFields maps client sort keys onto index fields. Price maps to the
// effective (sale-or-list) price so discounted items sort by what the buyer
// actually pays.
var indexSortFields = map[string]string{
	SortPrice:       "final_price",
	SortRating:      "average_rating",
	SortNewest:      "created_at",
	SortPopularity:  "view_count",
	SortBestselling: "purchase_count",
	SortName:        "name.keyword",
}

// IndexSortField resolves a client sort key to an index field.
// ok is false for relevance order and for unrecognized keys.
func IndexSortField(sortBy string) (field string, ok bool) {
	field, ok = indexSortFields[sortBy]
	return field, ok
}

// sqlSortColumns is the same whitelist expressed against catalog columns.
// There is no precomputed effective-price column, hence the COALESCE.
var sqlSortColumns = map[string]string{
	SortPrice:       "COALESCE(p.sale_price, p.price)",
	SortRating:      "p.average_rating",
	SortNewest:      "p.created_at",
	SortPopularity:  "p.view_count",
	SortBestselling: "p.purchase_count",
	SortName:        "p.name",
}

// SQLSortColumn resolves a client sort key to a catalog ORDER BY expression.
// ok is false for unrecognized keys; the fallback path then orders by recency
// since it has no relevance score.
func SQLSortColumn(sortBy string) (expr string, ok bool) {
	expr, ok = sqlSortColumns[sortBy]
	return expr, ok
}

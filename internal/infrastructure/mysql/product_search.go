package mysql

import (
	"strings"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

// effectivePrice is the buyer-facing price; the catalog has no precomputed
// column for it.
const effectivePrice = "COALESCE(p.sale_price, p.price)"

// searchWhere re-expresses a filter set as a WHERE fragment with `?`
// placeholders. Free text degrades to substring matching, with no fuzziness or
// field weighting. Untrusted input only ever lands in args.
func searchWhere(f *search.Filters) (string, []any) {
	clauses := []string{"p.status = ?"}
	args := []any{"active"}

	if f.HasQuery() {
		like := "%" + f.Query + "%"
		clauses = append(clauses, "(p.name LIKE ? OR p.description LIKE ? OR p.short_description LIKE ?)")
		args = append(args, like, like, like)
	}
	if f.CategoryID != "" {
		clauses = append(clauses, "p.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.CategorySlug != "" {
		clauses = append(clauses, "c.slug = ?")
		args = append(args, f.CategorySlug)
	}
	if f.MinPrice != nil {
		clauses = append(clauses, effectivePrice+" >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, effectivePrice+" <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.MinRating != nil {
		clauses = append(clauses, "p.average_rating >= ?")
		args = append(args, *f.MinRating)
	}
	if f.IsFeatured != nil {
		clauses = append(clauses, "p.is_featured = ?")
		args = append(args, *f.IsFeatured)
	}
	if f.InStockOnly {
		clauses = append(clauses, "p.stock_quantity > 0")
	}
	if f.OnSaleOnly {
		clauses = append(clauses, "p.sale_price IS NOT NULL AND p.sale_price < p.price")
	}
	if f.ViewCountMin != nil {
		clauses = append(clauses, "p.view_count >= ?")
		args = append(args, *f.ViewCountMin)
	}
	for _, tag := range f.Tags {
		clauses = append(clauses, "JSON_CONTAINS(p.tags, JSON_QUOTE(?))")
		args = append(args, tag)
	}

	return strings.Join(clauses, " AND "), args
}

// searchOrder maps the sort key through the shared whitelist. The fallback has
// no relevance score, so unrecognized keys order by recency.
func searchOrder(f *search.Filters) string {
	dir := "DESC"
	if f.SortOrder == "asc" {
		dir = "ASC"
	}
	expr, ok := search.SQLSortColumn(f.SortBy)
	if !ok {
		return "p.created_at DESC"
	}
	return expr + " " + dir
}

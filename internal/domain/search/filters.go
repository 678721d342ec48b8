package search

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
)

// Pagination limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100

	MinQueryLength = 2
)

// Sort keys accepted from clients. Anything else falls back to relevance.
const (
	SortRelevance   = "relevance"
	SortPrice       = "price"
	SortRating      = "rating"
	SortNewest      = "newest"
	SortPopularity  = "popularity"
	SortBestselling = "bestselling"
	SortName        = "name"
)

// Filters is the flat filter set accepted by both the index path and the
// relational fallback. All fields are optional; zero values mean "not set"
// except Page/Limit, which are normalized.
type Filters struct {
	Query        string
	CategoryID   string
	CategorySlug string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinRating    *float64
	IsFeatured   *bool
	InStockOnly  bool
	OnSaleOnly   bool
	ViewCountMin *int
	Tags         []string
	SortBy       string
	SortOrder    string // asc | desc
	Page         int
	Limit        int
}

// HasQuery reports whether a free-text query is present after trimming.
func (f *Filters) HasQuery() bool {
	return strings.TrimSpace(f.Query) != ""
}

// Normalize trims the query, applies pagination defaults and clamps the limit.
func (f *Filters) Normalize() {
	f.Query = strings.TrimSpace(f.Query)
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.SortOrder != "asc" && f.SortOrder != "desc" {
		f.SortOrder = "desc"
	}
}

// Validate rejects impossible filter combinations before any store is touched.
func (f *Filters) Validate() error {
	if f.HasQuery() && len([]rune(f.Query)) < MinQueryLength {
		return fmt.Errorf("%w: query must be at least %d characters", domain.ErrInvalidInput, MinQueryLength)
	}
	if f.MinPrice != nil && f.MinPrice.IsNegative() {
		return fmt.Errorf("%w: min_price must not be negative", domain.ErrInvalidInput)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return fmt.Errorf("%w: min_price greater than max_price", domain.ErrInvalidInput)
	}
	if f.MinRating != nil && (*f.MinRating < 0 || *f.MinRating > 5) {
		return fmt.Errorf("%w: min_rating must be between 0 and 5", domain.ErrInvalidInput)
	}
	return nil
}

// Offset returns the row offset for the normalized page/limit.
func (f *Filters) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination is the envelope shared by both search paths, so callers cannot
// tell which path answered.
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalRecords int64 `json:"total_records"`
	Limit        int   `json:"limit"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

// NewPagination derives the page envelope from a total record count.
// HasNext holds exactly when page < ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalRecords: total,
		Limit:        limit,
		HasNext:      page < totalPages,
		HasPrev:      page > 1,
	}
}

package search

import (
	"context"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
)

// Engine names reported to clients in query_info.
const (
	EngineElasticsearch = "elasticsearch"
	EngineMySQLFallback = "mysql_fallback"
)

// CategoryFacet is one bucket of the category aggregation.
type CategoryFacet struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// PriceFacet summarizes the effective-price distribution of the candidate set.
type PriceFacet struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// Aggregations are the facets computed alongside an index search.
// The fallback path never produces them.
type Aggregations struct {
	Categories []CategoryFacet `json:"categories"`
	Price      PriceFacet      `json:"price"`
	AvgRating  float64         `json:"avg_rating"`
}

// Result is the engine-side answer to a filter set: one page of documents plus
// the total candidate count and optional facets/suggestions.
type Result struct {
	Documents    []entity.SearchDocument
	Total        int64
	Aggregations *Aggregations
	Suggestions  []string
}

// BulkReport summarizes a bulk indexing run. Failed items are reported, not
// retried; partial success is acceptable.
type BulkReport struct {
	Indexed int
	Errors  []string
}

// Engine is the index-mirror port: everything the application layer needs from
// the external search engine. The Elasticsearch adapter implements it; tests
// substitute fakes.
type Engine interface {
	// Search runs a normalized, validated filter set against the index.
	Search(ctx context.Context, f *Filters) (*Result, error)

	// Index adds or replaces one product document.
	Index(ctx context.Context, doc *entity.SearchDocument) error

	// Delete removes a product from the index. Deleting a missing document
	// is not an error.
	Delete(ctx context.Context, productID string) error

	// BulkIndex submits documents in chunks and reports per-item failures.
	BulkIndex(ctx context.Context, docs []entity.SearchDocument) (*BulkReport, error)

	// GetByID fetches a single indexed document, domain.ErrNotFound when absent.
	GetByID(ctx context.Context, productID string) (*entity.SearchDocument, error)
}

package repository

import (
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

// ProductRepository is the persistence port for Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	Update(product *entity.Product) error
	// SetStatus flips the lifecycle state (soft delete is a flip to inactive).
	SetStatus(id string, status string) error
	// IncrementViewCount bumps view_count by delta (view tracking flush).
	IncrementViewCount(id string, delta int) error
	List(limit, offset int) ([]*entity.Product, error)

	// GetSearchRow re-reads the full joined projection (product + category
	// name/slug) used to build the index document. Inactive and draft
	// products yield domain.ErrNotFound so the sync path deletes them.
	GetSearchRow(id string) (*entity.Product, *entity.Category, error)
	// ListActiveSearchRows streams every active product with its category
	// for a full reindex.
	ListActiveSearchRows() ([]SearchRow, error)

	// Search answers a filter set from the catalog alone (fallback path).
	Search(f *search.Filters) ([]*entity.Product, int64, error)
}

// SearchRow pairs a product with its category for bulk index builds.
type SearchRow struct {
	Product  entity.Product
	Category entity.Category
}

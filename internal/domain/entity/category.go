package entity

import (
	"time"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
)

// Category is a product category. Categories form a tree through ParentID.
// ProductCount is denormalized and refreshed by the catalog write paths.
type Category struct {
	ID           string        `db:"id"`
	Slug         string        `db:"slug"`
	Name         string        `db:"name"`
	Description  string        `db:"description"`
	ParentID     *string       `db:"parent_id"` // nil for root categories
	SortOrder    int           `db:"sort_order"`
	Status       domain.Status `db:"status"`
	ProductCount int           `db:"product_count"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

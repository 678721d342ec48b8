package repository

import "github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"

// CategoryRepository is the persistence port for Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
	Update(category *entity.Category) error
	SetStatus(id string, status string) error
	List(includeInactive bool) ([]*entity.Category, error)

	// CountActiveChildren / CountActiveProducts back the delete guard:
	// a category with active children or active products cannot be removed.
	CountActiveChildren(id string) (int, error)
	CountActiveProducts(id string) (int, error)
	// RefreshProductCount recomputes the denormalized product_count.
	RefreshProductCount(id string) error
}

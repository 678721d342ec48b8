package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/dto"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/repository"
	"github.com/ngochuy-hya/catalog-search-api/pkg/slug"
)

// CategoryUseCase covers the category CRUD lifecycle with delete guards.
type CategoryUseCase struct {
	categories repository.CategoryRepository
}

// NewCategoryUseCase builds the usecase.
func NewCategoryUseCase(categories repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories}
}

// Create creates a category. A non-nil parent must exist and be active.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.ParentID != nil {
		parent, err := uc.categories.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.Status.Visible() {
			return nil, domain.ErrConflict
		}
	}

	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Slug:        slug.Make(in.Name),
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
		SortOrder:   in.SortOrder,
		Status:      domain.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.categories.Create(c)
	if err == domain.ErrDuplicate {
		c.Slug = c.Slug + "-" + uuid.New().String()[:8]
		err = uc.categories.Create(c)
	}
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetByID fetches a category by ID.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetBySlug fetches a category by slug.
func (uc *CategoryUseCase) GetBySlug(s string) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetBySlug(s)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Update applies a partial update. Reparenting onto itself is rejected.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != c.Name {
		c.Name = *in.Name
		c.Slug = slug.Make(*in.Name)
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.ParentID != nil {
		if *in.ParentID == id {
			return nil, domain.ErrInvalidInput
		}
		parent, err := uc.categories.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.Status.Visible() {
			return nil, domain.ErrConflict
		}
		c.ParentID = in.ParentID
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
	c.UpdatedAt = time.Now()

	err = uc.categories.Update(c)
	if err == domain.ErrDuplicate {
		c.Slug = c.Slug + "-" + uuid.New().String()[:8]
		err = uc.categories.Update(c)
	}
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete soft-deletes a category. The guard refuses while the category still
// has active children or active products.
func (uc *CategoryUseCase) Delete(id string) error {
	if _, err := uc.categories.GetByID(id); err != nil {
		return err
	}
	children, err := uc.categories.CountActiveChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return domain.ErrCategoryInUse
	}
	products, err := uc.categories.CountActiveProducts(id)
	if err != nil {
		return err
	}
	if products > 0 {
		return domain.ErrCategoryInUse
	}
	return uc.categories.SetStatus(id, string(domain.StatusInactive))
}

// List returns categories, optionally including inactive ones (admin view).
func (uc *CategoryUseCase) List(includeInactive bool) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:           c.ID,
		Slug:         c.Slug,
		Name:         c.Name,
		Description:  c.Description,
		ParentID:     c.ParentID,
		SortOrder:    c.SortOrder,
		Status:       string(c.Status),
		ProductCount: c.ProductCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

package dto

import "time"

// CreateCategoryRequest is the input for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id"`
	SortOrder   int     `json:"sort_order"`
}

// UpdateCategoryRequest is the partial-update input. Nil means "leave as is".
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	ParentID    *string `json:"parent_id"`
	SortOrder   *int    `json:"sort_order"`
}

// CategoryResponse is the catalog view of a category.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ParentID     *string   `json:"parent_id,omitempty"`
	SortOrder    int       `json:"sort_order"`
	Status       string    `json:"status"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

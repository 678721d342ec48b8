package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest is the input for creating a product.
// The slug is derived from the name; status starts as draft unless set.
type CreateProductRequest struct {
	SKU              string           `json:"sku" validate:"required,min=1,max=100"`
	Name             string           `json:"name" validate:"required,min=1,max=200"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description"`
	Price            decimal.Decimal  `json:"price"`
	SalePrice        *decimal.Decimal `json:"sale_price"`
	StockQuantity    int              `json:"stock_quantity"`
	CategoryID       string           `json:"category_id" validate:"required"`
	Status           string           `json:"status"`
	IsFeatured       bool             `json:"is_featured"`
	Tags             []string         `json:"tags"`
	MetaTitle        string           `json:"meta_title"`
	MetaKeywords     string           `json:"meta_keywords"`
}

// UpdateProductRequest is the partial-update input. Nil means "leave as is".
type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"short_description"`
	Price            *decimal.Decimal `json:"price"`
	SalePrice        *decimal.Decimal `json:"sale_price"`
	ClearSalePrice   bool             `json:"clear_sale_price"`
	StockQuantity    *int             `json:"stock_quantity"`
	CategoryID       *string          `json:"category_id"`
	Status           *string          `json:"status"`
	IsFeatured       *bool            `json:"is_featured"`
	Tags             []string         `json:"tags"`
	MetaTitle        *string          `json:"meta_title"`
	MetaKeywords     *string          `json:"meta_keywords"`
}

// ProductResponse is the catalog view of a product.
type ProductResponse struct {
	ID               string           `json:"id"`
	Slug             string           `json:"slug"`
	SKU              string           `json:"sku"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description"`
	Price            decimal.Decimal  `json:"price"`
	SalePrice        *decimal.Decimal `json:"sale_price,omitempty"`
	EffectivePrice   decimal.Decimal  `json:"effective_price"`
	DiscountPercent  int              `json:"discount_percent"`
	OnSale           bool             `json:"on_sale"`
	StockQuantity    int              `json:"stock_quantity"`
	InStock          bool             `json:"in_stock"`
	CategoryID       string           `json:"category_id"`
	Status           string           `json:"status"`
	IsFeatured       bool             `json:"is_featured"`
	AverageRating    float64          `json:"average_rating"`
	ReviewCount      int              `json:"review_count"`
	ViewCount        int              `json:"view_count"`
	PurchaseCount    int              `json:"purchase_count"`
	Tags             []string         `json:"tags"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ProductListResponse is a simple paginated admin listing.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

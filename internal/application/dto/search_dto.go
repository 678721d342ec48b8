package dto

import (
	"time"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

// SearchProduct is one result row. Both paths fill the same shape; the
// fallback leaves the index-only fields (category name, boost) at their
// zero values.
type SearchProduct struct {
	ID               string    `json:"id"`
	Slug             string    `json:"slug"`
	SKU              string    `json:"sku"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"short_description"`
	Price            float64   `json:"price"`
	SalePrice        *float64  `json:"sale_price,omitempty"`
	FinalPrice       float64   `json:"final_price"`
	DiscountPercent  int       `json:"discount_percent"`
	OnSale           bool      `json:"on_sale"`
	InStock          bool      `json:"in_stock"`
	StockQuantity    int       `json:"stock_quantity"`
	CategoryID       string    `json:"category_id"`
	CategoryName     string    `json:"category_name,omitempty"`
	CategorySlug     string    `json:"category_slug,omitempty"`
	IsFeatured       bool      `json:"is_featured"`
	AverageRating    float64   `json:"average_rating"`
	ReviewCount      int       `json:"review_count"`
	Tags             []string  `json:"tags,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// QueryInfo reports which engine answered and with what inputs.
type QueryInfo struct {
	Query        string `json:"query,omitempty"`
	SearchEngine string `json:"search_engine"` // elasticsearch | mysql_fallback
	SortBy       string `json:"sort_by,omitempty"`
	SortOrder    string `json:"sort_order,omitempty"`
}

// SearchResponse is the envelope shared by both search paths.
// Aggregations and suggestions are only present on the index path.
type SearchResponse struct {
	Products     []SearchProduct      `json:"products"`
	Pagination   search.Pagination    `json:"pagination"`
	Aggregations *search.Aggregations `json:"aggregations,omitempty"`
	Suggestions  []string             `json:"suggestions,omitempty"`
	QueryInfo    QueryInfo            `json:"query_info"`
}

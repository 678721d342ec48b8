package entity

import "time"

// SearchDocument is the denormalized index-mirror projection of a product:
// the product joined with its category name/slug plus computed pricing and
// ranking fields. It is derived state: rebuilt on every sync, never written
// back to the catalog store.
type SearchDocument struct {
	ID               string    `json:"id"`
	Slug             string    `json:"slug"`
	SKU              string    `json:"sku"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"short_description"`
	Price            float64   `json:"price"`
	SalePrice        *float64  `json:"sale_price,omitempty"`
	FinalPrice       float64   `json:"final_price"`
	DiscountPercent  int       `json:"discount_percent"`
	StockQuantity    int       `json:"stock_quantity"`
	InStock          bool      `json:"in_stock"`
	CategoryID       string    `json:"category_id"`
	CategoryName     string    `json:"category_name"`
	CategorySlug     string    `json:"category_slug"`
	IsFeatured       bool      `json:"is_featured"`
	OnSale           bool      `json:"on_sale"`
	AverageRating    float64   `json:"average_rating"`
	ReviewCount      int       `json:"review_count"`
	ViewCount        int       `json:"view_count"`
	PurchaseCount    int       `json:"purchase_count"`
	Tags             []string  `json:"tags"`
	MetaTitle        string    `json:"meta_title,omitempty"`
	MetaKeywords     string    `json:"meta_keywords,omitempty"`
	BoostScore       float64   `json:"boost_score"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

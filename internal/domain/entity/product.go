package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
)

// Tags is a free-form tag list stored as a JSON column.
type Tags []string

// Value implements driver.Valuer for MySQL JSON columns.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *Tags) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	}
	return fmt.Errorf("tags: unsupported scan type %T", src)
}

// Product is a catalog product / SKU.
// AverageRating, ReviewCount, ViewCount and PurchaseCount are aggregates
// maintained by their own write paths, not by product updates.
type Product struct {
	ID               string          `db:"id"`
	Slug             string          `db:"slug"`
	SKU              string          `db:"sku"`
	Name             string          `db:"name"`
	Description      string          `db:"description"`
	ShortDescription string          `db:"short_description"`
	Price            decimal.Decimal `db:"price"`
	SalePrice        decimal.NullDecimal `db:"sale_price"`
	StockQuantity    int             `db:"stock_quantity"`
	CategoryID       string          `db:"category_id"`
	Status           domain.Status   `db:"status"`
	IsFeatured       bool            `db:"is_featured"`
	AverageRating    float64         `db:"average_rating"`
	ReviewCount      int             `db:"review_count"`
	ViewCount        int             `db:"view_count"`
	PurchaseCount    int             `db:"purchase_count"`
	Tags             Tags            `db:"tags"`
	MetaTitle        string          `db:"meta_title"`
	MetaKeywords     string          `db:"meta_keywords"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// OnSale reports whether the product has a genuine discount.
// A sale price at or above the list price is stored but never treated as a sale.
func (p *Product) OnSale() bool {
	return p.SalePrice.Valid && p.SalePrice.Decimal.IsPositive() && p.SalePrice.Decimal.LessThan(p.Price)
}

// EffectivePrice returns the sale price when genuinely discounted, else the list price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.OnSale() {
		return p.SalePrice.Decimal
	}
	return p.Price
}

// DiscountPercent returns the rounded discount percentage, 0 when not on sale.
func (p *Product) DiscountPercent() int {
	if !p.OnSale() || p.Price.IsZero() {
		return 0
	}
	pct := p.Price.Sub(p.SalePrice.Decimal).Div(p.Price).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// InStock reports whether the product can currently be purchased.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

package mysql

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/repository"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/search"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `
	p.id, p.slug, p.sku, p.name, p.description, p.short_description,
	p.price, p.sale_price, p.stock_quantity, p.category_id, p.status,
	p.is_featured, p.average_rating, p.review_count, p.view_count,
	p.purchase_count, p.tags, p.meta_title, p.meta_keywords,
	p.created_at, p.updated_at`

// ProductRepo implements the ProductRepository port over MySQL.
type ProductRepo struct {
	db *sqlx.DB
}

// NewProductRepository builds the persistence adapter for products.
func NewProductRepository(db *sqlx.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persists a new product.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, slug, sku, name, description, short_description,
			price, sale_price, stock_quantity, category_id, status, is_featured,
			average_rating, review_count, view_count, purchase_count, tags,
			meta_title, meta_keywords, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		p.ID, p.Slug, p.SKU, p.Name, p.Description, p.ShortDescription,
		p.Price, p.SalePrice, p.StockQuantity, p.CategoryID, p.Status, p.IsFeatured,
		p.AverageRating, p.ReviewCount, p.ViewCount, p.PurchaseCount, p.Tags,
		p.MetaTitle, p.MetaKeywords, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches a product by ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne("p.id = ?", id)
}

// GetBySlug fetches a product by slug.
func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	return r.getOne("p.slug = ?", slug)
}

func (r *ProductRepo) getOne(cond string, arg any) (*entity.Product, error) {
	var p entity.Product
	err := r.db.Get(&p, `SELECT `+productColumns+` FROM products p WHERE `+cond, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update rewrites the mutable fields. Aggregates (rating, counters) are owned
// by their own write paths and are not touched here.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET slug = ?, name = ?, description = ?, short_description = ?,
			price = ?, sale_price = ?, stock_quantity = ?, category_id = ?, status = ?,
			is_featured = ?, tags = ?, meta_title = ?, meta_keywords = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.Exec(query,
		p.Slug, p.Name, p.Description, p.ShortDescription,
		p.Price, p.SalePrice, p.StockQuantity, p.CategoryID, p.Status,
		p.IsFeatured, p.Tags, p.MetaTitle, p.MetaKeywords, p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus flips the lifecycle state.
func (r *ProductRepo) SetStatus(id string, status string) error {
	res, err := r.db.Exec(`UPDATE products SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("set product status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementViewCount bumps view_count by delta.
func (r *ProductRepo) IncrementViewCount(id string, delta int) error {
	_, err := r.db.Exec(`UPDATE products SET view_count = view_count + ? WHERE id = ?`, delta, id)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

// List returns products of any status, newest first (admin listing).
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.db.Select(&list,
		`SELECT `+productColumns+` FROM products p ORDER BY p.created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// searchRow is the joined projection the index document is built from.
type searchRow struct {
	entity.Product
	CatID     string  `db:"cat_id"`
	CatSlug   string  `db:"cat_slug"`
	CatName   string  `db:"cat_name"`
	CatStatus string  `db:"cat_status"`
}

const searchRowQuery = `
	SELECT ` + productColumns + `,
		c.id AS cat_id, c.slug AS cat_slug, c.name AS cat_name, c.status AS cat_status
	FROM products p
	JOIN categories c ON c.id = p.category_id`

func (row *searchRow) split() (*entity.Product, *entity.Category) {
	p := row.Product
	c := entity.Category{
		ID:     row.CatID,
		Slug:   row.CatSlug,
		Name:   row.CatName,
		Status: domain.Status(row.CatStatus),
	}
	return &p, &c
}

// GetSearchRow re-reads the joined projection for one product. Only active
// products are indexable; anything else reports ErrNotFound so the caller
// removes the document instead.
func (r *ProductRepo) GetSearchRow(id string) (*entity.Product, *entity.Category, error) {
	var row searchRow
	err := r.db.Get(&row, searchRowQuery+` WHERE p.id = ? AND p.status = ?`, id, domain.StatusActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get search row: %w", err)
	}
	p, c := row.split()
	return p, c, nil
}

// ListActiveSearchRows reads every active product with its category for a
// full reindex.
func (r *ProductRepo) ListActiveSearchRows() ([]repository.SearchRow, error) {
	var rows []searchRow
	err := r.db.Select(&rows, searchRowQuery+` WHERE p.status = ? ORDER BY p.created_at`, domain.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list search rows: %w", err)
	}
	out := make([]repository.SearchRow, 0, len(rows))
	for i := range rows {
		p, c := rows[i].split()
		out = append(out, repository.SearchRow{Product: *p, Category: *c})
	}
	return out, nil
}

// Search answers a filter set from the catalog alone, the degraded path used
// when the index is unreachable. Same filters and pagination envelope, no
// fuzziness, no facets, no boost ordering.
func (r *ProductRepo) Search(f *search.Filters) ([]*entity.Product, int64, error) {
	where, args := searchWhere(f)

	var total int64
	countQuery := `SELECT COUNT(*) FROM products p JOIN categories c ON c.id = p.category_id WHERE ` + where
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE ` + where + `
		ORDER BY ` + searchOrder(f) + `
		LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset())

	var list []*entity.Product
	if err := r.db.Select(&list, query, args...); err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	return list, total, nil
}

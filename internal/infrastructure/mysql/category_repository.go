package mysql

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `
	id, slug, name, description, parent_id, sort_order, status,
	product_count, created_at, updated_at`

// CategoryRepo implements the CategoryRepository port over MySQL.
type CategoryRepo struct {
	db *sqlx.DB
}

// NewCategoryRepository builds the persistence adapter for categories.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create persists a new category.
func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `
		INSERT INTO categories (id, slug, name, description, parent_id, sort_order,
			status, product_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		c.ID, c.Slug, c.Name, c.Description, c.ParentID, c.SortOrder,
		c.Status, c.ProductCount, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID fetches a category by ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.getOne("id = ?", id)
}

// GetBySlug fetches a category by slug.
func (r *CategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	return r.getOne("slug = ?", slug)
}

func (r *CategoryRepo) getOne(cond string, arg any) (*entity.Category, error) {
	var c entity.Category
	err := r.db.Get(&c, `SELECT `+categoryColumns+` FROM categories WHERE `+cond, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update rewrites the mutable fields.
func (r *CategoryRepo) Update(c *entity.Category) error {
	query := `
		UPDATE categories SET slug = ?, name = ?, description = ?, parent_id = ?,
			sort_order = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.Exec(query,
		c.Slug, c.Name, c.Description, c.ParentID, c.SortOrder, c.Status, c.UpdatedAt, c.ID,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus flips the lifecycle state.
func (r *CategoryRepo) SetStatus(id string, status string) error {
	res, err := r.db.Exec(`UPDATE categories SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("set category status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns categories ordered by sort_order then name.
func (r *CategoryRepo) List(includeInactive bool) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	var args []any
	if !includeInactive {
		query += ` WHERE status = ?`
		args = append(args, domain.StatusActive)
	}
	query += ` ORDER BY sort_order, name`

	var list []*entity.Category
	if err := r.db.Select(&list, query, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

// CountActiveChildren counts active child categories (delete guard).
func (r *CategoryRepo) CountActiveChildren(id string) (int, error) {
	var n int
	err := r.db.Get(&n,
		`SELECT COUNT(*) FROM categories WHERE parent_id = ? AND status = ?`,
		id, domain.StatusActive,
	)
	if err != nil {
		return 0, fmt.Errorf("count children: %w", err)
	}
	return n, nil
}

// CountActiveProducts counts active products in the category (delete guard).
func (r *CategoryRepo) CountActiveProducts(id string) (int, error) {
	var n int
	err := r.db.Get(&n,
		`SELECT COUNT(*) FROM products WHERE category_id = ? AND status = ?`,
		id, domain.StatusActive,
	)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// RefreshProductCount recomputes the denormalized product_count.
func (r *CategoryRepo) RefreshProductCount(id string) error {
	_, err := r.db.Exec(`
		UPDATE categories SET product_count = (
			SELECT COUNT(*) FROM products WHERE category_id = ? AND status = ?
		) WHERE id = ?`,
		id, domain.StatusActive, id,
	)
	if err != nil {
		return fmt.Errorf("refresh product count: %w", err)
	}
	return nil
}

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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements the UserRepository port over MySQL.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepository builds the persistence adapter for users.
func NewUserRepository(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create persists a new user.
func (r *UserRepo) Create(u *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Role, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches a user by ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getOne("id = ?", id)
}

// GetByEmail fetches a user by email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getOne("email = ?", email)
}

func (r *UserRepo) getOne(cond string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.db.Get(&u,
		`SELECT id, email, password_hash, full_name, role, status, created_at, updated_at
		 FROM users WHERE `+cond, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// SetStatus flips the lifecycle state (pending -> active on OTP verification).
func (r *UserRepo) SetStatus(id string, status string) error {
	res, err := r.db.Exec(`UPDATE users SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("set user status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

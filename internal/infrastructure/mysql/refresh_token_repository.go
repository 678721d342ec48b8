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

var _ repository.RefreshTokenRepository = (*RefreshTokenRepo)(nil)

// RefreshTokenRepo implements the RefreshTokenRepository port over MySQL.
type RefreshTokenRepo struct {
	db *sqlx.DB
}

// NewRefreshTokenRepository builds the persistence adapter for refresh tokens.
func NewRefreshTokenRepository(db *sqlx.DB) *RefreshTokenRepo {
	return &RefreshTokenRepo{db: db}
}

// Create persists a new refresh token.
func (r *RefreshTokenRepo) Create(t *entity.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at, revoked_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, t.ID, t.UserID, t.Token, t.ExpiresAt, t.RevokedAt, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// GetByToken fetches a refresh token by its opaque value.
func (r *RefreshTokenRepo) GetByToken(token string) (*entity.RefreshToken, error) {
	var t entity.RefreshToken
	err := r.db.Get(&t, `
		SELECT id, user_id, token, expires_at, revoked_at, created_at
		FROM refresh_tokens WHERE token = ?`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &t, nil
}

// Revoke marks one token as revoked.
func (r *RefreshTokenRepo) Revoke(id string) error {
	_, err := r.db.Exec(`UPDATE refresh_tokens SET revoked_at = NOW() WHERE id = ? AND revoked_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAllForUser revokes every live token of a user (logout everywhere).
func (r *RefreshTokenRepo) RevokeAllForUser(userID string) error {
	_, err := r.db.Exec(`UPDATE refresh_tokens SET revoked_at = NOW() WHERE user_id = ? AND revoked_at IS NULL`, userID)
	if err != nil {
		return fmt.Errorf("revoke user tokens: %w", err)
	}
	return nil
}

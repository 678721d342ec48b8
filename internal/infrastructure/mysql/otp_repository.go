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

var _ repository.OTPRepository = (*OTPRepo)(nil)

// OTPRepo implements the OTPRepository port over MySQL.
type OTPRepo struct {
	db *sqlx.DB
}

// NewOTPRepository builds the persistence adapter for one-time codes.
func NewOTPRepository(db *sqlx.DB) *OTPRepo {
	return &OTPRepo{db: db}
}

// Create persists a new code.
func (r *OTPRepo) Create(o *entity.OTPCode) error {
	query := `
		INSERT INTO otp_codes (id, user_id, code, purpose, expires_at, is_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, o.ID, o.UserID, o.Code, o.Purpose, o.ExpiresAt, o.IsUsed, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert otp: %w", err)
	}
	return nil
}

// GetLatest returns the most recent code for a user and purpose.
func (r *OTPRepo) GetLatest(userID, purpose string) (*entity.OTPCode, error) {
	var o entity.OTPCode
	err := r.db.Get(&o, `
		SELECT id, user_id, code, purpose, expires_at, is_used, created_at
		FROM otp_codes
		WHERE user_id = ? AND purpose = ?
		ORDER BY created_at DESC LIMIT 1`,
		userID, purpose,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get otp: %w", err)
	}
	return &o, nil
}

// MarkUsed redeems a code.
func (r *OTPRepo) MarkUsed(id string) error {
	_, err := r.db.Exec(`UPDATE otp_codes SET is_used = TRUE WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark otp used: %w", err)
	}
	return nil
}

// InvalidateForUser retires all outstanding codes for a purpose.
func (r *OTPRepo) InvalidateForUser(userID, purpose string) error {
	_, err := r.db.Exec(
		`UPDATE otp_codes SET is_used = TRUE WHERE user_id = ? AND purpose = ? AND is_used = FALSE`,
		userID, purpose,
	)
	if err != nil {
		return fmt.Errorf("invalidate otps: %w", err)
	}
	return nil
}

package repository

import "github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"

// UserRepository is the persistence port for User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	SetStatus(id string, status string) error
}

// OTPRepository stores one-time email verification codes.
type OTPRepository interface {
	Create(otp *entity.OTPCode) error
	// GetLatest returns the most recent code for a user and purpose,
	// used or not, so the usecase can decide.
	GetLatest(userID, purpose string) (*entity.OTPCode, error)
	MarkUsed(id string) error
	// InvalidateForUser marks all outstanding codes for a purpose as used
	// (issuing a new code retires the previous ones).
	InvalidateForUser(userID, purpose string) error
}

// RefreshTokenRepository stores refresh tokens, rotated on every use.
type RefreshTokenRepository interface {
	Create(token *entity.RefreshToken) error
	GetByToken(token string) (*entity.RefreshToken, error)
	Revoke(id string) error
	RevokeAllForUser(userID string) error
}

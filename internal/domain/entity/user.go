package entity

import (
	"time"

	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
)

// User roles.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is an account. Status is StatusPending until the email OTP is verified.
type User struct {
	ID           string        `db:"id"`
	Email        string        `db:"email"`
	PasswordHash string        `db:"password_hash"`
	FullName     string        `db:"full_name"`
	Role         string        `db:"role"`
	Status       domain.Status `db:"status"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

// OTPCode is a one-time email verification code.
// Valid only before ExpiresAt and while IsUsed is false.
type OTPCode struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Code      string    `db:"code"` // 6 digits
	Purpose   string    `db:"purpose"`
	ExpiresAt time.Time `db:"expires_at"`
	IsUsed    bool      `db:"is_used"`
	CreatedAt time.Time `db:"created_at"`
}

// Usable reports whether the code may still be redeemed at the given time.
func (o *OTPCode) Usable(now time.Time) bool {
	return !o.IsUsed && now.Before(o.ExpiresAt)
}

// RefreshToken is a stored refresh token, rotated on every use.
// Valid only before ExpiresAt and while RevokedAt is nil.
type RefreshToken struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Token     string     `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// Usable reports whether the token may still be exchanged at the given time.
func (r *RefreshToken) Usable(now time.Time) bool {
	return r.RevokedAt == nil && now.Before(r.ExpiresAt)
}

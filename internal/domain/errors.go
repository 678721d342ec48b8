package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserNotVerified    = errors.New("account not verified")
	ErrOTPInvalid         = errors.New("otp invalid or expired")
	ErrTokenInvalid       = errors.New("token invalid, expired or revoked")
	ErrCategoryInUse      = errors.New("category has active products or children")
	ErrIndexUnavailable   = errors.New("search index unavailable")
)

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/dto"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
)

// respondError maps domain errors onto HTTP responses. Anything unmapped is a
// 500 with a generic message so internals never leak to clients.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "email already registered"})
	case errors.Is(err, domain.ErrCategoryInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CATEGORY_IN_USE", Message: "category has active children or products"})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrOTPInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OTP_INVALID", Message: "invalid or expired verification code"})
	case errors.Is(err, domain.ErrUserNotVerified):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_VERIFIED", Message: "account pending email verification"})
	case errors.Is(err, domain.ErrTokenInvalid):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired refresh token"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid credentials"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal server error"})
	}
}

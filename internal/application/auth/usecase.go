package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/dto"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/repository"
	"github.com/ngochuy-hya/catalog-search-api/pkg/config"
	"github.com/ngochuy-hya/catalog-search-api/pkg/jwt"
	"github.com/ngochuy-hya/catalog-search-api/pkg/logger"
)

const (
	otpTTL            = 10 * time.Minute
	otpPurposeVerify  = "verify_email"
	refreshTokenBytes = 32
)

// UseCase covers the account lifecycle: register, verify the emailed OTP,
// login, refresh and logout. New accounts stay pending until verified.
type UseCase struct {
	users  repository.UserRepository
	otps   repository.OTPRepository
	tokens repository.RefreshTokenRepository
	jwtCfg config.JWTConfig
	log    *logger.Logger
}

// NewUseCase builds the usecase.
func NewUseCase(
	users repository.UserRepository,
	otps repository.OTPRepository,
	tokens repository.RefreshTokenRepository,
	jwtCfg config.JWTConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{users: users, otps: otps, tokens: tokens, jwtCfg: jwtCfg, log: log}
}

// Register creates a pending account and issues a verification code.
// Returns domain.ErrEmailAlreadyExists when the email is taken.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if existing, _ := uc.users.GetByEmail(in.Email); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         entity.RoleCustomer,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	if err := uc.issueOTP(user.ID); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		User:    toUserResponse(user),
		Message: "verification code sent",
	}, nil
}

// VerifyOTP redeems the latest verification code and activates the account.
func (uc *UseCase) VerifyOTP(in dto.VerifyOTPRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Status == domain.StatusActive {
		return nil, domain.ErrConflict
	}

	otp, err := uc.otps.GetLatest(user.ID, otpPurposeVerify)
	if err != nil {
		return nil, domain.ErrOTPInvalid
	}
	if otp.Code != in.Code || !otp.Usable(time.Now()) {
		return nil, domain.ErrOTPInvalid
	}

	if err := uc.otps.MarkUsed(otp.ID); err != nil {
		return nil, err
	}
	if err := uc.users.SetStatus(user.ID, string(domain.StatusActive)); err != nil {
		return nil, err
	}
	user.Status = domain.StatusActive

	resp := toUserResponse(user)
	return &resp, nil
}

// ResendOTP retires outstanding codes and issues a fresh one for a pending
// account.
func (uc *UseCase) ResendOTP(email string) error {
	user, err := uc.users.GetByEmail(email)
	if err != nil {
		return domain.ErrUserNotFound
	}
	if user.Status != domain.StatusPending {
		return domain.ErrConflict
	}
	return uc.issueOTP(user.ID)
}

// Login checks credentials and returns a token pair. Unverified accounts get
// domain.ErrUserNotVerified so clients can route back to the OTP screen.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.TokenPairResponse, error) {
	user, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	switch user.Status {
	case domain.StatusActive:
	case domain.StatusPending:
		return nil, domain.ErrUserNotVerified
	default:
		return nil, domain.ErrUnauthorized
	}
	return uc.issuePair(user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. A revoked or expired token yields domain.ErrTokenInvalid.
func (uc *UseCase) Refresh(in dto.RefreshRequest) (*dto.TokenPairResponse, error) {
	stored, err := uc.tokens.GetByToken(in.RefreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if !stored.Usable(time.Now()) {
		return nil, domain.ErrTokenInvalid
	}

	user, err := uc.users.GetByID(stored.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if user.Status != domain.StatusActive {
		return nil, domain.ErrUnauthorized
	}

	if err := uc.tokens.Revoke(stored.ID); err != nil {
		return nil, err
	}
	return uc.issuePair(user)
}

// Logout revokes the presented refresh token.
func (uc *UseCase) Logout(in dto.LogoutRequest) error {
	stored, err := uc.tokens.GetByToken(in.RefreshToken)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	return uc.tokens.Revoke(stored.ID)
}

// issueOTP retires outstanding codes and records a new 6-digit one.
// Email delivery is out of scope; the code is surfaced in the log for
// development setups.
func (uc *UseCase) issueOTP(userID string) error {
	if err := uc.otps.InvalidateForUser(userID, otpPurposeVerify); err != nil {
		return err
	}

	code, err := randomCode()
	if err != nil {
		return err
	}
	otp := &entity.OTPCode{
		ID:        uuid.New().String(),
		UserID:    userID,
		Code:      code,
		Purpose:   otpPurposeVerify,
		ExpiresAt: time.Now().Add(otpTTL),
		CreatedAt: time.Now(),
	}
	if err := uc.otps.Create(otp); err != nil {
		return err
	}

	uc.log.Info().Str("user_id", userID).Str("code", code).Msg("verification code issued")
	return nil
}

func (uc *UseCase) issuePair(user *entity.User) (*dto.TokenPairResponse, error) {
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	refresh := &entity.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     hex.EncodeToString(raw),
		ExpiresAt: time.Now().AddDate(0, 0, uc.jwtCfg.RefreshExpDays),
		CreatedAt: time.Now(),
	}
	if err := uc.tokens.Create(refresh); err != nil {
		return nil, err
	}

	return &dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		ExpiresIn:    uc.jwtCfg.ExpMinutes * 60,
		User:         toUserResponse(user),
	}, nil
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

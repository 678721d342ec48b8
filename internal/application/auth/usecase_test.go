package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ngochuy-hya/catalog-search-api/internal/application/auth"
	"github.com/ngochuy-hya/catalog-search-api/internal/application/dto"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain"
	"github.com/ngochuy-hya/catalog-search-api/internal/domain/entity"
	"github.com/ngochuy-hya/catalog-search-api/pkg/config"
	"github.com/ngochuy-hya/catalog-search-api/pkg/jwt"
	"github.com/ngochuy-hya/catalog-search-api/pkg/logger"
)

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{byID: map[string]*entity.User{}} }

func (r *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) SetStatus(id string, status string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Status = domain.Status(status)
	return nil
}

type fakeOTPRepo struct {
	codes []*entity.OTPCode
}

func (r *fakeOTPRepo) Create(otp *entity.OTPCode) error {
	cp := *otp
	r.codes = append(r.codes, &cp)
	return nil
}

func (r *fakeOTPRepo) GetLatest(userID, purpose string) (*entity.OTPCode, error) {
	for i := len(r.codes) - 1; i >= 0; i-- {
		if r.codes[i].UserID == userID && r.codes[i].Purpose == purpose {
			cp := *r.codes[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeOTPRepo) MarkUsed(id string) error {
	for _, c := range r.codes {
		if c.ID == id {
			c.IsUsed = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOTPRepo) InvalidateForUser(userID, purpose string) error {
	for _, c := range r.codes {
		if c.UserID == userID && c.Purpose == purpose {
			c.IsUsed = true
		}
	}
	return nil
}

type fakeTokenRepo struct {
	byToken map[string]*entity.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byToken: map[string]*entity.RefreshToken{}}
}

func (r *fakeTokenRepo) Create(t *entity.RefreshToken) error {
	cp := *t
	r.byToken[t.Token] = &cp
	return nil
}

func (r *fakeTokenRepo) GetByToken(token string) (*entity.RefreshToken, error) {
	t, ok := r.byToken[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTokenRepo) Revoke(id string) error {
	for _, t := range r.byToken {
		if t.ID == id {
			now := time.Now()
			t.RevokedAt = &now
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeTokenRepo) RevokeAllForUser(userID string) error {
	now := time.Now()
	for _, t := range r.byToken {
		if t.UserID == userID {
			t.RevokedAt = &now
		}
	}
	return nil
}

var jwtCfg = config.JWTConfig{
	Secret:         "test-secret",
	ExpMinutes:     60,
	RefreshExpDays: 7,
	Issuer:         "catalog-search-api",
}

func setup(t *testing.T) (*auth.UseCase, *fakeUserRepo, *fakeOTPRepo, *fakeTokenRepo) {
	t.Helper()
	users := newFakeUserRepo()
	otps := &fakeOTPRepo{}
	tokens := newFakeTokenRepo()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return auth.NewUseCase(users, otps, tokens, jwtCfg, log), users, otps, tokens
}

func register(t *testing.T, uc *auth.UseCase) dto.RegisterResponse {
	t.Helper()
	resp, err := uc.Register(dto.RegisterRequest{
		Email:    "huy@example.com",
		Password: "matkhau123",
		FullName: "Huy Nguyễn",
	})
	require.NoError(t, err)
	return *resp
}

func verify(t *testing.T, uc *auth.UseCase, otps *fakeOTPRepo, userID string) {
	t.Helper()
	code, err := otps.GetLatest(userID, "verify_email")
	require.NoError(t, err)
	_, err = uc.VerifyOTP(dto.VerifyOTPRequest{Email: "huy@example.com", Code: code.Code})
	require.NoError(t, err)
}

func TestRegister_CreatesPendingUserWithOTP(t *testing.T) {
	uc, users, otps, _ := setup(t)

	resp := register(t, uc)

	assert.Equal(t, "pending", resp.User.Status)
	assert.Equal(t, entity.RoleCustomer, resp.User.Role)

	stored := users.byID[resp.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "matkhau123", stored.PasswordHash, "password must be hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("matkhau123")))

	code, err := otps.GetLatest(resp.User.ID, "verify_email")
	require.NoError(t, err)
	assert.Len(t, code.Code, 6)
	assert.False(t, code.IsUsed)
}

func TestRegister_DuplicateEmailRejected(t *testing.T) {
	uc, _, _, _ := setup(t)
	register(t, uc)

	_, err := uc.Register(dto.RegisterRequest{Email: "huy@example.com", Password: "khac12345"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestVerifyOTP_ActivatesAccount(t *testing.T) {
	uc, users, otps, _ := setup(t)
	resp := register(t, uc)

	verify(t, uc, otps, resp.User.ID)

	assert.Equal(t, domain.StatusActive, users.byID[resp.User.ID].Status)
	used, _ := otps.GetLatest(resp.User.ID, "verify_email")
	assert.True(t, used.IsUsed)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	uc, _, _, _ := setup(t)
	register(t, uc)

	_, err := uc.VerifyOTP(dto.VerifyOTPRequest{Email: "huy@example.com", Code: "000000"})
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	uc, _, otps, _ := setup(t)
	resp := register(t, uc)

	for _, c := range otps.codes {
		if c.UserID == resp.User.ID {
			c.ExpiresAt = time.Now().Add(-time.Minute)
		}
	}

	code, _ := otps.GetLatest(resp.User.ID, "verify_email")
	_, err := uc.VerifyOTP(dto.VerifyOTPRequest{Email: "huy@example.com", Code: code.Code})
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
}

func TestVerifyOTP_ReusedCodeRejected(t *testing.T) {
	uc, users, otps, _ := setup(t)
	resp := register(t, uc)
	code, _ := otps.GetLatest(resp.User.ID, "verify_email")

	verify(t, uc, otps, resp.User.ID)

	// simulate a second redemption attempt against a re-pended account
	users.byID[resp.User.ID].Status = domain.StatusPending
	_, err := uc.VerifyOTP(dto.VerifyOTPRequest{Email: "huy@example.com", Code: code.Code})
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
}

func TestResendOTP_RetiresPreviousCode(t *testing.T) {
	uc, _, otps, _ := setup(t)
	resp := register(t, uc)
	first, _ := otps.GetLatest(resp.User.ID, "verify_email")

	require.NoError(t, uc.ResendOTP("huy@example.com"))

	second, _ := otps.GetLatest(resp.User.ID, "verify_email")
	assert.NotEqual(t, first.ID, second.ID)
	_, err := uc.VerifyOTP(dto.VerifyOTPRequest{Email: "huy@example.com", Code: first.Code})
	assert.ErrorIs(t, err, domain.ErrOTPInvalid, "old code is retired on resend")
}

func TestLogin_PendingUserRejected(t *testing.T) {
	uc, _, _, _ := setup(t)
	register(t, uc)

	_, err := uc.Login(dto.LoginRequest{Email: "huy@example.com", Password: "matkhau123"})
	assert.ErrorIs(t, err, domain.ErrUserNotVerified)
}

func TestLogin_VerifiedUserGetsTokenPair(t *testing.T) {
	uc, _, otps, tokens := setup(t)
	resp := register(t, uc)
	verify(t, uc, otps, resp.User.ID)

	pair, err := uc.Login(dto.LoginRequest{Email: "huy@example.com", Password: "matkhau123"})
	require.NoError(t, err)

	userID, role, err := jwt.Parse(jwtCfg.Secret, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, entity.RoleCustomer, role)
	assert.Equal(t, 3600, pair.ExpiresIn)

	stored, err := tokens.GetByToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, stored.Usable(time.Now()))
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, otps, _ := setup(t)
	resp := register(t, uc)
	verify(t, uc, otps, resp.User.ID)

	_, err := uc.Login(dto.LoginRequest{Email: "huy@example.com", Password: "saimatkhau"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	uc, _, _, _ := setup(t)

	_, err := uc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_RotatesToken(t *testing.T) {
	uc, _, otps, tokens := setup(t)
	resp := register(t, uc)
	verify(t, uc, otps, resp.User.ID)
	pair, err := uc.Login(dto.LoginRequest{Email: "huy@example.com", Password: "matkhau123"})
	require.NoError(t, err)

	next, err := uc.Refresh(dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	old, _ := tokens.GetByToken(pair.RefreshToken)
	assert.False(t, old.Usable(time.Now()), "presented token is revoked on rotation")

	_, err = uc.Refresh(dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestLogout_RevokesToken(t *testing.T) {
	uc, _, otps, _ := setup(t)
	resp := register(t, uc)
	verify(t, uc, otps, resp.User.ID)
	pair, err := uc.Login(dto.LoginRequest{Email: "huy@example.com", Password: "matkhau123"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(dto.LogoutRequest{RefreshToken: pair.RefreshToken}))

	_, err = uc.Refresh(dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

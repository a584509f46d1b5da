// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/mock"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "go-auth-service-test"
)

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository, *mock.MockSessionRepository) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	mockSessions := mock.NewMockSessionRepository(ctrl)

	cfg := config.Auth{
		TokenSignKey:         testSignKey,
		TokenIssuer:          testIssuer,
		AccessTokenDuration:  time.Hour,
		RememberMeDuration:   7 * 24 * time.Hour,
		RefreshTokenDuration: 720 * time.Hour,
	}

	svc := NewAuthService(mockUsers, mockSessions, cfg, logger.Nop()).(*authService)

	return svc, mockUsers, mockSessions
}

// activeTestUser returns a stored user whose password is `password`.
func activeTestUser(t *testing.T, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	return models.User{
		UserID:       1,
		Username:     "johndoe",
		Email:        "john@example.com",
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now().Add(-48 * time.Hour),
	}
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "johndoe", u.Username)
			assert.Equal(t, "john@example.com", u.Email)
			assert.True(t, u.IsActive)
			assert.NotEqual(t, "s3cret-pass", u.PasswordHash, "password must be hashed before persistence")
			assert.True(t, utils.CheckPassword(u.PasswordHash, "s3cret-pass"))
			u.UserID = 42
			return u, nil
		},
	)

	registered, err := svc.Register(ctx, models.RegisterRequest{
		Username:        "johndoe",
		Email:           "john@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), registered.UserID)
}

func TestAuthService_Register_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	tests := []struct {
		name  string
		req   models.RegisterRequest
		field string
	}{
		{
			name:  "short username",
			req:   models.RegisterRequest{Username: "ab", Email: "a@b.io", Password: "password", ConfirmPassword: "password"},
			field: "username",
		},
		{
			name:  "bad email",
			req:   models.RegisterRequest{Username: "johndoe", Email: "not-an-email", Password: "password", ConfirmPassword: "password"},
			field: "email",
		},
		{
			name:  "short password",
			req:   models.RegisterRequest{Username: "johndoe", Email: "a@b.io", Password: "abc", ConfirmPassword: "abc"},
			field: "password",
		},
		{
			name:  "confirmation mismatch",
			req:   models.RegisterRequest{Username: "johndoe", Email: "a@b.io", Password: "password", ConfirmPassword: "different"},
			field: "confirm_password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)

			require.ErrorIs(t, err, ErrInvalidDataProvided)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Details, tt.field)
		})
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrUsernameAlreadyExists)

	_, err := svc.Register(ctx, models.RegisterRequest{
		Username:        "johndoe",
		Email:           "john@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	})

	require.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	storedUser := activeTestUser(t, "s3cret-pass")
	var recordedHash string

	gomock.InOrder(
		mockUsers.EXPECT().FindUserByIdentifier(ctx, "johndoe").Return(storedUser, nil),
		mockSessions.EXPECT().RecordLogin(ctx, storedUser.UserID, gomock.Any(), time.Hour, false).DoAndReturn(
			func(_ context.Context, _ int64, tokenHash string, _ time.Duration, _ bool) (models.UserSession, error) {
				recordedHash = tokenHash
				return models.UserSession{SessionID: 10, UserID: storedUser.UserID, TokenHash: tokenHash, IsActive: true}, nil
			},
		),
	)

	loggedIn, pair, err := svc.Login(ctx, models.LoginRequest{Username: "johndoe", Password: "s3cret-pass"})

	require.NoError(t, err)
	assert.Equal(t, storedUser.UserID, loggedIn.UserID)

	// the ledger must hold the digest of the exact token handed out
	assert.Equal(t, utils.HashToken(pair.AccessToken.SignedString), recordedHash)

	access, err := utils.ValidateAndParseJWTToken(pair.AccessToken.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, models.TokenUseAccess, access.TokenUse)
	assert.Equal(t, storedUser.UserID, access.UserID)

	refresh, err := utils.ValidateAndParseJWTToken(pair.RefreshToken.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, models.TokenUseRefresh, refresh.TokenUse)
}

func TestAuthService_Login_RememberMe_UsesExtendedTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	storedUser := activeTestUser(t, "s3cret-pass")

	mockUsers.EXPECT().FindUserByIdentifier(ctx, "johndoe").Return(storedUser, nil)
	mockSessions.EXPECT().RecordLogin(ctx, storedUser.UserID, gomock.Any(), 7*24*time.Hour, true).
		Return(models.UserSession{}, nil)

	_, pair, err := svc.Login(ctx, models.LoginRequest{Username: "johndoe", Password: "s3cret-pass", RememberMe: true})

	require.NoError(t, err)
	assert.InDelta(t, (7 * 24 * time.Hour).Seconds(), float64(pair.AccessToken.ExpiresIn()), 5)
}

func TestAuthService_Login_UnknownIdentifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByIdentifier(ctx, "ghost").Return(models.User{}, store.ErrNoUserWasFound)

	_, _, err := svc.Login(ctx, models.LoginRequest{Username: "ghost", Password: "whatever"})

	// unknown identifier must be indistinguishable from a wrong password
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByIdentifier(ctx, "johndoe").Return(activeTestUser(t, "s3cret-pass"), nil)

	_, _, err := svc.Login(ctx, models.LoginRequest{Username: "johndoe", Password: "wrong-pass"})

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	disabled := activeTestUser(t, "s3cret-pass")
	disabled.IsActive = false

	mockUsers.EXPECT().FindUserByIdentifier(ctx, "johndoe").Return(disabled, nil)

	_, _, err := svc.Login(ctx, models.LoginRequest{Username: "johndoe", Password: "s3cret-pass"})

	require.ErrorIs(t, err, ErrAccountDisabled)
}

func TestAuthService_Login_SessionRecordingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	storedUser := activeTestUser(t, "s3cret-pass")
	errLedger := errors.New("ledger unavailable")

	mockUsers.EXPECT().FindUserByIdentifier(ctx, "johndoe").Return(storedUser, nil)
	mockSessions.EXPECT().RecordLogin(ctx, storedUser.UserID, gomock.Any(), time.Hour, false).
		Return(models.UserSession{}, errLedger)

	_, _, err := svc.Login(ctx, models.LoginRequest{Username: "johndoe", Password: "s3cret-pass"})

	// no token leaves the service without its ledger record
	require.ErrorIs(t, err, errLedger)
}

// ── Refresh ──────────────────────────────────────────────────────────────────

func TestAuthService_Refresh_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	storedUser := activeTestUser(t, "s3cret-pass")
	refreshToken, err := utils.GenerateJWTToken(testIssuer, storedUser.UserID, models.TokenUseRefresh, time.Hour, testSignKey)
	require.NoError(t, err)

	gomock.InOrder(
		mockUsers.EXPECT().FindUserByID(ctx, storedUser.UserID).Return(storedUser, nil),
		mockSessions.EXPECT().CreateSession(ctx, storedUser.UserID, gomock.Any(), time.Hour).
			Return(models.UserSession{SessionID: 11}, nil),
	)

	refreshedUser, newAccess, err := svc.Refresh(ctx, refreshToken.SignedString)

	require.NoError(t, err)
	assert.Equal(t, storedUser.UserID, refreshedUser.UserID)
	assert.Equal(t, models.TokenUseAccess, newAccess.TokenUse)
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	expired, err := utils.GenerateJWTToken(testIssuer, 1, models.TokenUseRefresh, -time.Minute, testSignKey)
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), expired.SignedString)

	require.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestAuthService_Refresh_AccessTokenRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	// an access token is not a ticket to mint more access tokens
	access, err := utils.GenerateJWTToken(testIssuer, 1, models.TokenUseAccess, time.Hour, testSignKey)
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), access.SignedString)

	require.ErrorIs(t, err, ErrTokenIsInvalid)
}

func TestAuthService_Refresh_UserGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	refreshToken, err := utils.GenerateJWTToken(testIssuer, 99, models.TokenUseRefresh, time.Hour, testSignKey)
	require.NoError(t, err)

	mockUsers.EXPECT().FindUserByID(ctx, int64(99)).Return(models.User{}, store.ErrNoUserWasFound)

	_, _, err = svc.Refresh(ctx, refreshToken.SignedString)

	require.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthService_Refresh_DisabledAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	disabled := activeTestUser(t, "s3cret-pass")
	disabled.IsActive = false

	refreshToken, err := utils.GenerateJWTToken(testIssuer, disabled.UserID, models.TokenUseRefresh, time.Hour, testSignKey)
	require.NoError(t, err)

	mockUsers.EXPECT().FindUserByID(ctx, disabled.UserID).Return(disabled, nil)

	_, _, err = svc.Refresh(ctx, refreshToken.SignedString)

	require.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthService_Refresh_GarbageToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	_, _, err := svc.Refresh(context.Background(), "not.a.token")

	require.ErrorIs(t, err, ErrTokenIsInvalid)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestAuthService_Logout_RevokesByTokenHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	rawToken := "raw.access.token"
	mockSessions.EXPECT().RevokeSession(ctx, int64(1), utils.HashToken(rawToken)).Return(true, nil)

	require.NoError(t, svc.Logout(ctx, 1, rawToken))
}

func TestAuthService_Logout_AlreadyRevoked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockSessions.EXPECT().RevokeSession(ctx, int64(1), gomock.Any()).Return(false, nil)

	require.NoError(t, svc.Logout(ctx, 1, "unknown-token"))
}

func TestAuthService_Logout_StorageErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockSessions.EXPECT().RevokeSession(ctx, int64(1), gomock.Any()).Return(false, errors.New("connection reset"))

	// the client discards its token regardless, so logout never fails
	require.NoError(t, svc.Logout(ctx, 1, "some-token"))
}

// ── VerifyAccessToken ────────────────────────────────────────────────────────

func TestAuthService_VerifyAccessToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	access, err := utils.GenerateJWTToken(testIssuer, 7, models.TokenUseAccess, time.Hour, testSignKey)
	require.NoError(t, err)

	token, err := svc.VerifyAccessToken(context.Background(), access.SignedString)

	require.NoError(t, err)
	assert.Equal(t, int64(7), token.UserID)
	assert.Equal(t, models.TokenUseAccess, token.TokenUse)
}

func TestAuthService_VerifyAccessToken_RefreshTokenRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	refresh, err := utils.GenerateJWTToken(testIssuer, 7, models.TokenUseRefresh, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(context.Background(), refresh.SignedString)

	require.ErrorIs(t, err, ErrTokenIsInvalid)
}

func TestAuthService_VerifyAccessToken_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	expired, err := utils.GenerateJWTToken(testIssuer, 7, models.TokenUseAccess, -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(context.Background(), expired.SignedString)

	require.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestAuthService_VerifyAccessToken_WrongKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	forged, err := utils.GenerateJWTToken(testIssuer, 7, models.TokenUseAccess, time.Hour, "attacker-key")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(context.Background(), forged.SignedString)

	require.ErrorIs(t, err, ErrTokenIsInvalid)
}

// ── CurrentUser ──────────────────────────────────────────────────────────────

func TestAuthService_CurrentUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	storedUser := activeTestUser(t, "s3cret-pass")
	mockUsers.EXPECT().FindUserByID(ctx, storedUser.UserID).Return(storedUser, nil)

	currentUser, err := svc.CurrentUser(ctx, storedUser.UserID)

	require.NoError(t, err)
	assert.Equal(t, storedUser.Username, currentUser.Username)
}

func TestAuthService_CurrentUser_Gone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByID(ctx, int64(5)).Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.CurrentUser(ctx, 5)

	require.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthService_CurrentUser_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	disabled := activeTestUser(t, "s3cret-pass")
	disabled.IsActive = false

	mockUsers.EXPECT().FindUserByID(ctx, disabled.UserID).Return(disabled, nil)

	_, err := svc.CurrentUser(ctx, disabled.UserID)

	// not ErrAccountDisabled: on token-bearing paths a disabled owner is
	// plain unauthorized, 403 belongs to the login path only
	require.ErrorIs(t, err, ErrUserInactive)
}

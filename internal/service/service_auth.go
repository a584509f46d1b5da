// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/store"
	"github.com/MKhiriev/go-auth-service/internal/utils"
	"github.com/MKhiriev/go-auth-service/models"
)

// authService is the concrete implementation of AuthService.
// It handles registration, credential verification, and the JWT token
// lifecycle using bcrypt for password hashing and a session ledger that
// tracks every issued access token by its SHA-256 digest.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// sessionRepository is the session ledger: every issued access token
	// gets a record there, and logout revokes it.
	sessionRepository store.SessionRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// accessTokenDuration is the access-token lifetime for a regular login.
	accessTokenDuration time.Duration

	// rememberMeDuration replaces accessTokenDuration when the login
	// request asks to be remembered.
	rememberMeDuration time.Duration

	// refreshTokenDuration is the refresh-token lifetime.
	refreshTokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, sessionRepository store.SessionRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:       userRepository,
		sessionRepository:    sessionRepository,
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		rememberMeDuration:   cfg.RememberMeDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		logger:               logger,
	}
}

// Register creates a new user account with default preferences.
//
// It validates the payload, hashes the password with bcrypt, and delegates
// persistence to the UserRepository. Uniqueness is ultimately enforced by
// the database, so a registration racing a duplicate still fails cleanly
// with the field-specific conflict error.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - a *ValidationError wrapping ErrInvalidDataProvided on bad input.
//   - a wrapped storage error if the repository call fails (e.g. username
//     already taken — see store.ErrUsernameAlreadyExists).
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateRegisterRequest(req); err != nil {
		log.Error().Str("username", req.Username).Msg("invalid registration data provided")
		return models.User{}, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
	})
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user and opens a session.
//
// The identifier may be a username or an e-mail address. An unknown
// identifier and a wrong password both collapse to ErrInvalidCredentials so
// that the response does not reveal which accounts exist. Disabled accounts
// are rejected with ErrAccountDisabled after the password check.
//
// On success an access token (1 hour, or the remember-me lifetime) and a
// refresh token are issued, and the access token's digest is recorded in
// the session ledger together with the remember-me preference — all in one
// transaction, so a token is never returned without its ledger record.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := validateLoginRequest(req); err != nil {
		log.Error().Str("username", req.Username).Msg("invalid login data provided")
		return models.User{}, models.TokenPair{}, err
	}

	foundUser, err := a.userRepository.FindUserByIdentifier(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Error().Str("username", req.Username).Msg("login attempt for unknown identifier")
			return models.User{}, models.TokenPair{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", req.Username).Msg("user search by identifier failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user search by identifier failed: %w", err)
	}

	if !utils.CheckPassword(foundUser.PasswordHash, req.Password) {
		log.Error().Int64("id", foundUser.UserID).Str("username", foundUser.Username).Msg("wrong password")
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}

	if !foundUser.IsActive {
		log.Error().Int64("id", foundUser.UserID).Msg("login attempt for disabled account")
		return models.User{}, models.TokenPair{}, ErrAccountDisabled
	}

	accessTTL := a.accessTokenDuration
	if req.RememberMe {
		accessTTL = a.rememberMeDuration
	}

	accessToken, err := utils.GenerateJWTToken(a.tokenIssuer, foundUser.UserID, models.TokenUseAccess, accessTTL, a.tokenSignKey)
	if err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := utils.GenerateJWTToken(a.tokenIssuer, foundUser.UserID, models.TokenUseRefresh, a.refreshTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	_, err = a.sessionRepository.RecordLogin(ctx, foundUser.UserID, utils.HashToken(accessToken.SignedString), accessTTL, req.RememberMe)
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("session recording failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("session recording failed: %w", err)
	}

	return foundUser, models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token.
//
// The presented token must verify, carry use=refresh, and belong to an
// account that still exists and is active. The new access token uses the
// regular (non-remember-me) lifetime and gets its own ledger record.
//
// Returns the account and the new access token, or:
//   - ErrTokenIsExpired when the refresh token's lifetime has passed.
//   - ErrTokenIsInvalid for any other verification failure or a wrong
//     token-use claim.
//   - ErrUserInactive when the account no longer exists or was
//     soft-deleted: a refresh token for an unusable account is just an
//     unauthorized request, unlike a login with correct credentials.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(refreshToken, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return models.User{}, models.Token{}, ErrTokenIsExpired
		}
		return models.User{}, models.Token{}, ErrTokenIsInvalid
	}

	if token.TokenUse != models.TokenUseRefresh {
		log.Error().Int64("id", token.UserID).Str("use", token.TokenUse).Msg("non-refresh token presented to refresh")
		return models.User{}, models.Token{}, ErrTokenIsInvalid
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, models.Token{}, ErrUserInactive
		}
		log.Err(err).Int64("id", token.UserID).Msg("user search by id failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by id failed: %w", err)
	}
	if !foundUser.IsActive {
		return models.User{}, models.Token{}, ErrUserInactive
	}

	accessToken, err := utils.GenerateJWTToken(a.tokenIssuer, foundUser.UserID, models.TokenUseAccess, a.accessTokenDuration, a.tokenSignKey)
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	_, err = a.sessionRepository.CreateSession(ctx, foundUser.UserID, utils.HashToken(accessToken.SignedString), a.accessTokenDuration)
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("session recording failed")
		return models.User{}, models.Token{}, fmt.Errorf("session recording failed: %w", err)
	}

	return foundUser, accessToken, nil
}

// Logout revokes the ledger record behind the presented access token.
//
// Logout never fails from the caller's point of view: a token that is
// unknown, expired, or already revoked leaves nothing to do, and even a
// storage error is logged rather than returned. The client discards its
// token either way.
func (a *authService) Logout(ctx context.Context, userID int64, accessToken string) error {
	log := logger.FromContext(ctx)

	revoked, err := a.sessionRepository.RevokeSession(ctx, userID, utils.HashToken(accessToken))
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("session revocation failed, token discarded client-side anyway")
		return nil
	}
	if !revoked {
		log.Debug().Int64("id", userID).Msg("logout for a session that was already gone")
	}

	return nil
}

// VerifyAccessToken validates a raw access token string.
//
// It verifies the signature and the issuer claim, and requires the "use"
// claim to be "access" — a refresh token is not a ticket into protected
// endpoints. Verification is purely cryptographic: the session ledger is
// not consulted, so a revoked but unexpired token still verifies.
//
// Returns the decoded token or ErrTokenIsExpired / ErrTokenIsInvalid.
func (a *authService) VerifyAccessToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, ErrTokenIsInvalid
	}

	if token.TokenUse != models.TokenUseAccess {
		return models.Token{}, ErrTokenIsInvalid
	}

	return token, nil
}

// CurrentUser loads the account behind an authenticated request.
//
// A subject that no longer resolves to a usable account — missing or
// soft-deleted — is rejected with ErrUserInactive: the bearer of such a
// token is simply unauthorized.
func (a *authService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserInactive
		}
		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	if !foundUser.IsActive {
		return models.User{}, ErrUserInactive
	}

	return foundUser, nil
}

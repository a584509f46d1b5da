package service

import (
	"context"

	"github.com/MKhiriev/go-auth-service/models"
)

// AuthService covers the authentication lifecycle: registration, login,
// token refresh, logout, and token verification for the access middleware.
type AuthService interface {
	// Register validates the registration payload, hashes the password,
	// and persists the new account with default preferences.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login verifies credentials, issues an access/refresh token pair,
	// and records the new session in the ledger. Unknown identifiers and
	// wrong passwords both surface as ErrInvalidCredentials.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.TokenPair, error)

	// Refresh exchanges a valid refresh token for a new access token and
	// records the corresponding session.
	Refresh(ctx context.Context, refreshToken string) (models.User, models.Token, error)

	// Logout revokes the ledger record behind the presented access token.
	// Revoking an unknown or already-revoked token is not an error.
	Logout(ctx context.Context, userID int64, accessToken string) error

	// VerifyAccessToken validates the signature, issuer, expiry, and
	// token-use claim of a raw access token string.
	VerifyAccessToken(ctx context.Context, tokenString string) (models.Token, error)

	// CurrentUser loads the account behind an authenticated request and
	// rejects a missing or soft-deleted owner with ErrUserInactive.
	CurrentUser(ctx context.Context, userID int64) (models.User, error)
}

// UserService covers account self-management: profile, preferences,
// statistics, sessions, and account deletion.
type UserService interface {
	// Profile aggregates the public user, preferences, and session
	// statistics into one view.
	Profile(ctx context.Context, userID int64) (models.Profile, error)

	// UpdateProfile applies a partial username/email change.
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)

	// Preferences returns the user's preferences, creating defaults when
	// none exist yet.
	Preferences(ctx context.Context, userID int64) (models.UserPreferences, error)

	// UpdatePreferences applies a partial preferences change.
	UpdatePreferences(ctx context.Context, userID int64, update models.PreferencesUpdate) (models.UserPreferences, error)

	// Stats returns the user's session statistics together with the
	// account age in days.
	Stats(ctx context.Context, userID int64) (models.SessionStats, error)

	// DeleteAccount soft-deletes the account after verifying the current
	// password and the literal confirmation phrase.
	DeleteAccount(ctx context.Context, userID int64, req models.DeleteAccountRequest) error

	// Sessions lists the user's active, unexpired sessions.
	Sessions(ctx context.Context, userID int64) ([]models.UserSession, error)

	// RevokeAllSessions logs the user out everywhere and returns the
	// number of sessions revoked.
	RevokeAllSessions(ctx context.Context, userID int64) (int64, error)
}

// AppInfoService covers the operational surface: health checks, service
// identity, service-wide statistics, and expired-session cleanup.
type AppInfoService interface {
	// Health reports service liveness and database connectivity.
	Health(ctx context.Context) models.HealthResponse

	// AppInfo returns the service name and version.
	AppInfo(ctx context.Context) models.InfoResponse

	// ServiceStats aggregates user and session counts across the service.
	ServiceStats(ctx context.Context) (models.ServiceStats, error)

	// CleanupSessions removes expired ledger rows, for one user when
	// userID is non-nil, and returns the number deleted.
	CleanupSessions(ctx context.Context, userID *int64) (int64, error)
}

// StoragePinger reports whether the persistence backend is reachable.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

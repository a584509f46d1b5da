package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-service/models"
)

// UserRepository is the data-access contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new account together with its default
	// preferences row in one transaction and returns the stored user.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByID returns the user with the given identifier or
	// ErrNoUserWasFound.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// FindUserByIdentifier resolves a user by username or email
	// (the login form accepts either) or returns ErrNoUserWasFound.
	FindUserByIdentifier(ctx context.Context, identifier string) (models.User, error)

	// UpdateProfile applies the non-nil fields of update and returns the
	// updated user. Uniqueness collisions surface as the field-specific
	// conflict sentinels.
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error)

	// DeactivateUser soft-deletes the account: revokes every session and
	// flips is_active to false in one transaction.
	DeactivateUser(ctx context.Context, userID int64) error

	// CountUsers returns service-wide account figures for the stats endpoint.
	CountUsers(ctx context.Context) (models.ServiceStats, error)
}

// SessionRepository is the data-access contract for the session ledger.
// Raw tokens never reach this layer: callers pass the SHA-256 hex digest.
type SessionRepository interface {
	// CreateSession deletes the user's already-expired session rows and
	// inserts a fresh record expiring after ttl, all in one transaction.
	CreateSession(ctx context.Context, userID int64, tokenHash string, ttl time.Duration) (models.UserSession, error)

	// RecordLogin is CreateSession plus persisting the remember-me choice
	// into user_preferences, still as a single transaction: if any write
	// fails, no session record exists and the login must fail.
	RecordLogin(ctx context.Context, userID int64, tokenHash string, ttl time.Duration, rememberMe bool) (models.UserSession, error)

	// CleanupExpiredSessions deletes rows whose expiry is strictly in the
	// past, scoped to one user when userID is non-nil, and returns the
	// number of rows removed. Safe to call concurrently and when nothing
	// matches.
	CleanupExpiredSessions(ctx context.Context, userID *int64) (int64, error)

	// RevokeSession marks the active session matching tokenHash inactive.
	// A missing or already-revoked session returns (false, nil).
	RevokeSession(ctx context.Context, userID int64, tokenHash string) (bool, error)

	// RevokeAllSessions marks every session of the user inactive and
	// returns the number of rows affected.
	RevokeAllSessions(ctx context.Context, userID int64) (int64, error)

	// ActiveSessions lists sessions that are active and unexpired,
	// ordered by creation time.
	ActiveSessions(ctx context.Context, userID int64) ([]models.UserSession, error)

	// SessionStats aggregates login totals, last login time, and the
	// active-session count for the profile page.
	SessionStats(ctx context.Context, userID int64) (models.SessionStats, error)

	// CountActiveSessions returns the service-wide active-session count.
	CountActiveSessions(ctx context.Context) (int64, error)
}

// PreferencesRepository is the data-access contract for user preferences.
type PreferencesRepository interface {
	// GetOrCreatePreferences returns the user's preferences row, creating
	// the default one if absent. A concurrent creation race resolves to
	// the surviving row instead of an error.
	GetOrCreatePreferences(ctx context.Context, userID int64) (models.UserPreferences, error)

	// UpdatePreferences applies the non-nil fields of update, creating the
	// row first when the user has none yet, and returns the result.
	UpdatePreferences(ctx context.Context, userID int64, update models.PreferencesUpdate) (models.UserPreferences, error)
}

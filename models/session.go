package models

import "time"

// UserSession is the server-side record of one issued access token.
//
// The raw token is never persisted: TokenHash holds a one-way SHA-256
// digest, so revocation and lookup must re-hash an incoming token to
// find the matching row. A compromise of the sessions table therefore
// does not yield usable bearer credentials.
type UserSession struct {
	// SessionID is the internal unique identifier of the session row.
	SessionID int64 `json:"id"`

	// UserID references the owning user. Sessions are cascade-deleted
	// when the user row is physically removed.
	UserID int64 `json:"user_id"`

	// TokenHash is the hex-encoded SHA-256 digest of the raw access token.
	// Excluded from JSON serialization; it is server-side bookkeeping only.
	TokenHash string `json:"-"`

	// ExpiresAt is the moment the backing access token stops being valid.
	// Expired rows are removed lazily, not by a background timer.
	ExpiresAt time.Time `json:"expires_at"`

	// CreatedAt is the timestamp of session creation (login or refresh).
	CreatedAt time.Time `json:"created_at"`

	// IsActive is false once the session has been revoked via logout,
	// revoke-all, or account deletion.
	IsActive bool `json:"is_active"`
}

// TableName returns the name of the database table
// associated with the UserSession model.
func (s UserSession) TableName() string {
	return "user_sessions"
}

// IsExpired reports whether the session's expiry has passed.
func (s UserSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionStats aggregates per-user session figures shown on the profile page.
type SessionStats struct {
	// TotalLogins is the number of session rows ever created for the user.
	TotalLogins int64 `json:"total_logins"`

	// LastLogin is the creation time of the most recent session,
	// or nil if the user has never logged in.
	LastLogin *time.Time `json:"last_login"`

	// AccountAgeDays is the number of whole days since account creation.
	AccountAgeDays int64 `json:"account_age_days"`

	// ActiveSessions counts sessions that are active and not yet expired.
	ActiveSessions int64 `json:"sessions_count"`
}

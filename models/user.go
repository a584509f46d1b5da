package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique handle chosen at registration.
	// Together with Email it can be used as a login identifier.
	Username string `json:"username"`

	// Email is the unique e-mail address of the account.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// This value MUST be a derived value, never plaintext, and is
	// excluded from JSON serialization.
	PasswordHash string `json:"-"`

	// IsActive reports whether the account is enabled. Account deletion
	// flips this flag to false instead of removing the row (soft delete).
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last profile mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns a copy of the user stripped down to the fields that are
// safe to return to any client. The password hash never leaves the server.
func (u User) Public() PublicUser {
	return PublicUser{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PublicUser is the outward representation of an account. It mirrors User
// minus every credential-related field.
type PublicUser struct {
	UserID    int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileUpdate represents criteria for updating a user's profile.
// Only non-nil fields will be updated (partial update support).
type ProfileUpdate struct {
	// Username is the new unique handle.
	// If nil, the field will not be updated.
	Username *string `json:"username,omitempty"`

	// Email is the new unique e-mail address.
	// If nil, the field will not be updated.
	Email *string `json:"email,omitempty"`
}

package models

// RegisterRequest is the payload of POST /api/auth/register.
type RegisterRequest struct {
	// Username is the desired unique handle (3-50 chars, [a-zA-Z0-9_]).
	Username string `json:"username"`

	// Email is the account e-mail address (must be unique).
	Email string `json:"email"`

	// Password is the plaintext password (6-128 chars). It is hashed
	// with bcrypt before any persistence and never stored as-is.
	Password string `json:"password"`

	// ConfirmPassword must equal Password.
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	// Username accepts either the username or the e-mail address.
	Username string `json:"username"`

	// Password is the plaintext password to verify.
	Password string `json:"password"`

	// RememberMe extends the access-token lifetime from 1 hour to 7 days
	// and is recorded in the user's preferences.
	RememberMe bool `json:"remember_me"`
}

// RefreshRequest is the payload of POST /api/auth/refresh.
type RefreshRequest struct {
	// RefreshToken is the long-lived token obtained at login.
	RefreshToken string `json:"refresh_token"`
}

// DeleteAccountRequest is the payload of DELETE /api/user/account.
// Both the current password and the literal confirmation string "DELETE"
// are required before the account is soft-deleted.
type DeleteAccountRequest struct {
	Password     string `json:"password"`
	Confirmation string `json:"confirmation"`
}

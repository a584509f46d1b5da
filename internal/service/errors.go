package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrWrongPassword       = errors.New("wrong password")
	ErrWrongConfirmation   = errors.New("confirmation phrase does not match")

	// ErrAccountDisabled rejects a correct password on a soft-deleted
	// account during login. Presented credentials were right, so the
	// caller learns the account exists but is disabled (403).
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrUserInactive rejects a token whose owner is gone or soft-deleted.
	// On token-bearing paths the caller is simply unauthorized (401), the
	// same as with any other unusable token.
	ErrUserInactive = errors.New("user inactive or missing")

	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenIsInvalid      = errors.New("token is invalid")
	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)

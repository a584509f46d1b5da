// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, token and
// password hashing, HTTP response writing, JWT token generation and
// validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user's identifier
// in the context. Set by the auth middleware after token verification and
// read back with GetUserIDFromContext.
var UserIDCtxKey = contextKey("userID")

// AccessTokenCtxKey is the key used to store the raw bearer token of the
// current request. The logout handler needs the exact token string so the
// matching session-ledger record can be found by hash.
var AccessTokenCtxKey = contextKey("accessToken")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetAccessTokenFromContext retrieves the raw access token of the current
// request from the context. The ok flag is false when no token was stored
// (i.e. the request did not pass through the auth middleware).
func GetAccessTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(AccessTokenCtxKey).(string)
	return token, ok
}

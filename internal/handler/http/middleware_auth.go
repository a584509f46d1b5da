package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-auth-service/internal/logger"
	"github.com/MKhiriev/go-auth-service/internal/service"
	"github.com/MKhiriev/go-auth-service/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.VerifyAccessToken], and confirms via
// [service.AuthService.CurrentUser] that the account behind the token still
// exists and is active. On success the authenticated user's ID and the raw
// token string are stored in the request context under [utils.UserIDCtxKey]
// and [utils.AccessTokenCtxKey] before delegating to the next handler.
//
// Token verification is cryptographic only: the session ledger is not
// consulted per request, so a revoked but unexpired token still passes.
//
// The middleware rejects requests in the following cases:
//   - 401 — the "Authorization" header is absent or malformed
//     ([ErrEmptyAuthorizationHeader], [ErrInvalidAuthorizationHeader],
//     [ErrEmptyToken]).
//   - 401 — the token is expired, carries the wrong "use" claim, fails
//     signature or issuer checks, or its subject no longer resolves to a
//     usable account ([service.ErrUserInactive] covers both a missing and
//     a soft-deleted owner).
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.VerifyAccessToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpired):
				log.Err(err).Msg("token expired")
			default:
				log.Err(err).Msg("error occurred during token verification")
			}
			writeError(w, r, err)
			return
		}

		// the token alone is not enough: the account must still exist and
		// be active
		if _, err := h.services.AuthService.CurrentUser(ctx, token.UserID); err != nil {
			log.Err(err).Int64("id", token.UserID).Msg("token owner rejected")
			writeError(w, r, err)
			return
		}

		// Store the authenticated user's ID and the raw token in the context
		// so that downstream handlers can use them without re-parsing.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		ctx = context.WithValue(ctx, utils.AccessTokenCtxKey, tokenString)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminRequired gates the operational endpoints. Role-based access control
// is not implemented yet, so any authenticated active user passes.
//
// TODO: reject non-admin users once accounts carry a role column.
func (h *Handler) adminRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-auth-service/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned by ValidateAndParseJWTToken when the token is
// correctly signed but its "exp" claim lies in the past. Callers that need
// to distinguish expiry from any other validation failure should match this
// error with [errors.Is].
var ErrTokenExpired = errors.New("token is expired")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - Use       (use): [models.TokenUseAccess] or [models.TokenUseRefresh]
//
// The duration is a parameter rather than a fixed constant because the
// caller chooses it per login (1 hour by default, 7 days for remember-me
// sessions) and refresh tokens live on their own, longer schedule.
//
// All parameters are required. Returns an error if any of them are empty or zero.
func GenerateJWTToken(issuer string, userID int64, tokenUse string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenUse == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TokenUse: tokenUse,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims.RegisteredClaims,
		TokenUse:         tokenUse,
		SignedString:     tokenString,
		UserID:           userID,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence and conversion to int64 UserID
//
// Expiry is reported as [ErrTokenExpired]; every other validation failure
// (bad signature, wrong issuer, malformed input) is returned as-is so the
// caller can treat the token as invalid.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	claims, ok := token.Claims.(*models.Token)
	if !ok {
		return models.Token{}, errors.New("unexpected token claims type")
	}

	userIDStr, err := claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if userIDStr == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to UserID: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims.RegisteredClaims,
		TokenUse:         claims.TokenUse,
		SignedString:     tokenString,
		UserID:           userID,
	}, nil
}

package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt digest from a plaintext password using the
// library's default cost. The digest embeds its own salt, so two hashes of
// the same password differ while both verify successfully.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt digest. Any bcrypt-level error (corrupted digest, cost mismatch)
// is treated as a non-match.
func CheckPassword(passwordHash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}

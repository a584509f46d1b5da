package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken computes the hex-encoded SHA-256 digest of a raw token string.
//
// Session records store this digest instead of the token itself, so a
// storage-layer compromise does not yield bearer credentials. The mapping
// only needs to support equality lookups (revocation, logout), for which a
// deterministic one-way collision-resistant hash is sufficient — no key and
// no reversibility required.
func HashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

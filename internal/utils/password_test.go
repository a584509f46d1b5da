package utils

import (
	"testing"
)

func TestHashPassword_Success(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if digest == "" {
		t.Fatal("expected non-empty digest")
	}
	if digest == "correct horse battery staple" {
		t.Error("digest must not equal the plaintext password")
	}
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	digest1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	digest2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// bcrypt embeds a random salt, so two digests of one password differ
	if digest1 == digest2 {
		t.Error("expected two hashes of the same password to differ")
	}
	if !CheckPassword(digest1, "same-password") || !CheckPassword(digest2, "same-password") {
		t.Error("both digests must verify against the original password")
	}
}

func TestCheckPassword(t *testing.T) {
	digest, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	tests := []struct {
		name         string
		passwordHash string
		password     string
		want         bool
	}{
		{"correct password", digest, "s3cret-pass", true},
		{"wrong password", digest, "wrong-pass", false},
		{"empty password", digest, "", false},
		{"corrupted digest", "not-a-bcrypt-digest", "s3cret-pass", false},
		{"empty digest", "", "s3cret-pass", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.passwordHash, tt.password); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

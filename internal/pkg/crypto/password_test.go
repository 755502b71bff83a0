package crypto

import (
	"strings"
	"testing"
)

func TestHashPassword_Format(t *testing.T) {
	digest, err := HashPassword("admbimax5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	salt, hash, ok := strings.Cut(digest, ":")
	if !ok {
		t.Fatalf("expected salt:hash format, got %q", digest)
	}
	if len(salt) != 32 {
		t.Errorf("expected 32 hex chars of salt, got %d", len(salt))
	}
	if len(hash) != 128 {
		t.Errorf("expected 128 hex chars of hash, got %d", len(hash))
	}
}

func TestHashPassword_SaltIsFresh(t *testing.T) {
	a, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Error("expected two hashes of the same password to differ")
	}
}

func TestVerifyPassword(t *testing.T) {
	digest, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		stored   string
		want     bool
	}{
		{"matching password", "correct horse", digest, true},
		{"wrong password", "battery staple", digest, false},
		{"empty password", "", digest, false},
		{"missing separator", "correct horse", "deadbeef", false},
		{"empty stored hash", "correct horse", "", false},
		{"empty hash part", "correct horse", "deadbeef:", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyPassword(tt.password, tt.stored); got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Package crypto provides password hashing for the Bimax Pro admin backend.
//
// Digests use PBKDF2-SHA512 with 10000 iterations and a 64-byte output over
// a random 16-byte salt, stored as "salt:hash" with both parts hex-encoded.
// This matches the format already present in deployed users.json files, so
// existing credentials keep working.
package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes  = 16
	iterations = 10000
	keyLength  = 64
)

// HashPassword derives a fresh salted digest for the password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	saltHex := hex.EncodeToString(salt)
	hash := pbkdf2.Key([]byte(password), []byte(saltHex), iterations, keyLength, sha512.New)

	return saltHex + ":" + hex.EncodeToString(hash), nil
}

// VerifyPassword checks a password against a stored "salt:hash" digest.
func VerifyPassword(password, stored string) bool {
	salt, want, ok := strings.Cut(stored, ":")
	if !ok || salt == "" || want == "" {
		return false
	}

	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha512.New)
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(got)), []byte(want)) == 1
}

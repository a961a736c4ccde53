package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length.
// This is the only password policy in the system; it is checked before
// hashing is attempted.
const MinPasswordLength = 8

// HashPassword hashes a plaintext password with bcrypt. A fresh random
// salt is drawn per call, so two hashes of the same plaintext differ.
// Failure here means the entropy source is broken and is not
// user-recoverable.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// CheckPassword reports whether the plaintext matches the stored digest.
// The comparison is constant-time-safe. A malformed digest returns false
// rather than an error.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// Package crypto provides credential generation utilities for Planta.
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	// AccessTokenBytes is the number of random bytes underlying an access
	// token. 128 bytes of entropy, rendered as 256 hex characters.
	AccessTokenBytes = 128

	// AccessTokenLength is the length of the hex-encoded token string.
	AccessTokenLength = AccessTokenBytes * 2
)

// GenerateAccessToken generates a new opaque access token.
// The token is drawn from a cryptographically secure random source and
// hex-encoded to a fixed-length string. It is issued exactly once per
// user, at registration; there is no re-issuance or expiry.
func GenerateAccessToken() (string, error) {
	buf := make([]byte, AccessTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

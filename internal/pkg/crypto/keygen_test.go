package crypto

import (
	"encoding/hex"
	"testing"
)

func TestGenerateAccessToken_Length(t *testing.T) {
	token, err := GenerateAccessToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(token) != AccessTokenLength {
		t.Errorf("expected token length %d, got %d", AccessTokenLength, len(token))
	}

	if _, err := hex.DecodeString(token); err != nil {
		t.Errorf("token is not valid hex: %v", err)
	}
}

func TestGenerateAccessToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateAccessToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[token] {
			t.Fatal("generated a duplicate token")
		}
		seen[token] = true
	}
}

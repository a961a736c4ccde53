package auth

import "testing"

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("longpass1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword("longpass1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same plaintext should differ")
	}

	if !CheckPassword("longpass1", first) {
		t.Error("expected first digest to verify")
	}
	if !CheckPassword("longpass1", second) {
		t.Error("expected second digest to verify")
	}
}

func TestCheckPassword_Mismatch(t *testing.T) {
	digest, err := HashPassword("longpass1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if CheckPassword("wrongpass", digest) {
		t.Error("wrong password should not verify")
	}
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	// A garbage digest must return false, never panic or error.
	if CheckPassword("longpass1", "not-a-bcrypt-digest") {
		t.Error("malformed digest should not verify")
	}
	if CheckPassword("longpass1", "") {
		t.Error("empty digest should not verify")
	}
}

package utils_test

import (
	"strings"
	"testing"

	"coinwatch/src/utils"
)

func TestPasswordHashing(t *testing.T) {
	t.Run("hash verifies against the original password", func(t *testing.T) {
		encoded, err := utils.HashPassword("s3cret-phrase")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}
		if !strings.HasPrefix(encoded, "$argon2id$") {
			t.Errorf("unexpected encoding: %s", encoded)
		}
		if !utils.VerifyPassword(encoded, "s3cret-phrase") {
			t.Error("expected password to verify")
		}
	})

	t.Run("wrong password does not verify", func(t *testing.T) {
		encoded, err := utils.HashPassword("s3cret-phrase")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}
		if utils.VerifyPassword(encoded, "not-the-password") {
			t.Error("expected verification to fail")
		}
	})

	t.Run("same password hashes to different encodings", func(t *testing.T) {
		first, err := utils.HashPassword("s3cret-phrase")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}
		second, err := utils.HashPassword("s3cret-phrase")
		if err != nil {
			t.Fatalf("hash failed: %v", err)
		}
		if first == second {
			t.Error("expected random salts to produce distinct encodings")
		}
	})

	t.Run("garbage encoding does not verify", func(t *testing.T) {
		if utils.VerifyPassword("not-an-encoded-hash", "anything") {
			t.Error("expected verification to fail")
		}
	})
}

package security

import (
	"strings"
	"testing"
)

func TestGenerateSecretEnforcesMinimumLength(t *testing.T) {
	t.Parallel()

	if _, err := GenerateSecret(MinSecretLength - 1); err == nil {
		t.Fatal("expected short secret to be rejected")
	}

	secret, err := GenerateSecret(MinSecretLength)
	if err != nil {
		t.Fatalf("GenerateSecret returned error: %v", err)
	}
	if len(secret) != MinSecretLength {
		t.Fatalf("GenerateSecret len = %d, want %d", len(secret), MinSecretLength)
	}
}

func TestGenerateSecretAlphabet(t *testing.T) {
	t.Parallel()

	secret, err := GenerateSecret(64)
	if err != nil {
		t.Fatalf("GenerateSecret returned error: %v", err)
	}
	for _, char := range secret {
		if !strings.ContainsRune(secretAlphabet, char) {
			t.Fatalf("secret %q contains char %q outside alphabet", secret, char)
		}
	}
}

func TestRandomStringEdgeCases(t *testing.T) {
	t.Parallel()

	if value, err := randomString(0, secretAlphabet); err != nil || value != "" {
		t.Fatalf("expected empty value for zero length, got %q, %v", value, err)
	}
	if _, err := randomString(4, ""); err == nil {
		t.Fatal("expected empty alphabet to fail")
	}
}

package password

import (
	"encoding/hex"
	"testing"
)

func TestGenerateOpaqueToken(t *testing.T) {
	tok, err := GenerateOpaqueToken(48)
	if err != nil {
		t.Fatalf("GenerateOpaqueToken failed: %v", err)
	}
	if len(tok) != 96 {
		t.Fatalf("expected 96 hex chars for 48 bytes, got %d", len(tok))
	}
	if _, err := hex.DecodeString(tok); err != nil {
		t.Fatalf("token is not valid hex: %v", err)
	}
}

func TestGenerateOpaqueToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := GenerateOpaqueToken(32)
		if err != nil {
			t.Fatalf("GenerateOpaqueToken failed: %v", err)
		}
		if seen[tok] {
			t.Fatal("generated a duplicate token")
		}
		seen[tok] = true
	}
}

package password

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// GenerateOpaqueToken creates a cryptographically secure random token of the
// specified byte length, returned as a hex-encoded string. Used for refresh
// token values; callers should pass at least 32 bytes (256 bits of entropy),
// which makes collisions with values already on record probability-negligible
// without a uniqueness retry loop.
func GenerateOpaqueToken(length int) (string, error) {
	bytes, err := generateRandomBytes(length)
	if err != nil {
		return "", fmt.Errorf("password: generate token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// generateRandomBytes returns cryptographically secure random bytes.
func generateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

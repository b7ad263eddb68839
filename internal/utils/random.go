package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomSecret generates a hex-encoded random secret of n bytes.
// Used for verification tokens and similar one-off secrets.
func RandomSecret(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

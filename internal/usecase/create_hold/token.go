package create_hold

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// generateSessionToken генерирует криптографически стойкий token-носитель.
// 32 байта энтропии, hex-представление.
func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

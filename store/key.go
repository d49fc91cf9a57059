package store

import (
	"crypto/rand"
	"fmt"
)

// 64-symbol URL-safe alphabet. 21 symbols give 126 bits of entropy, enough
// for the key to act as the sole access control on an unauthenticated link.
const (
	keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	keyLength   = 21
)

// GenerateSubmissionKey returns a new random submission key.
func GenerateSubmissionKey() (string, error) {
	buf := make([]byte, keyLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		// 64 symbols divide 256 evenly, so masking keeps the draw uniform.
		buf[i] = keyAlphabet[b&63]
	}
	return string(buf), nil
}

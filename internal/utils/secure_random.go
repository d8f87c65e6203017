package utils

import (
	"crypto/rand"
	"fmt"
)

// CodeAlphabet leaves out the easily confused 0/O and 1/I. It has 32 symbols so
// reducing a random byte modulo its length is unbiased.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateCode returns a cryptographically random uppercase code of the given length.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i := range b {
		b[i] = CodeAlphabet[int(b[i])%len(CodeAlphabet)]
	}
	return string(b), nil
}

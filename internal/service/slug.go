package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	slugLength      = 15
	slugAlphabet    = "abcdefghijklmnopqrstuvwxyz"
	slugMaxAttempts = 5
)

// generateSlug returns slugLength random lowercase ASCII letters.
func generateSlug() (string, error) {
	alphabetSize := big.NewInt(int64(len(slugAlphabet)))

	b := make([]byte, slugLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate slug: %w", err)
		}
		b[i] = slugAlphabet[n.Int64()]
	}
	return string(b), nil
}

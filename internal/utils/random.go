package utils

import (
	"crypto/rand"
	"math/big"
)

const idLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewPublicID returns a random short identifier used as the public handle of
// posts, comments, journal entries and chat sessions.
func NewPublicID(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(idLetters))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; fall back to a fixed character rather than panic.
			b[i] = idLetters[0]
			continue
		}
		b[i] = idLetters[idx.Int64()]
	}
	return string(b)
}

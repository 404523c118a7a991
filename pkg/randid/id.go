// Package randid generates short random suffixes that keep snapshot IDs unique
// when two snapshots share a timestamp.
package randid

import (
	"math/rand/v2"
	"strings"
)

// Alphabet is the set of characters Generate draws from.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate creates a random alphanumeric ID of the specified length.
func Generate(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = Alphabet[rand.IntN(len(Alphabet))]
	}
	return string(b)
}

// Valid reports whether id could have been produced by Generate(length).
func Valid(id string, length int) bool {
	if len(id) != length {
		return false
	}
	for i := 0; i < len(id); i++ {
		if !strings.ContainsRune(Alphabet, rune(id[i])) {
			return false
		}
	}
	return true
}

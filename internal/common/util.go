package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// IDSize is the number of random bytes in an item identifier. Rendered as
// hex this gives the 32-character ids used for photos, albums and shares.
const IDSize = 16

// NewID generates a fresh 128-bit identifier rendered as a 32-character
// lowercase hex string.
func NewID() (string, error) {
	return MakeRandHexString(IDSize)
}

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter is the number of random bytes, so the resulting string
// is twice as long.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rng failure: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns size fresh random bytes. It panics if the
// system RNG fails, which is not a recoverable condition.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Useful for passwords and keys once they are no longer needed.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

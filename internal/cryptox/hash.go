package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// saltPrefixLen is the number of hex characters taken from a hashed
// identifier when it is used as a derivation salt.
const saltPrefixLen = 20

// HashHex returns the SHA-256 digest of data as 64 lowercase hex characters.
// Used for content deduplication hashes and key integrity hashes.
func HashHex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SaltFromID derives a stable salt from a non-secret string identifier:
// the first 20 hex characters of its SHA-256. The result satisfies the
// DeriveKey minimum salt length.
func SaltFromID(id string) []byte {
	return []byte(HashHex([]byte(id))[:saltPrefixLen])
}

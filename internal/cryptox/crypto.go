// Package cryptox implements the symmetric primitives of the photo library:
// AES-256-GCM-SIV envelopes, PBKDF2 key derivation and SHA-256 hashing.
//
// GCM-SIV is used instead of plain GCM because envelope nonces are sometimes
// reused deliberately when an updated item is re-encrypted in place; SIV mode
// keeps a nonce reuse from becoming catastrophic.
package cryptox

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"

	"github.com/secure-io/siv-go"
	"golang.org/x/crypto/pbkdf2"

	"github.com/dmitrijs2005/photovault/internal/common"
)

const (
	// KeySize is the size of every content key and the master key.
	KeySize = 32
	// NonceSize is the AES-GCM-SIV nonce size.
	NonceSize = 12

	// MinSaltSize is the minimum salt accepted by DeriveKey. Callers that
	// start from a short human string must hash it first (see SaltFromID).
	MinSaltSize = 16

	deriveIterations = 4096
)

// GenerateKey returns 32 fresh random bytes suitable as a content key.
func GenerateKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// GenerateNonce returns 12 fresh random bytes.
func GenerateNonce() []byte {
	return common.GenerateRandByteArray(NonceSize)
}

// Encrypt seals plaintext under key with a fresh random nonce and returns
// both. The key must be exactly KeySize bytes.
func Encrypt(key, plaintext []byte) (nonce, ciphertext []byte, err error) {
	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("nonce generation: %w", err)
	}
	ciphertext, err = EncryptWithNonce(key, nonce, plaintext)
	if err != nil {
		return nil, nil, err
	}
	return nonce, ciphertext, nil
}

// EncryptWithNonce seals plaintext under key with the caller-supplied nonce.
func EncryptWithNonce(key, nonce, plaintext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", common.ErrKeySize, len(key), KeySize)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", common.ErrNonceSize, len(nonce), NonceSize)
	}
	aead, err := siv.NewGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCrypto, err)
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt opens ciphertext sealed by Encrypt or EncryptWithNonce. A tag
// mismatch (wrong key, wrong nonce, tampered data) yields common.ErrCrypto.
func Decrypt(key, nonce, ciphertext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", common.ErrKeySize, len(key), KeySize)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", common.ErrNonceSize, len(nonce), NonceSize)
	}
	aead, err := siv.NewGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCrypto, err)
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decryption failed", common.ErrCrypto)
	}
	return plaintext, nil
}

// DeriveKey stretches password into a 32-byte key using
// PBKDF2-HMAC-SHA512 with 4096 iterations. The salt must be at least
// MinSaltSize bytes; derive it with SaltFromID when starting from an id.
func DeriveKey(password, salt []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, common.ErrEmptyPassword
	}
	if len(salt) < MinSaltSize {
		return nil, fmt.Errorf("%w: got %d, want at least %d", common.ErrSaltTooShort, len(salt), MinSaltSize)
	}
	return pbkdf2.Key(password, salt, deriveIterations, KeySize, sha512.New), nil
}

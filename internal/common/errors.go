// Package common defines shared constants and sentinel errors used across
// client and server layers of PhotoVault. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Crypto errors. Fatal for the operation in progress; never retried.
	ErrCrypto        = errors.New("crypto error")
	ErrKeySize       = errors.New("invalid key size")
	ErrNonceSize     = errors.New("invalid nonce size")
	ErrSaltTooShort  = errors.New("salt too short")
	ErrEmptyPassword = errors.New("empty password")

	// Encoding errors: malformed envelope, wrong item tag, bad base64.
	// Indicates data corruption or a caller holding the wrong key.
	ErrEncoding    = errors.New("encoding error")
	ErrWrongItem   = errors.New("item tag mismatch")
	ErrInvalidItem = errors.New("invalid item payload")

	// Repository / server-side lookup errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Transport errors are retryable at the caller's discretion;
	// the core never retries on its own.
	ErrTransport = errors.New("transport error")

	// Image pipeline errors (decode failure, unsupported format).
	ErrImage = errors.New("image error")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")

	// Validation errors.
	ErrValidation = errors.New("validation error")
)

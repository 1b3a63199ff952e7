// Package keystore persists the client's local secret material: the master
// key after login and the share keys a recipient has opened. Values are
// stored base64-encoded. No other secret material is persisted client-side.
package keystore

import "context"

// KeyStore abstracts the local key storage so non-interactive environments
// (tests, servers) can substitute a memory backend for the sqlite one.
type KeyStore interface {
	SetMasterKey(ctx context.Context, key []byte) error
	// MasterKey returns common.ErrNotFound when no login has been stored.
	MasterKey(ctx context.Context) ([]byte, error)

	SetShareKey(ctx context.Context, shareID string, key []byte) error
	// ShareKey returns common.ErrNotFound for shares never opened here.
	ShareKey(ctx context.Context, shareID string) ([]byte, error)
	DeleteShareKey(ctx context.Context, shareID string) error

	// Clear wipes everything, e.g. on logout.
	Clear(ctx context.Context) error
}

const (
	masterKeyName = "master"
	sharePrefix   = "share:"
)

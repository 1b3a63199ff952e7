// Package storage stores encrypted blobs. Backends address blobs by an
// opaque key; ownership checks happen in the HTTP layer, so keys are
// namespaced per user before they reach a BlobStore.
package storage

import "context"

type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	// Get returns common.ErrNotFound for unknown keys.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

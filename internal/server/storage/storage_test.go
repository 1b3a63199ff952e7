package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/photovault/internal/common"
)

func testStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "users/u1/missing")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, store.Put(ctx, "users/u1/blob", []byte("ciphertext")))
	data, err := store.Get(ctx, "users/u1/blob")
	require.NoError(t, err)
	require.Equal(t, []byte("ciphertext"), data)

	require.NoError(t, store.Put(ctx, "users/u1/blob", []byte("rewritten")))
	data, err = store.Get(ctx, "users/u1/blob")
	require.NoError(t, err)
	require.Equal(t, []byte("rewritten"), data)

	require.NoError(t, store.Delete(ctx, "users/u1/blob"))
	_, err = store.Get(ctx, "users/u1/blob")
	require.ErrorIs(t, err, common.ErrNotFound)

	// Deleting twice is not an error.
	require.NoError(t, store.Delete(ctx, "users/u1/blob"))
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	testStore(t, store)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.Error(t, store.Put(ctx, "../outside", []byte("x")))
	_, err = store.Get(ctx, "..")
	require.Error(t, err)
}

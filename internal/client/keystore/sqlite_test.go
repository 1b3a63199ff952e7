package keystore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/cryptox"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:keystore_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS keys (
  name  TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
DELETE FROM keys;
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteKeyStore_MasterKeyRoundTrip(t *testing.T) {
	ks := NewSQLiteKeyStore(setupDB(t))
	ctx := context.Background()
	key := cryptox.GenerateKey()

	_, err := ks.MasterKey(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, ks.SetMasterKey(ctx, key))
	got, err := ks.MasterKey(ctx)
	require.NoError(t, err)
	require.Equal(t, key, got)

	// Overwrite on re-login.
	other := cryptox.GenerateKey()
	require.NoError(t, ks.SetMasterKey(ctx, other))
	got, err = ks.MasterKey(ctx)
	require.NoError(t, err)
	require.Equal(t, other, got)
}

func TestSQLiteKeyStore_ShareKeys(t *testing.T) {
	ks := NewSQLiteKeyStore(setupDB(t))
	ctx := context.Background()
	key := cryptox.GenerateKey()

	require.NoError(t, ks.SetShareKey(ctx, "s1", key))
	got, err := ks.ShareKey(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, key, got)

	_, err = ks.ShareKey(ctx, "s2")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, ks.DeleteShareKey(ctx, "s1"))
	_, err = ks.ShareKey(ctx, "s1")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteKeyStore_Clear(t *testing.T) {
	ks := NewSQLiteKeyStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, ks.SetMasterKey(ctx, cryptox.GenerateKey()))
	require.NoError(t, ks.SetShareKey(ctx, "s1", cryptox.GenerateKey()))
	require.NoError(t, ks.Clear(ctx))

	_, err := ks.MasterKey(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = ks.ShareKey(ctx, "s1")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemoryKeyStore_Basics(t *testing.T) {
	ks := NewMemoryKeyStore()
	ctx := context.Background()
	key := cryptox.GenerateKey()

	require.NoError(t, ks.SetMasterKey(ctx, key))
	got, err := ks.MasterKey(ctx)
	require.NoError(t, err)
	require.Equal(t, key, got)

	// The store must hold a copy, not the caller's slice.
	key[0] ^= 0xff
	got2, err := ks.MasterKey(ctx)
	require.NoError(t, err)
	require.Equal(t, got, got2)
}

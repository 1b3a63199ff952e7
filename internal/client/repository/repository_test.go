package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/photovault/internal/client/api/apitest"
	"github.com/dmitrijs2005/photovault/internal/client/models"
	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/cryptox"
	"github.com/dmitrijs2005/photovault/internal/logging"
)

func newRepo(t *testing.T) (*Repository, *apitest.FakeClient) {
	t.Helper()
	fake := apitest.NewFakeClient()
	return New(fake, logging.NewNopLogger()), fake
}

func albumItem(t *testing.T, id, title string) models.Item {
	t.Helper()
	item, err := models.NewAlbumItem(&models.Album{ID: id, Title: title})
	require.NoError(t, err)
	return item
}

func TestRepository_SetGetRoundTrip(t *testing.T) {
	repo, fake := newRepo(t)
	ctx := context.Background()
	key := cryptox.GenerateKey()

	require.NoError(t, repo.Set(ctx, "a1", key, albumItem(t, "a1", "Trip")))
	require.Len(t, fake.Items, 1)

	got, err := repo.Get(ctx, "a1", key)
	require.NoError(t, err)
	album, err := got.Album()
	require.NoError(t, err)
	require.Equal(t, "Trip", album.Title)
}

func TestRepository_GetAbsentIsNilNil(t *testing.T) {
	repo, _ := newRepo(t)
	got, err := repo.Get(context.Background(), "nope", cryptox.GenerateKey())
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRepository_GetUsesCache(t *testing.T) {
	repo, fake := newRepo(t)
	ctx := context.Background()
	key := cryptox.GenerateKey()

	require.NoError(t, repo.Set(ctx, "a1", key, albumItem(t, "a1", "Trip")))

	// Server failures must not matter once the item is cached.
	fake.FailGetItem = common.ErrTransport
	got, err := repo.Get(ctx, "a1", key)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestRepository_GetWrongKey(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a1", cryptox.GenerateKey(), albumItem(t, "a1", "Trip")))
	repo.Reset()

	_, err := repo.Get(ctx, "a1", cryptox.GenerateKey())
	require.ErrorIs(t, err, common.ErrCrypto)
}

func TestRepository_GetOrMaterializesDefault(t *testing.T) {
	repo, fake := newRepo(t)
	ctx := context.Background()
	key := cryptox.GenerateKey()

	item, err := repo.GetOr(ctx, models.LibraryID, key, func() (models.Item, error) {
		return models.NewLibraryItem(&models.Library{})
	})
	require.NoError(t, err)
	require.NotNil(t, item)
	require.Contains(t, fake.Items, models.LibraryID, "default must be persisted")

	// Second call sees the stored value, not a fresh default.
	again, err := repo.GetOr(ctx, models.LibraryID, key, func() (models.Item, error) {
		t.Fatal("default must not be materialized twice")
		return models.Item{}, nil
	})
	require.NoError(t, err)
	require.NotNil(t, again)
}

func TestRepository_SetFailureLeavesCacheClean(t *testing.T) {
	repo, fake := newRepo(t)
	ctx := context.Background()
	key := cryptox.GenerateKey()

	fake.FailPutItem = errors.New("disk full")
	require.Error(t, repo.Set(ctx, "a1", key, albumItem(t, "a1", "Trip")))

	fake.FailPutItem = nil
	got, err := repo.Get(ctx, "a1", key)
	require.NoError(t, err)
	require.Nil(t, got, "failed write must not populate the cache")
}

func TestRepository_DeleteAlwaysCallsServer(t *testing.T) {
	repo, fake := newRepo(t)
	ctx := context.Background()

	// Never cached locally; the server must still be told.
	require.NoError(t, repo.Delete(ctx, "ghost"))
	require.Equal(t, []string{"ghost"}, fake.DeletedItems)
}

// Package services contains the application services of the PhotoVault
// client: authentication, photos, albums and shares. All of them operate
// on a shared Session, which owns the master key, the decrypted-item cache
// and the serialization of compound mutations.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/photovault/internal/client/api"
	"github.com/dmitrijs2005/photovault/internal/client/keystore"
	"github.com/dmitrijs2005/photovault/internal/client/models"
	"github.com/dmitrijs2005/photovault/internal/client/repository"
	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/cryptox"
	"github.com/dmitrijs2005/photovault/internal/logging"
)

// timeNow is a test seam.
var timeNow = time.Now

// Session is the per-user client state: API connection, repository cache,
// local keystore and the master key after login.
//
// Compound mutations (upload, delete, album and share updates) are
// serialized by a single mutex so that the library re-write at the end of
// each operation is a clean linearization point: outside observers see all
// of an operation's library changes or none.
type Session struct {
	api  api.Client
	repo *repository.Repository
	keys keystore.KeyStore
	log  logging.Logger

	mu        sync.Mutex
	masterKey []byte
	username  string
}

func NewSession(apiClient api.Client, keys keystore.KeyStore, log logging.Logger) *Session {
	return &Session{
		api:  apiClient,
		repo: repository.New(apiClient, log),
		keys: keys,
		log:  log,
	}
}

// MasterKey returns the active master key or common.ErrUnauthorized.
func (s *Session) MasterKey() ([]byte, error) {
	if s.masterKey == nil {
		return nil, fmt.Errorf("%w: not logged in", common.ErrUnauthorized)
	}
	return s.masterKey, nil
}

// LoggedIn reports whether a master key is loaded.
func (s *Session) LoggedIn() bool { return s.masterKey != nil }

// Username returns the name of the logged-in user, if any.
func (s *Session) Username() string { return s.username }

// library loads the root index, materializing an empty one on first use.
func (s *Session) library(ctx context.Context) (*models.Library, error) {
	masterKey, err := s.MasterKey()
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetOr(ctx, models.LibraryID, masterKey, func() (models.Item, error) {
		return models.NewLibraryItem(&models.Library{})
	})
	if err != nil {
		return nil, fmt.Errorf("loading library: %w", err)
	}
	return item.Library()
}

// saveLibrary re-encrypts and persists the root index. Every compound
// mutation funnels through here exactly once.
func (s *Session) saveLibrary(ctx context.Context, lib *models.Library) error {
	masterKey, err := s.MasterKey()
	if err != nil {
		return err
	}
	item, err := models.NewLibraryItem(lib)
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, models.LibraryID, masterKey, item); err != nil {
		return fmt.Errorf("saving library: %w", err)
	}
	return nil
}

// upsertShare builds the self-contained share payload for an album and
// uploads it together with the accessible item id set. The library entry
// is updated in place; persisting the library is the caller's job.
//
// Reused for explicit upserts and for the refresh that follows any album
// mutation, so a share's photo list never lags its album for long.
func (s *Session) upsertShare(ctx context.Context, lib *models.Library, album *models.Album, password string) (*models.LibraryShare, error) {
	shareID := ""
	if existing := lib.ShareByAlbum(album.ID); existing != nil {
		shareID = existing.ID
	} else {
		id, err := common.NewID()
		if err != nil {
			return nil, err
		}
		shareID = id
	}

	shareKey, err := cryptox.DeriveKey([]byte(password), cryptox.SaltFromID(shareID))
	if err != nil {
		return nil, fmt.Errorf("deriving share key: %w", err)
	}

	data := &models.AlbumShareData{AlbumID: album.ID, AlbumKey: album.Key}
	itemIDs := []string{album.ID}
	for _, photoID := range album.PhotoIDs {
		entry := lib.PhotoByID(photoID)
		if entry == nil {
			return nil, fmt.Errorf("%w: photo %s not in library", common.ErrNotFound, photoID)
		}
		data.Photos = append(data.Photos, models.SharePhoto{
			ID:     entry.ID,
			Key:    entry.Key,
			Width:  entry.Width,
			Height: entry.Height,
		})
		itemIDs = append(itemIDs,
			photoID,
			models.BlobID(photoID, models.VariantThumbnail),
			models.BlobID(photoID, models.VariantPreview),
			models.BlobID(photoID, models.VariantOriginal),
		)
	}

	item, err := models.NewShareItem(&models.Share{Data: models.ShareData{Album: data}})
	if err != nil {
		return nil, err
	}
	env, err := models.EncodeItem(shareKey, item)
	if err != nil {
		return nil, err
	}

	if err := s.api.PutShare(ctx, &api.ShareUpload{
		ID:       shareID,
		Password: password,
		Envelope: env,
		ItemIDs:  itemIDs,
	}); err != nil {
		return nil, fmt.Errorf("uploading share: %w", err)
	}

	entry := models.LibraryShare{ID: shareID, AlbumID: album.ID, Key: shareKey, Password: password}
	lib.UpsertShare(entry)
	s.log.Info(ctx, "share upserted", "share_id", shareID, "album_id", album.ID, "photos", len(data.Photos))
	return &entry, nil
}

// refreshAlbumShare re-runs the share upsert for an album that was just
// mutated, if a share exists. No-op otherwise.
func (s *Session) refreshAlbumShare(ctx context.Context, lib *models.Library, album *models.Album) error {
	existing := lib.ShareByAlbum(album.ID)
	if existing == nil {
		return nil
	}
	_, err := s.upsertShare(ctx, lib, album, existing.Password)
	return err
}

package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/photovault/internal/client/models"
	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/cryptox"
)

// AlbumUpdate carries a whole-record replacement of an album's mutable
// fields. Nil slices mean "unchanged".
type AlbumUpdate struct {
	Title            *string
	ThumbnailPhotoID *string
	Tags             []string
	PhotoIDs         []string
}

// AlbumService manages albums. Every mutation re-publishes the album's
// share, if one exists, so recipients never see a stale member list.
type AlbumService interface {
	Create(ctx context.Context, title string, photoIDs []string) (*models.Album, error)
	Get(ctx context.Context, albumID string) (*models.Album, error)
	List(ctx context.Context) ([]*models.Album, error)
	Update(ctx context.Context, albumID string, update AlbumUpdate) (*models.Album, error)
	Delete(ctx context.Context, albumID string) error
}

type albumService struct {
	s *Session
}

func NewAlbumService(s *Session) AlbumService {
	return &albumService{s: s}
}

// validatePhotoIDs rejects references to photos the library does not know.
func validatePhotoIDs(lib *models.Library, photoIDs []string) error {
	for _, id := range photoIDs {
		if lib.PhotoByID(id) == nil {
			return fmt.Errorf("%w: photo %s not in library", common.ErrValidation, id)
		}
	}
	return nil
}

func (a *albumService) Create(ctx context.Context, title string, photoIDs []string) (*models.Album, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	lib, err := a.s.library(ctx)
	if err != nil {
		return nil, err
	}
	if err := validatePhotoIDs(lib, photoIDs); err != nil {
		return nil, err
	}

	albumID, err := common.NewID()
	if err != nil {
		return nil, err
	}
	album := &models.Album{
		ID:       albumID,
		Key:      cryptox.GenerateKey(),
		Title:    title,
		PhotoIDs: append([]string(nil), photoIDs...),
	}
	if len(album.PhotoIDs) > 0 {
		album.ThumbnailPhotoID = album.PhotoIDs[0]
	}

	item, err := models.NewAlbumItem(album)
	if err != nil {
		return nil, err
	}
	if err := a.s.repo.Set(ctx, albumID, album.Key, item); err != nil {
		return nil, err
	}

	lib.Albums = append(lib.Albums, models.LibraryAlbum{ID: albumID, Key: album.Key})
	if err := a.s.saveLibrary(ctx, lib); err != nil {
		a.s.repo.Evict(albumID)
		return nil, err
	}

	a.s.log.Info(ctx, "album created", "album_id", albumID, "photos", len(album.PhotoIDs))
	return album, nil
}

// loadAlbum resolves the library entry and decrypts the album entity.
func (s *Session) loadAlbum(ctx context.Context, lib *models.Library, albumID string) (*models.Album, error) {
	entry := lib.AlbumByID(albumID)
	if entry == nil {
		return nil, fmt.Errorf("%w: album %s", common.ErrNotFound, albumID)
	}
	item, err := s.repo.Get(ctx, albumID, entry.Key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: album entity %s", common.ErrNotFound, albumID)
	}
	return item.Album()
}

func (a *albumService) Get(ctx context.Context, albumID string) (*models.Album, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	lib, err := a.s.library(ctx)
	if err != nil {
		return nil, err
	}
	return a.s.loadAlbum(ctx, lib, albumID)
}

func (a *albumService) List(ctx context.Context) ([]*models.Album, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	lib, err := a.s.library(ctx)
	if err != nil {
		return nil, err
	}
	albums := make([]*models.Album, 0, len(lib.Albums))
	for _, entry := range lib.Albums {
		album, err := a.s.loadAlbum(ctx, lib, entry.ID)
		if err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}
	return albums, nil
}

func (a *albumService) Update(ctx context.Context, albumID string, update AlbumUpdate) (*models.Album, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	lib, err := a.s.library(ctx)
	if err != nil {
		return nil, err
	}
	album, err := a.s.loadAlbum(ctx, lib, albumID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		album.Title = *update.Title
	}
	if update.Tags != nil {
		album.Tags = append([]string(nil), update.Tags...)
	}
	if update.PhotoIDs != nil {
		if err := validatePhotoIDs(lib, update.PhotoIDs); err != nil {
			return nil, err
		}
		album.PhotoIDs = append([]string(nil), update.PhotoIDs...)
		if album.ThumbnailPhotoID != "" && !album.Contains(album.ThumbnailPhotoID) {
			album.ThumbnailPhotoID = ""
		}
	}
	if update.ThumbnailPhotoID != nil {
		if *update.ThumbnailPhotoID != "" && !album.Contains(*update.ThumbnailPhotoID) {
			return nil, fmt.Errorf("%w: thumbnail %s not an album member", common.ErrValidation, *update.ThumbnailPhotoID)
		}
		album.ThumbnailPhotoID = *update.ThumbnailPhotoID
	}

	item, err := models.NewAlbumItem(album)
	if err != nil {
		return nil, err
	}
	if err := a.s.repo.Set(ctx, albumID, album.Key, item); err != nil {
		return nil, err
	}

	if err := a.s.refreshAlbumShare(ctx, lib, album); err != nil {
		return nil, err
	}
	if err := a.s.saveLibrary(ctx, lib); err != nil {
		return nil, err
	}

	a.s.log.Info(ctx, "album updated", "album_id", albumID)
	return album, nil
}

func (a *albumService) Delete(ctx context.Context, albumID string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	lib, err := a.s.library(ctx)
	if err != nil {
		return err
	}
	if lib.AlbumByID(albumID) == nil {
		return fmt.Errorf("%w: album %s", common.ErrNotFound, albumID)
	}

	// Shares die with their album.
	share := lib.ShareByAlbum(albumID)
	if share != nil {
		if err := a.s.api.DeleteShare(ctx, share.ID); err != nil {
			return fmt.Errorf("deleting share: %w", err)
		}
		lib.RemoveShare(share.ID)
	}

	lib.RemoveAlbum(albumID)
	if err := a.s.saveLibrary(ctx, lib); err != nil {
		return err
	}
	if err := a.s.repo.Delete(ctx, albumID); err != nil {
		return err
	}

	a.s.log.Info(ctx, "album deleted", "album_id", albumID)
	return nil
}

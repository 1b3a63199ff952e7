package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/photovault/internal/client/models"
	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/cryptox"
)

// ShareService covers both sides of album sharing: the owner's publish and
// revoke operations and the recipient's password-gated read path.
//
// Recipients hold no master key. Once Authorize succeeds, the derived share
// key lands in the keystore and Open/ReadPhoto work from it alone.
type ShareService interface {
	// Upsert publishes or refreshes the share of an album.
	Upsert(ctx context.Context, albumID, password string) (*models.LibraryShare, error)
	// Delete revokes the share of an album.
	Delete(ctx context.Context, albumID string) error

	// Authorize proves the share password to the server and stores the
	// derived key locally. Returns false on a wrong password, nil error.
	Authorize(ctx context.Context, shareID, password string) (bool, error)
	// Open decrypts the share payload with the stored share key.
	Open(ctx context.Context, shareID string) (*models.AlbumShareData, error)
	// ReadPhoto fetches and decrypts one variant of a shared photo.
	ReadPhoto(ctx context.Context, shareID, photoID string, variant models.Variant) ([]byte, error)
}

type shareService struct {
	s *Session
}

func NewShareService(s *Session) ShareService {
	return &shareService{s: s}
}

func (sv *shareService) Upsert(ctx context.Context, albumID, password string) (*models.LibraryShare, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: empty share password", common.ErrValidation)
	}

	sv.s.mu.Lock()
	defer sv.s.mu.Unlock()

	lib, err := sv.s.library(ctx)
	if err != nil {
		return nil, err
	}
	album, err := sv.s.loadAlbum(ctx, lib, albumID)
	if err != nil {
		return nil, err
	}

	entry, err := sv.s.upsertShare(ctx, lib, album, password)
	if err != nil {
		return nil, err
	}
	if err := sv.s.saveLibrary(ctx, lib); err != nil {
		return nil, err
	}
	return entry, nil
}

func (sv *shareService) Delete(ctx context.Context, albumID string) error {
	sv.s.mu.Lock()
	defer sv.s.mu.Unlock()

	lib, err := sv.s.library(ctx)
	if err != nil {
		return err
	}
	share := lib.ShareByAlbum(albumID)
	if share == nil {
		return fmt.Errorf("%w: no share for album %s", common.ErrNotFound, albumID)
	}

	if err := sv.s.api.DeleteShare(ctx, share.ID); err != nil {
		return fmt.Errorf("deleting share: %w", err)
	}
	lib.RemoveShare(share.ID)
	return sv.s.saveLibrary(ctx, lib)
}

func (sv *shareService) Authorize(ctx context.Context, shareID, password string) (bool, error) {
	ok, err := sv.s.api.AuthorizeShare(ctx, shareID, password)
	if err != nil {
		return false, fmt.Errorf("authorizing share: %w", err)
	}
	if !ok {
		return false, nil
	}

	shareKey, err := cryptox.DeriveKey([]byte(password), cryptox.SaltFromID(shareID))
	if err != nil {
		return false, err
	}
	if err := sv.s.keys.SetShareKey(ctx, shareID, shareKey); err != nil {
		return false, fmt.Errorf("persisting share key: %w", err)
	}
	sv.s.log.Info(ctx, "share authorized", "share_id", shareID)
	return true, nil
}

// shareKey loads the stored key for a share, mapping absence to
// common.ErrUnauthorized since it means Authorize never succeeded.
func (sv *shareService) shareKey(ctx context.Context, shareID string) ([]byte, error) {
	key, err := sv.s.keys.ShareKey(ctx, shareID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: share %s not authorized", common.ErrUnauthorized, shareID)
		}
		return nil, err
	}
	return key, nil
}

func (sv *shareService) Open(ctx context.Context, shareID string) (*models.AlbumShareData, error) {
	shareKey, err := sv.shareKey(ctx, shareID)
	if err != nil {
		return nil, err
	}

	env, err := sv.s.api.GetShare(ctx, shareID)
	if err != nil {
		return nil, fmt.Errorf("fetching share: %w", err)
	}
	item, err := models.DecodeItem(shareKey, env)
	if err != nil {
		return nil, err
	}
	share, err := item.Share()
	if err != nil {
		return nil, err
	}
	return share.AlbumData()
}

func (sv *shareService) ReadPhoto(ctx context.Context, shareID, photoID string, variant models.Variant) ([]byte, error) {
	if !variant.Valid() {
		return nil, fmt.Errorf("%w: unknown variant %q", common.ErrValidation, variant)
	}

	data, err := sv.Open(ctx, shareID)
	if err != nil {
		return nil, err
	}
	key := data.PhotoKey(photoID)
	if key == nil {
		return nil, fmt.Errorf("%w: photo %s not in share", common.ErrNotFound, photoID)
	}
	return fetchImage(ctx, sv.s, photoID, key, variant)
}

package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/photovault/internal/client/imagex"
	"github.com/dmitrijs2005/photovault/internal/client/models"
	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/cryptox"
)

// UploadResult reports the outcome of a photo upload. Skipped is true when
// the bytes matched an existing photo by hash and nothing was created.
type UploadResult struct {
	PhotoID string
	Skipped bool
}

// PhotoService implements photo upload, retrieval and deletion.
type PhotoService interface {
	Upload(ctx context.Context, data []byte) (*UploadResult, error)
	// Image fetches and decrypts one variant of an owned photo.
	Image(ctx context.Context, photoID string, variant models.Variant) ([]byte, error)
	// Delete removes the photos from every album, the library, the server
	// item store and the blob store, in that order.
	Delete(ctx context.Context, photoIDs []string) error
	List(ctx context.Context) ([]models.LibraryPhoto, error)
}

type photoService struct {
	s *Session
}

func NewPhotoService(s *Session) PhotoService {
	return &photoService{s: s}
}

func (p *photoService) List(ctx context.Context) ([]models.LibraryPhoto, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	lib, err := p.s.library(ctx)
	if err != nil {
		return nil, err
	}
	return lib.Photos, nil
}

func (p *photoService) Upload(ctx context.Context, data []byte) (*UploadResult, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	lib, err := p.s.library(ctx)
	if err != nil {
		return nil, err
	}

	// Dedup before any expensive work: same bytes, same photo.
	hash := cryptox.HashHex(data)
	if existing := lib.PhotoByHash(hash); existing != nil {
		p.s.log.Info(ctx, "duplicate upload skipped", "photo_id", existing.ID)
		return &UploadResult{PhotoID: existing.ID, Skipped: true}, nil
	}

	processed, err := imagex.Process(data)
	if err != nil {
		return nil, fmt.Errorf("image pipeline: %w", err)
	}

	photoID, err := common.NewID()
	if err != nil {
		return nil, err
	}
	photoKey := cryptox.GenerateKey()

	photo := &models.Photo{
		ID:          photoID,
		Hash:        processed.Hash,
		Width:       processed.Width,
		Height:      processed.Height,
		ContentType: "image/jpeg",
		Exif:        processed.Exif,
	}
	if photo.Timestamp = processed.Taken; photo.Timestamp == 0 {
		photo.Timestamp = timeNow().Unix()
	}

	variants := []struct {
		variant models.Variant
		data    []byte
		nonce   *[]byte
	}{
		{models.VariantThumbnail, processed.Thumbnail, &photo.NonceThumbnail},
		{models.VariantPreview, processed.Preview, &photo.NoncePreview},
		{models.VariantOriginal, processed.Original, &photo.NonceOriginal},
	}
	for _, v := range variants {
		nonce, ciphertext, err := cryptox.Encrypt(photoKey, v.data)
		if err != nil {
			return nil, fmt.Errorf("encrypting %s: %w", v.variant, err)
		}
		*v.nonce = nonce
		if err := p.s.api.UploadFile(ctx, models.BlobID(photoID, v.variant), ciphertext); err != nil {
			return nil, fmt.Errorf("uploading %s: %w", v.variant, err)
		}
	}

	item, err := models.NewPhotoItem(photo)
	if err != nil {
		return nil, err
	}
	if err := p.s.repo.Set(ctx, photoID, photoKey, item); err != nil {
		return nil, err
	}

	lib.Photos = append(lib.Photos, models.LibraryPhoto{
		ID:     photoID,
		Hash:   processed.Hash,
		Key:    photoKey,
		Width:  processed.Width,
		Height: processed.Height,
	})
	if err := p.s.saveLibrary(ctx, lib); err != nil {
		// Roll back the cached entity so a retry starts clean.
		p.s.repo.Evict(photoID)
		return nil, err
	}

	p.s.log.Info(ctx, "photo uploaded", "photo_id", photoID,
		"width", processed.Width, "height", processed.Height)
	return &UploadResult{PhotoID: photoID}, nil
}

func (p *photoService) Image(ctx context.Context, photoID string, variant models.Variant) ([]byte, error) {
	if !variant.Valid() {
		return nil, fmt.Errorf("%w: unknown variant %q", common.ErrValidation, variant)
	}

	p.s.mu.Lock()
	lib, err := p.s.library(ctx)
	p.s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	entry := lib.PhotoByID(photoID)
	if entry == nil {
		return nil, fmt.Errorf("%w: photo %s", common.ErrNotFound, photoID)
	}
	return fetchImage(ctx, p.s, photoID, entry.Key, variant)
}

// fetchImage is the shared read path for owners and share recipients: the
// photo entity supplies the per-variant nonce, the blob store supplies the
// ciphertext.
func fetchImage(ctx context.Context, s *Session, photoID string, key []byte, variant models.Variant) ([]byte, error) {
	item, err := s.repo.Get(ctx, photoID, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: photo entity %s", common.ErrNotFound, photoID)
	}
	photo, err := item.Photo()
	if err != nil {
		return nil, err
	}

	nonce, err := photo.Nonce(variant)
	if err != nil {
		return nil, err
	}
	ciphertext, err := s.api.GetFile(ctx, models.BlobID(photoID, variant))
	if err != nil {
		return nil, fmt.Errorf("fetching blob: %w", err)
	}
	return cryptox.Decrypt(key, nonce, ciphertext)
}

func (p *photoService) Delete(ctx context.Context, photoIDs []string) error {
	if len(photoIDs) == 0 {
		return nil
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	lib, err := p.s.library(ctx)
	if err != nil {
		return err
	}

	doomed := make(map[string]struct{}, len(photoIDs))
	for _, id := range photoIDs {
		doomed[id] = struct{}{}
	}

	// Albums first: no reader may observe an album referencing a photo
	// that is already gone from the library.
	var touched []*models.Album
	for _, entry := range lib.Albums {
		item, err := p.s.repo.Get(ctx, entry.ID, entry.Key)
		if err != nil {
			return err
		}
		if item == nil {
			continue
		}
		album, err := item.Album()
		if err != nil {
			return err
		}
		if !album.RemovePhotos(doomed) {
			continue
		}
		albumItem, err := models.NewAlbumItem(album)
		if err != nil {
			return err
		}
		if err := p.s.repo.Set(ctx, entry.ID, entry.Key, albumItem); err != nil {
			return err
		}
		touched = append(touched, album)
	}

	lib.RemovePhotos(doomed)

	// Shares replicate photo keys; refresh them before publishing the
	// library so recipients stop seeing deleted members.
	for _, album := range touched {
		if err := p.s.refreshAlbumShare(ctx, lib, album); err != nil {
			return err
		}
	}

	if err := p.s.saveLibrary(ctx, lib); err != nil {
		return err
	}

	// Entity and blob deletes may lag the library write; they are
	// invisible to readers by now.
	for id := range doomed {
		if err := p.s.repo.Delete(ctx, id); err != nil {
			return err
		}
		for _, variant := range []models.Variant{models.VariantThumbnail, models.VariantPreview, models.VariantOriginal} {
			if err := p.s.api.DeleteFile(ctx, models.BlobID(id, variant)); err != nil {
				return fmt.Errorf("deleting blob: %w", err)
			}
		}
	}

	p.s.log.Info(ctx, "photos deleted", "count", len(doomed))
	return nil
}

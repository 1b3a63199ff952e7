package models

import (
	"fmt"

	"github.com/dmitrijs2005/photovault/internal/common"
)

// Share is the entity a recipient decrypts with the password-derived share
// key. It is self-contained: everything needed to read the shared album and
// its photos travels inside, so the recipient never touches the owner's
// master key or library.
type Share struct {
	Data ShareData `json:"data"`
}

// ShareData is a tagged union; album shares are the only arm today.
type ShareData struct {
	Album *AlbumShareData `json:"album,omitempty"`
}

// AlbumShareData replicates the album key and every member photo key.
// The redundancy is intentional: it removes any need for back-references
// and lets recipients operate with only the share payload.
type AlbumShareData struct {
	AlbumID  string       `json:"albumId"`
	AlbumKey []byte       `json:"albumKey"`
	Photos   []SharePhoto `json:"photos"`
}

// SharePhoto carries the key and display dimensions of one shared photo.
type SharePhoto struct {
	ID     string `json:"id"`
	Key    []byte `json:"key"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// AlbumData extracts the album arm or fails with common.ErrInvalidItem.
func (s *Share) AlbumData() (*AlbumShareData, error) {
	if s.Data.Album == nil {
		return nil, fmt.Errorf("%w: share carries no album data", common.ErrInvalidItem)
	}
	return s.Data.Album, nil
}

// PhotoKey returns the replicated key for the given photo id, or nil.
func (d *AlbumShareData) PhotoKey(photoID string) []byte {
	for _, p := range d.Photos {
		if p.ID == photoID {
			return p.Key
		}
	}
	return nil
}

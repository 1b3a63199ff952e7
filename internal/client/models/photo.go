package models

import "fmt"

// Variant identifies which size of a photo is addressed.
type Variant string

const (
	VariantThumbnail Variant = "thumbnail"
	VariantPreview   Variant = "preview"
	VariantOriginal  Variant = "original"
)

// Valid reports whether v is one of the three known variants.
func (v Variant) Valid() bool {
	switch v {
	case VariantThumbnail, VariantPreview, VariantOriginal:
		return true
	}
	return false
}

// BlobID returns the server file key for one encrypted variant of a photo.
func BlobID(photoID string, v Variant) string {
	return fmt.Sprintf("%s-%s", photoID, v)
}

// Photo is the per-photo entity, encrypted with the photo's own content key.
// The nonces recorded here are the ones used to encrypt the corresponding
// blobs; the blobs themselves carry no nonce.
type Photo struct {
	ID          string `json:"id"`
	Hash        string `json:"hash"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Timestamp   int64  `json:"timestamp"`
	ContentType string `json:"contentType"`
	Exif        *Exif  `json:"exif,omitempty"`

	NonceThumbnail []byte `json:"nonceThumbnail"`
	NoncePreview   []byte `json:"noncePreview"`
	NonceOriginal  []byte `json:"nonceOriginal"`
}

// Nonce returns the stored nonce for the given variant.
func (p *Photo) Nonce(v Variant) ([]byte, error) {
	switch v {
	case VariantThumbnail:
		return p.NonceThumbnail, nil
	case VariantPreview:
		return p.NoncePreview, nil
	case VariantOriginal:
		return p.NonceOriginal, nil
	}
	return nil, fmt.Errorf("unknown variant %q", v)
}

// BlobIDs returns the three server file keys of the photo.
func (p *Photo) BlobIDs() []string {
	return []string{
		BlobID(p.ID, VariantThumbnail),
		BlobID(p.ID, VariantPreview),
		BlobID(p.ID, VariantOriginal),
	}
}

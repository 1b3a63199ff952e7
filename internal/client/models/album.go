package models

// Album groups photos by id. Mutations are whole-record replacements; the
// member list is ordered. The key mirrors the library entry for convenience
// so share payloads can be built from the album alone.
type Album struct {
	ID               string   `json:"id"`
	Key              []byte   `json:"key"`
	Title            string   `json:"title"`
	ThumbnailPhotoID string   `json:"thumbnailPhotoId,omitempty"`
	Tags             []string `json:"tags"`
	PhotoIDs         []string `json:"photoIds"`
}

// Contains reports whether the album references the photo id.
func (a *Album) Contains(photoID string) bool {
	for _, id := range a.PhotoIDs {
		if id == photoID {
			return true
		}
	}
	return false
}

// RemovePhotos drops every listed photo id from the member list and clears
// the thumbnail reference if it pointed at a removed photo. Returns true
// when anything changed.
func (a *Album) RemovePhotos(ids map[string]struct{}) bool {
	changed := false
	kept := a.PhotoIDs[:0]
	for _, id := range a.PhotoIDs {
		if _, gone := ids[id]; gone {
			changed = true
			continue
		}
		kept = append(kept, id)
	}
	a.PhotoIDs = kept
	if _, gone := ids[a.ThumbnailPhotoID]; gone && a.ThumbnailPhotoID != "" {
		a.ThumbnailPhotoID = ""
		changed = true
	}
	return changed
}

package models

// Library is the root index of everything a user owns. It is the sole root
// of trust after the master key: every id referenced by any other entity
// appears here together with its content key.
type Library struct {
	Photos []LibraryPhoto `json:"photos"`
	Albums []LibraryAlbum `json:"albums"`
	Shares []LibraryShare `json:"shares"`
}

// LibraryPhoto maps a photo id to its content key and dedup hash.
type LibraryPhoto struct {
	ID     string `json:"id"`
	Hash   string `json:"hash"`
	Key    []byte `json:"key"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// LibraryAlbum maps an album id to its content key.
type LibraryAlbum struct {
	ID  string `json:"id"`
	Key []byte `json:"key"`
}

// LibraryShare records a share: its derived key and the password it was
// derived from, so the owner can rotate or re-display the share later.
type LibraryShare struct {
	ID       string `json:"id"`
	AlbumID  string `json:"albumId"`
	Key      []byte `json:"key"`
	Password string `json:"password"`
}

// PhotoByID returns the library entry for id, or nil.
func (l *Library) PhotoByID(id string) *LibraryPhoto {
	for i := range l.Photos {
		if l.Photos[i].ID == id {
			return &l.Photos[i]
		}
	}
	return nil
}

// PhotoByHash returns the library entry with the given content hash, or nil.
// Used for client-side deduplication on upload.
func (l *Library) PhotoByHash(hash string) *LibraryPhoto {
	for i := range l.Photos {
		if l.Photos[i].Hash == hash {
			return &l.Photos[i]
		}
	}
	return nil
}

// AlbumByID returns the library entry for id, or nil.
func (l *Library) AlbumByID(id string) *LibraryAlbum {
	for i := range l.Albums {
		if l.Albums[i].ID == id {
			return &l.Albums[i]
		}
	}
	return nil
}

// ShareByID returns the library share entry with the given id, or nil.
func (l *Library) ShareByID(id string) *LibraryShare {
	for i := range l.Shares {
		if l.Shares[i].ID == id {
			return &l.Shares[i]
		}
	}
	return nil
}

// ShareByAlbum returns the share entry for the given album, or nil.
// Shares are upserted per album, so at most one entry matches.
func (l *Library) ShareByAlbum(albumID string) *LibraryShare {
	for i := range l.Shares {
		if l.Shares[i].AlbumID == albumID {
			return &l.Shares[i]
		}
	}
	return nil
}

// RemovePhotos drops every listed photo id from the index.
func (l *Library) RemovePhotos(ids map[string]struct{}) {
	kept := l.Photos[:0]
	for _, p := range l.Photos {
		if _, gone := ids[p.ID]; !gone {
			kept = append(kept, p)
		}
	}
	l.Photos = kept
}

// RemoveAlbum drops the album entry with the given id.
func (l *Library) RemoveAlbum(id string) {
	kept := l.Albums[:0]
	for _, a := range l.Albums {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	l.Albums = kept
}

// RemoveShare drops the share entry with the given id.
func (l *Library) RemoveShare(id string) {
	kept := l.Shares[:0]
	for _, s := range l.Shares {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	l.Shares = kept
}

// UpsertShare replaces the entry with the same id, or appends.
func (l *Library) UpsertShare(entry LibraryShare) {
	for i := range l.Shares {
		if l.Shares[i].ID == entry.ID {
			l.Shares[i] = entry
			return
		}
	}
	l.Shares = append(l.Shares, entry)
}

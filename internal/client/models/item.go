// Package models defines the encrypted item types of the photo library and
// the envelope codec that seals them.
//
// Every structured item is serialized as compact camelCase JSON before
// encryption; unknown fields are ignored on decode for forward compatibility.
// Binary fields (keys, nonces) are base64-encoded inside the JSON.
package models

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/photovault/internal/common"
)

// LibraryID is the well-known identifier of the root library index.
// It is the only item the master key decrypts directly.
const LibraryID = "library"

// ItemKind tags the payload stored inside an Item so that a caller asking
// for a photo out of a slot that actually holds an album fails cleanly
// instead of misinterpreting bytes.
type ItemKind string

const (
	ItemKindMasterKey ItemKind = "masterKey"
	ItemKindLibrary   ItemKind = "library"
	ItemKindPhoto     ItemKind = "photo"
	ItemKindAlbum     ItemKind = "album"
	ItemKindShare     ItemKind = "share"
)

// Item is the tagged union persisted through the repository.
type Item struct {
	Kind ItemKind        `json:"kind"`
	Data json.RawMessage `json:"data"`
}

func wrap(kind ItemKind, v any) (Item, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Item{}, fmt.Errorf("%w: %v", common.ErrEncoding, err)
	}
	return Item{Kind: kind, Data: b}, nil
}

func (i Item) unwrap(kind ItemKind, v any) error {
	if i.Kind != kind {
		return fmt.Errorf("%w: want %q, got %q", common.ErrWrongItem, kind, i.Kind)
	}
	if err := json.Unmarshal(i.Data, v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidItem, err)
	}
	return nil
}

func NewLibraryItem(l *Library) (Item, error) { return wrap(ItemKindLibrary, l) }
func NewPhotoItem(p *Photo) (Item, error)     { return wrap(ItemKindPhoto, p) }
func NewAlbumItem(a *Album) (Item, error)     { return wrap(ItemKindAlbum, a) }
func NewShareItem(s *Share) (Item, error)     { return wrap(ItemKindShare, s) }

// Library extracts the library payload; fails with common.ErrWrongItem when
// the item holds something else.
func (i Item) Library() (*Library, error) {
	var l Library
	if err := i.unwrap(ItemKindLibrary, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (i Item) Photo() (*Photo, error) {
	var p Photo
	if err := i.unwrap(ItemKindPhoto, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (i Item) Album() (*Album, error) {
	var a Album
	if err := i.unwrap(ItemKindAlbum, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (i Item) Share() (*Share, error) {
	var s Share
	if err := i.unwrap(ItemKindShare, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

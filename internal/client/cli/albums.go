package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/photovault/internal/client/services"
)

func (a *App) cmdAlbums(ctx context.Context) error {
	albums, err := a.albums.List(ctx)
	if err != nil {
		return err
	}
	if len(albums) == 0 {
		a.printf("no albums\n")
		return nil
	}
	for _, album := range albums {
		a.printf("%s  %q  %d photo(s)\n", album.ID, album.Title, len(album.PhotoIDs))
	}
	return nil
}

func (a *App) cmdAlbumCreate(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: album-create <title> [photo-id...]")
	}
	album, err := a.albums.Create(ctx, args[0], args[1:])
	if err != nil {
		return err
	}
	a.printf("created album %s\n", album.ID)
	return nil
}

func (a *App) cmdAlbumShow(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: album-show <album-id>")
	}
	album, err := a.albums.Get(ctx, args[0])
	if err != nil {
		return err
	}
	a.printf("title: %s\n", album.Title)
	if len(album.Tags) > 0 {
		a.printf("tags: %s\n", strings.Join(album.Tags, ", "))
	}
	if album.ThumbnailPhotoID != "" {
		a.printf("thumbnail: %s\n", album.ThumbnailPhotoID)
	}
	for _, id := range album.PhotoIDs {
		a.printf("  %s\n", id)
	}
	return nil
}

func (a *App) cmdAlbumAdd(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: album-add <album-id> <photo-id...>")
	}
	album, err := a.albums.Get(ctx, args[0])
	if err != nil {
		return err
	}

	ids := album.PhotoIDs
	for _, id := range args[1:] {
		if !album.Contains(id) {
			ids = append(ids, id)
		}
	}
	if _, err := a.albums.Update(ctx, args[0], services.AlbumUpdate{PhotoIDs: ids}); err != nil {
		return err
	}
	a.printf("album now has %d photo(s)\n", len(ids))
	return nil
}

func (a *App) cmdAlbumRemove(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: album-remove <album-id> <photo-id...>")
	}
	album, err := a.albums.Get(ctx, args[0])
	if err != nil {
		return err
	}

	drop := make(map[string]struct{}, len(args[1:]))
	for _, id := range args[1:] {
		drop[id] = struct{}{}
	}
	ids := make([]string, 0, len(album.PhotoIDs))
	for _, id := range album.PhotoIDs {
		if _, gone := drop[id]; !gone {
			ids = append(ids, id)
		}
	}
	if _, err := a.albums.Update(ctx, args[0], services.AlbumUpdate{PhotoIDs: ids}); err != nil {
		return err
	}
	a.printf("album now has %d photo(s)\n", len(ids))
	return nil
}

func (a *App) cmdAlbumThumb(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: album-thumb <album-id> <photo-id>")
	}
	if _, err := a.albums.Update(ctx, args[0], services.AlbumUpdate{ThumbnailPhotoID: &args[1]}); err != nil {
		return err
	}
	a.printf("thumbnail set\n")
	return nil
}

func (a *App) cmdAlbumDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: album-delete <album-id>")
	}
	if err := a.albums.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.printf("album deleted\n")
	return nil
}

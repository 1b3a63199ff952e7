package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/photovault/internal/client/models"
)

func (a *App) cmdUpload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: upload <path>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	res, err := a.photos.Upload(ctx, data)
	if err != nil {
		return err
	}
	if res.Skipped {
		a.printf("already uploaded as %s\n", res.PhotoID)
		return nil
	}
	a.printf("uploaded %s\n", res.PhotoID)
	return nil
}

func (a *App) cmdPhotos(ctx context.Context) error {
	photos, err := a.photos.List(ctx)
	if err != nil {
		return err
	}
	if len(photos) == 0 {
		a.printf("no photos\n")
		return nil
	}
	for _, p := range photos {
		a.printf("%s  %dx%d\n", p.ID, p.Width, p.Height)
	}
	return nil
}

func (a *App) cmdSave(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: save <photo-id> <variant> <path>")
	}
	data, err := a.photos.Image(ctx, args[0], models.Variant(args[1]))
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[2], data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", args[2], err)
	}
	a.printf("saved %d bytes to %s\n", len(data), args[2])
	return nil
}

func (a *App) cmdRemove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: rm <photo-id> [...]")
	}
	if err := a.photos.Delete(ctx, args); err != nil {
		return err
	}
	a.printf("deleted %d photo(s)\n", len(args))
	return nil
}

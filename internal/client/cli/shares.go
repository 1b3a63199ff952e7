package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/photovault/internal/client/models"
)

func (a *App) cmdShare(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: share <album-id>")
	}
	password, err := readPassword("share password: ")
	if err != nil {
		return err
	}

	entry, err := a.shares.Upsert(ctx, args[0], password)
	if err != nil {
		return err
	}
	a.printf("shared as %s\n", entry.ID)
	return nil
}

func (a *App) cmdShareOpen(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: share-open <share-id>")
	}

	data, err := a.shares.Open(ctx, args[0])
	if err == nil {
		a.printShare(data)
		return nil
	}

	// No stored key yet, or the share was re-published with a new
	// password. Either way, ask and retry once.
	password, perr := readPassword("share password: ")
	if perr != nil {
		return perr
	}
	ok, aerr := a.shares.Authorize(ctx, args[0], password)
	if aerr != nil {
		return aerr
	}
	if !ok {
		return fmt.Errorf("wrong password")
	}

	data, err = a.shares.Open(ctx, args[0])
	if err != nil {
		return err
	}
	a.printShare(data)
	return nil
}

func (a *App) printShare(data *models.AlbumShareData) {
	a.printf("album %s, %d photo(s)\n", data.AlbumID, len(data.Photos))
	for _, p := range data.Photos {
		a.printf("  %s  %dx%d\n", p.ID, p.Width, p.Height)
	}
}

func (a *App) cmdShareSave(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: share-save <share-id> <photo-id> <variant> <path>")
	}
	data, err := a.shares.ReadPhoto(ctx, args[0], args[1], models.Variant(args[2]))
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[3], data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", args[3], err)
	}
	a.printf("saved %d bytes to %s\n", len(data), args[3])
	return nil
}

func (a *App) cmdShareDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: share-delete <album-id>")
	}
	if err := a.shares.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.printf("share revoked\n")
	return nil
}

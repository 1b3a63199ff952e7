package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// errQuit signals a clean REPL exit.
var errQuit = errors.New("quit")

// Run reads commands until EOF or "exit".
func (a *App) Run(ctx context.Context) error {
	a.printf("photovault — type 'help' for commands\n")

	scanner := bufio.NewScanner(a.in)
	for {
		a.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if err := a.dispatch(ctx, fields[0], fields[1:]); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			a.printf("error: %v\n", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		a.printHelp()
		return nil
	case "exit", "quit":
		return errQuit

	case "register":
		return a.cmdRegister(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout(ctx)

	case "upload":
		return a.cmdUpload(ctx, args)
	case "photos":
		return a.cmdPhotos(ctx)
	case "save":
		return a.cmdSave(ctx, args)
	case "rm":
		return a.cmdRemove(ctx, args)

	case "albums":
		return a.cmdAlbums(ctx)
	case "album-create":
		return a.cmdAlbumCreate(ctx, args)
	case "album-show":
		return a.cmdAlbumShow(ctx, args)
	case "album-add":
		return a.cmdAlbumAdd(ctx, args)
	case "album-remove":
		return a.cmdAlbumRemove(ctx, args)
	case "album-thumb":
		return a.cmdAlbumThumb(ctx, args)
	case "album-delete":
		return a.cmdAlbumDelete(ctx, args)

	case "share":
		return a.cmdShare(ctx, args)
	case "share-open":
		return a.cmdShareOpen(ctx, args)
	case "share-save":
		return a.cmdShareSave(ctx, args)
	case "share-delete":
		return a.cmdShareDelete(ctx, args)

	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
}

func (a *App) printHelp() {
	a.printf(`commands:
  register <username>                 create an account
  login <username>                    log in
  logout                              log out and wipe local keys

  upload <path>                       encrypt and upload an image
  photos                              list photos
  save <photo-id> <variant> <path>    download a variant (thumbnail|preview|original)
  rm <photo-id> [...]                 delete photos

  albums                              list albums
  album-create <title> [photo-id...]  create an album
  album-show <album-id>               show an album
  album-add <album-id> <photo-id...>  add photos to an album
  album-remove <album-id> <photo-id...>  remove photos from an album
  album-thumb <album-id> <photo-id>   set the album thumbnail
  album-delete <album-id>             delete an album

  share <album-id>                    publish or refresh an album share
  share-open <share-id>               open a share you were given
  share-save <share-id> <photo-id> <variant> <path>  download from a share
  share-delete <album-id>             revoke an album's share

  exit
`)
}

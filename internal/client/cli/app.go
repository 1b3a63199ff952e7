// Package cli implements the interactive PhotoVault client: a small REPL
// over the photo, album and share services.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/photovault/internal/client/api"
	"github.com/dmitrijs2005/photovault/internal/client/config"
	"github.com/dmitrijs2005/photovault/internal/client/keystore"
	"github.com/dmitrijs2005/photovault/internal/client/services"
	"github.com/dmitrijs2005/photovault/internal/logging"
)

// App bundles the services behind the REPL together with its I/O streams,
// which tests replace with buffers.
type App struct {
	session *services.Session
	auth    services.AuthService
	photos  services.PhotoService
	albums  services.AlbumService
	shares  services.ShareService

	in  io.Reader
	out io.Writer

	closers []func() error
}

// NewApp wires the client stack: HTTP API client, sqlite keystore and the
// application services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logFile, err := os.OpenFile("photovault.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(logFile, nil)))

	apiClient, err := api.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	if err != nil {
		return nil, err
	}

	db, err := keystore.InitDatabase(ctx, cfg.KeystorePath)
	if err != nil {
		return nil, err
	}
	keys := keystore.NewSQLiteKeyStore(db)

	session := services.NewSession(apiClient, keys, logger)
	app := newApp(session, os.Stdin, os.Stdout)
	app.closers = append(app.closers, apiClient.Close, db.Close, logFile.Close)
	return app, nil
}

func newApp(session *services.Session, in io.Reader, out io.Writer) *App {
	return &App{
		session: session,
		auth:    services.NewAuthService(session),
		photos:  services.NewPhotoService(session),
		albums:  services.NewAlbumService(session),
		shares:  services.NewShareService(session),
		in:      in,
		out:     out,
	}
}

// Close releases the underlying connections.
func (a *App) Close() error {
	var firstErr error
	for _, close := range a.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

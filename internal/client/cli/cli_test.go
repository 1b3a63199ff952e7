package cli

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/photovault/internal/client/api/apitest"
	"github.com/dmitrijs2005/photovault/internal/client/keystore"
	"github.com/dmitrijs2005/photovault/internal/client/services"
	"github.com/dmitrijs2005/photovault/internal/logging"
)

func newTestApp(t *testing.T, in *bytes.Buffer, out *bytes.Buffer) *App {
	t.Helper()
	session := services.NewSession(apitest.NewFakeClient(), keystore.NewMemoryKeyStore(), logging.NewNopLogger())
	return newApp(session, in, out)
}

// stubPasswords makes readPassword return canned answers in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	i := 0
	readPassword = func(prompt string) (string, error) {
		if i >= len(answers) {
			return "", fmt.Errorf("unexpected password prompt %q", prompt)
		}
		answer := answers[i]
		i++
		return answer, nil
	}
}

func writeTestImage(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "test.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestDispatchUnknownCommand(t *testing.T) {
	var in, out bytes.Buffer
	app := newTestApp(t, &in, &out)

	err := app.dispatch(context.Background(), "frobnicate", nil)
	require.ErrorContains(t, err, "unknown command")
}

func TestDispatchHelp(t *testing.T) {
	var in, out bytes.Buffer
	app := newTestApp(t, &in, &out)

	require.NoError(t, app.dispatch(context.Background(), "help", nil))
	require.Contains(t, out.String(), "register <username>")
	require.Contains(t, out.String(), "share-open <share-id>")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	var in, out bytes.Buffer
	app := newTestApp(t, &in, &out)
	stubPasswords(t, "one", "two")

	err := app.dispatch(context.Background(), "register", []string{"alice"})
	require.ErrorContains(t, err, "do not match")
}

func TestRegisterUploadAndListFlow(t *testing.T) {
	ctx := context.Background()
	var in, out bytes.Buffer
	app := newTestApp(t, &in, &out)
	stubPasswords(t, "correct horse", "correct horse")

	require.NoError(t, app.dispatch(ctx, "register", []string{"alice"}))
	require.Contains(t, out.String(), "registered and logged in as alice")

	path := writeTestImage(t, 64, 48)
	out.Reset()
	require.NoError(t, app.dispatch(ctx, "upload", []string{path}))
	require.Contains(t, out.String(), "uploaded ")

	// Same bytes again are recognised, not re-stored.
	out.Reset()
	require.NoError(t, app.dispatch(ctx, "upload", []string{path}))
	require.Contains(t, out.String(), "already uploaded")

	out.Reset()
	require.NoError(t, app.dispatch(ctx, "photos", nil))
	require.Contains(t, out.String(), "64x48")
}

func TestSaveWritesVariant(t *testing.T) {
	ctx := context.Background()
	var in, out bytes.Buffer
	app := newTestApp(t, &in, &out)
	stubPasswords(t, "correct horse", "correct horse")

	require.NoError(t, app.dispatch(ctx, "register", []string{"alice"}))
	require.NoError(t, app.dispatch(ctx, "upload", []string{writeTestImage(t, 64, 48)}))

	photos, err := app.photos.List(ctx)
	require.NoError(t, err)
	require.Len(t, photos, 1)

	dest := filepath.Join(t.TempDir(), "thumb.jpg")
	require.NoError(t, app.dispatch(ctx, "save", []string{photos[0].ID, "thumbnail", dest}))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestAlbumCommands(t *testing.T) {
	ctx := context.Background()
	var in, out bytes.Buffer
	app := newTestApp(t, &in, &out)
	stubPasswords(t, "correct horse", "correct horse")

	require.NoError(t, app.dispatch(ctx, "register", []string{"alice"}))
	require.NoError(t, app.dispatch(ctx, "upload", []string{writeTestImage(t, 64, 48)}))

	photos, err := app.photos.List(ctx)
	require.NoError(t, err)
	photoID := photos[0].ID

	out.Reset()
	require.NoError(t, app.dispatch(ctx, "album-create", []string{"Holiday"}))
	require.Contains(t, out.String(), "created album ")

	albums, err := app.albums.List(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	albumID := albums[0].ID

	require.NoError(t, app.dispatch(ctx, "album-add", []string{albumID, photoID}))
	require.NoError(t, app.dispatch(ctx, "album-thumb", []string{albumID, photoID}))

	out.Reset()
	require.NoError(t, app.dispatch(ctx, "album-show", []string{albumID}))
	require.Contains(t, out.String(), "title: Holiday")
	require.Contains(t, out.String(), photoID)

	require.NoError(t, app.dispatch(ctx, "album-remove", []string{albumID, photoID}))
	album, err := app.albums.Get(ctx, albumID)
	require.NoError(t, err)
	require.Empty(t, album.PhotoIDs)

	require.NoError(t, app.dispatch(ctx, "album-delete", []string{albumID}))
	err = app.dispatch(ctx, "album-show", []string{albumID})
	require.Error(t, err)
}

func TestShareCommands(t *testing.T) {
	ctx := context.Background()
	var in, out bytes.Buffer
	app := newTestApp(t, &in, &out)
	stubPasswords(t, "correct horse", "correct horse", "share-pw", "share-pw")

	require.NoError(t, app.dispatch(ctx, "register", []string{"alice"}))
	require.NoError(t, app.dispatch(ctx, "upload", []string{writeTestImage(t, 64, 48)}))

	photos, err := app.photos.List(ctx)
	require.NoError(t, err)

	album, err := app.albums.Create(ctx, "Holiday", []string{photos[0].ID})
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, app.dispatch(ctx, "share", []string{album.ID}))
	require.Contains(t, out.String(), "shared as ")

	lib, err := app.albums.List(ctx)
	require.NoError(t, err)
	require.Len(t, lib, 1)

	entry, err := app.shares.Upsert(ctx, album.ID, "share-pw")
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, app.dispatch(ctx, "share-open", []string{entry.ID}))
	require.Contains(t, out.String(), "1 photo(s)")

	dest := filepath.Join(t.TempDir(), "shared.jpg")
	require.NoError(t, app.dispatch(ctx, "share-save", []string{entry.ID, photos[0].ID, "preview", dest}))
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	out.Reset()
	require.NoError(t, app.dispatch(ctx, "share-delete", []string{album.ID}))
	require.Contains(t, out.String(), "share revoked")
}

func TestRunExitCommand(t *testing.T) {
	in := bytes.NewBufferString("exit\n")
	var out bytes.Buffer
	app := newTestApp(t, in, &out)

	require.NoError(t, app.Run(context.Background()))
	require.Contains(t, out.String(), "photovault")
}

func TestRunReportsErrors(t *testing.T) {
	in := bytes.NewBufferString("photos\nexit\n")
	var out bytes.Buffer
	app := newTestApp(t, in, &out)

	require.NoError(t, app.Run(context.Background()))
	require.Contains(t, out.String(), "error:")
}

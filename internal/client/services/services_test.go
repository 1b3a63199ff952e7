package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/photovault/internal/client/api/apitest"
	"github.com/dmitrijs2005/photovault/internal/client/keystore"
	"github.com/dmitrijs2005/photovault/internal/client/models"
	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/logging"
)

type testEnv struct {
	fake    *apitest.FakeClient
	session *Session
	auth    AuthService
	photos  PhotoService
	albums  AlbumService
	shares  ShareService
}

func newTestEnv(t *testing.T, fake *apitest.FakeClient) *testEnv {
	t.Helper()
	session := NewSession(fake, keystore.NewMemoryKeyStore(), logging.NewNopLogger())
	return &testEnv{
		fake:    fake,
		session: session,
		auth:    NewAuthService(session),
		photos:  NewPhotoService(session),
		albums:  NewAlbumService(session),
		shares:  NewShareService(session),
	}
}

func newOwnerEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t, apitest.NewFakeClient())
	require.NoError(t, env.auth.Register(context.Background(), "alice", "correct horse"))
	return env
}

func testPNG(t *testing.T, w, h int, seed uint8) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: seed, G: 128, B: 255 - seed, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

// jpegWithOrientation splices a minimal EXIF APP1 segment carrying only the
// orientation tag into a freshly encoded JPEG, right after the SOI marker.
func jpegWithOrientation(t *testing.T, w, h int, orientation uint16) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{G: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	jpg := buf.Bytes()
	require.Equal(t, []byte{0xFF, 0xD8}, jpg[:2])

	tiff := &bytes.Buffer{}
	tiff.WriteString("II")
	binary.Write(tiff, binary.LittleEndian, uint16(0x2A)) // TIFF magic
	binary.Write(tiff, binary.LittleEndian, uint32(8))    // IFD0 offset
	binary.Write(tiff, binary.LittleEndian, uint16(1))    // one entry
	binary.Write(tiff, binary.LittleEndian, uint16(0x0112))
	binary.Write(tiff, binary.LittleEndian, uint16(3)) // SHORT
	binary.Write(tiff, binary.LittleEndian, uint32(1))
	binary.Write(tiff, binary.LittleEndian, orientation)
	binary.Write(tiff, binary.LittleEndian, uint16(0)) // value padding
	binary.Write(tiff, binary.LittleEndian, uint32(0)) // no next IFD

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)
	app1 := &bytes.Buffer{}
	app1.Write([]byte{0xFF, 0xE1})
	binary.Write(app1, binary.BigEndian, uint16(len(payload)+2))
	app1.Write(payload)

	out := append([]byte{0xFF, 0xD8}, app1.Bytes()...)
	return append(out, jpg[2:]...)
}

func decodeImage(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestUploadAndReadBack(t *testing.T) {
	env := newOwnerEnv(t)
	ctx := context.Background()

	res, err := env.photos.Upload(ctx, testPNG(t, 2000, 1000, 1))
	require.NoError(t, err)
	require.False(t, res.Skipped)
	require.NotEmpty(t, res.PhotoID)

	// One library envelope plus the photo entity; three encrypted blobs.
	require.Equal(t, 3, env.fake.FileCount())

	list, err := env.photos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 2000, list[0].Width)
	require.Equal(t, 1000, list[0].Height)

	thumb, err := env.photos.Image(ctx, res.PhotoID, models.VariantThumbnail)
	require.NoError(t, err)
	img := decodeImage(t, thumb)
	require.Equal(t, 350, img.Bounds().Dx())
	require.Equal(t, 175, img.Bounds().Dy())

	// Blobs on the server must not be readable as plaintext JPEG.
	stored, err := env.fake.GetFile(ctx, models.BlobID(res.PhotoID, models.VariantThumbnail))
	require.NoError(t, err)
	require.NotEqual(t, thumb, stored)
}

func TestUploadDuplicateSkipped(t *testing.T) {
	env := newOwnerEnv(t)
	ctx := context.Background()
	data := testPNG(t, 400, 300, 7)

	first, err := env.photos.Upload(ctx, data)
	require.NoError(t, err)
	require.False(t, first.Skipped)

	second, err := env.photos.Upload(ctx, data)
	require.NoError(t, err)
	require.True(t, second.Skipped)
	require.Equal(t, first.PhotoID, second.PhotoID)

	require.Equal(t, 3, env.fake.FileCount())
	list, err := env.photos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestUploadOrientationSwapsDimensions(t *testing.T) {
	env := newOwnerEnv(t)
	ctx := context.Background()

	res, err := env.photos.Upload(ctx, jpegWithOrientation(t, 300, 200, 6))
	require.NoError(t, err)

	list, err := env.photos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 200, list[0].Width, "orientation 6 swaps the stored dimensions")
	require.Equal(t, 300, list[0].Height)

	// Derived variants are rotated upright.
	thumb, err := env.photos.Image(ctx, res.PhotoID, models.VariantThumbnail)
	require.NoError(t, err)
	img := decodeImage(t, thumb)
	require.Equal(t, 200, img.Bounds().Dx())
	require.Equal(t, 300, img.Bounds().Dy())
}

func TestAlbumLifecycle(t *testing.T) {
	env := newOwnerEnv(t)
	ctx := context.Background()

	p1, err := env.photos.Upload(ctx, testPNG(t, 100, 100, 1))
	require.NoError(t, err)
	p2, err := env.photos.Upload(ctx, testPNG(t, 100, 100, 2))
	require.NoError(t, err)

	_, err = env.albums.Create(ctx, "bad", []string{"nonexistent"})
	require.ErrorIs(t, err, common.ErrValidation)

	album, err := env.albums.Create(ctx, "Trip", []string{p1.PhotoID, p2.PhotoID})
	require.NoError(t, err)
	require.Equal(t, p1.PhotoID, album.ThumbnailPhotoID)

	got, err := env.albums.Get(ctx, album.ID)
	require.NoError(t, err)
	require.Equal(t, []string{p1.PhotoID, p2.PhotoID}, got.PhotoIDs)

	title := "Trip 2026"
	updated, err := env.albums.Update(ctx, album.ID, AlbumUpdate{
		Title:    &title,
		PhotoIDs: []string{p2.PhotoID},
	})
	require.NoError(t, err)
	require.Equal(t, "Trip 2026", updated.Title)
	require.Equal(t, []string{p2.PhotoID}, updated.PhotoIDs)
	require.Empty(t, updated.ThumbnailPhotoID, "thumbnail cleared when its photo left the album")

	require.NoError(t, env.albums.Delete(ctx, album.ID))
	_, err = env.albums.Get(ctx, album.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	// Photos survive their album.
	list, err := env.photos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestPhotoDeleteCascades(t *testing.T) {
	env := newOwnerEnv(t)
	ctx := context.Background()

	p1, err := env.photos.Upload(ctx, testPNG(t, 100, 100, 1))
	require.NoError(t, err)
	p2, err := env.photos.Upload(ctx, testPNG(t, 100, 100, 2))
	require.NoError(t, err)

	album, err := env.albums.Create(ctx, "Trip", []string{p1.PhotoID, p2.PhotoID})
	require.NoError(t, err)

	require.NoError(t, env.photos.Delete(ctx, []string{p1.PhotoID}))

	got, err := env.albums.Get(ctx, album.ID)
	require.NoError(t, err)
	require.Equal(t, []string{p2.PhotoID}, got.PhotoIDs)
	require.Empty(t, got.ThumbnailPhotoID)

	list, err := env.photos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 3, env.fake.FileCount(), "three blobs of the deleted photo removed")

	_, err = env.photos.Image(ctx, p1.PhotoID, models.VariantThumbnail)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestShareRoundTrip(t *testing.T) {
	owner := newOwnerEnv(t)
	ctx := context.Background()

	res, err := owner.photos.Upload(ctx, testPNG(t, 500, 400, 3))
	require.NoError(t, err)
	album, err := owner.albums.Create(ctx, "Shared", []string{res.PhotoID})
	require.NoError(t, err)

	entry, err := owner.shares.Upsert(ctx, album.ID, "sesame")
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)

	// The accessible set covers the album, the photo and all three blobs.
	require.Len(t, owner.fake.AccessibleItems(entry.ID), 5)

	recipient := newTestEnv(t, owner.fake)

	_, err = recipient.shares.Open(ctx, entry.ID)
	require.ErrorIs(t, err, common.ErrUnauthorized)

	ok, err := recipient.shares.Authorize(ctx, entry.ID, "wrong")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = recipient.shares.Authorize(ctx, entry.ID, "sesame")
	require.NoError(t, err)
	require.True(t, ok)

	data, err := recipient.shares.Open(ctx, entry.ID)
	require.NoError(t, err)
	require.Equal(t, album.ID, data.AlbumID)
	require.Len(t, data.Photos, 1)
	require.Equal(t, res.PhotoID, data.Photos[0].ID)
	require.Equal(t, 500, data.Photos[0].Width)

	preview, err := recipient.shares.ReadPhoto(ctx, entry.ID, res.PhotoID, models.VariantPreview)
	require.NoError(t, err)
	img := decodeImage(t, preview)
	require.Equal(t, 500, img.Bounds().Dx())
}

func TestShareRefreshOnAlbumMutation(t *testing.T) {
	owner := newOwnerEnv(t)
	ctx := context.Background()

	p1, err := owner.photos.Upload(ctx, testPNG(t, 100, 100, 1))
	require.NoError(t, err)
	p2, err := owner.photos.Upload(ctx, testPNG(t, 100, 100, 2))
	require.NoError(t, err)
	album, err := owner.albums.Create(ctx, "Shared", []string{p1.PhotoID, p2.PhotoID})
	require.NoError(t, err)

	entry, err := owner.shares.Upsert(ctx, album.ID, "sesame")
	require.NoError(t, err)

	recipient := newTestEnv(t, owner.fake)
	ok, err := recipient.shares.Authorize(ctx, entry.ID, "sesame")
	require.NoError(t, err)
	require.True(t, ok)

	// Owner shrinks the album; the share follows without re-authorizing.
	_, err = owner.albums.Update(ctx, album.ID, AlbumUpdate{PhotoIDs: []string{p2.PhotoID}})
	require.NoError(t, err)

	data, err := recipient.shares.Open(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, data.Photos, 1)
	require.Equal(t, p2.PhotoID, data.Photos[0].ID)

	// Deleting a member photo refreshes the share too.
	require.NoError(t, owner.photos.Delete(ctx, []string{p2.PhotoID}))
	data, err = recipient.shares.Open(ctx, entry.ID)
	require.NoError(t, err)
	require.Empty(t, data.Photos)
}

func TestShareDeleteRevokes(t *testing.T) {
	owner := newOwnerEnv(t)
	ctx := context.Background()

	res, err := owner.photos.Upload(ctx, testPNG(t, 100, 100, 1))
	require.NoError(t, err)
	album, err := owner.albums.Create(ctx, "Shared", []string{res.PhotoID})
	require.NoError(t, err)
	entry, err := owner.shares.Upsert(ctx, album.ID, "sesame")
	require.NoError(t, err)

	recipient := newTestEnv(t, owner.fake)
	ok, err := recipient.shares.Authorize(ctx, entry.ID, "sesame")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, owner.shares.Delete(ctx, album.ID))

	_, err = recipient.shares.Open(ctx, entry.ID)
	require.Error(t, err)
}

func TestShareUpsertReusesID(t *testing.T) {
	owner := newOwnerEnv(t)
	ctx := context.Background()

	res, err := owner.photos.Upload(ctx, testPNG(t, 100, 100, 1))
	require.NoError(t, err)
	album, err := owner.albums.Create(ctx, "Shared", []string{res.PhotoID})
	require.NoError(t, err)

	first, err := owner.shares.Upsert(ctx, album.ID, "one")
	require.NoError(t, err)
	second, err := owner.shares.Upsert(ctx, album.ID, "two")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID, "one share per album, replaced in place")
	require.NotEqual(t, first.Key, second.Key, "key follows the password")
}

func TestAlbumDeleteRemovesShare(t *testing.T) {
	owner := newOwnerEnv(t)
	ctx := context.Background()

	res, err := owner.photos.Upload(ctx, testPNG(t, 100, 100, 1))
	require.NoError(t, err)
	album, err := owner.albums.Create(ctx, "Shared", []string{res.PhotoID})
	require.NoError(t, err)
	entry, err := owner.shares.Upsert(ctx, album.ID, "sesame")
	require.NoError(t, err)

	require.NoError(t, owner.albums.Delete(ctx, album.ID))
	_, err = owner.fake.GetShare(ctx, entry.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestLogoutWipesState(t *testing.T) {
	env := newOwnerEnv(t)
	ctx := context.Background()

	_, err := env.photos.Upload(ctx, testPNG(t, 100, 100, 1))
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(ctx))
	require.False(t, env.session.LoggedIn())

	_, err = env.photos.List(ctx)
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newOwnerEnv(t)
	ctx := context.Background()
	require.NoError(t, env.auth.Logout(ctx))

	err := env.auth.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, common.ErrUnauthorized)
	require.False(t, env.session.LoggedIn())

	require.NoError(t, env.auth.Login(ctx, "alice", "correct horse"))
	require.True(t, env.session.LoggedIn())

	list, err := env.photos.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

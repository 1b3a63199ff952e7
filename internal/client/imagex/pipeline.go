// Package imagex implements the deterministic image preprocessing pipeline:
// decode, EXIF orientation handling, preview/thumbnail downscaling and JPEG
// re-encoding. The original bytes are passed through untouched; only the
// derived variants are rotated upright and re-encoded.
package imagex

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/dmitrijs2005/photovault/internal/client/models"
	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/cryptox"
)

const (
	// PreviewMaxSize bounds the longest side of the preview variant.
	PreviewMaxSize = 1600
	// ThumbnailMaxSize bounds the longest side of the thumbnail variant.
	ThumbnailMaxSize = 350

	previewJPEGQuality   = 80
	thumbnailJPEGQuality = 90
)

// Result is the output of one pipeline run. Width and Height reflect the
// viewer-visible orientation: for EXIF orientations 5-8 they are swapped
// relative to the stored pixel grid of the original.
type Result struct {
	Hash   string
	Width  int
	Height int
	Taken  int64 // unix seconds from EXIF date-taken; 0 if unknown
	Exif   *models.Exif

	Original  []byte
	Preview   []byte
	Thumbnail []byte
}

// Process decodes a JPEG or PNG image and produces the three byte streams.
// EXIF parsing failures are tolerated: the image is then treated as
// orientation 1 with no metadata.
func Process(data []byte) (*Result, error) {
	meta := ParseExif(data)

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", common.ErrImage, err)
	}

	orientation := 1
	if meta.Orientation != nil && *meta.Orientation >= 1 && *meta.Orientation <= 8 {
		orientation = *meta.Orientation
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", common.ErrImage, width, height)
	}

	preview := scaleDown(img, PreviewMaxSize)
	thumbnail := scaleDown(preview, ThumbnailMaxSize)

	// Derived variants are rotated upright so viewers ignorant of EXIF
	// display them correctly. The original keeps its EXIF and stays as is.
	preview = Orient(preview, orientation)
	thumbnail = Orient(thumbnail, orientation)

	if SwapsDimensions(orientation) {
		width, height = height, width
	}

	previewBytes, err := encodeJPEG(preview, previewJPEGQuality)
	if err != nil {
		return nil, err
	}
	thumbnailBytes, err := encodeJPEG(thumbnail, thumbnailJPEGQuality)
	if err != nil {
		return nil, err
	}

	var taken int64
	if meta.DateTaken != nil {
		taken = *meta.DateTaken
	}

	result := &Result{
		Hash:      cryptox.HashHex(data),
		Width:     width,
		Height:    height,
		Taken:     taken,
		Original:  data,
		Preview:   previewBytes,
		Thumbnail: thumbnailBytes,
	}
	if !meta.IsZero() {
		result.Exif = meta
	}
	return result, nil
}

// scaleDown resizes img so that neither dimension exceeds maxSize,
// preserving aspect ratio. Images already within bounds are returned
// unchanged.
func scaleDown(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSize && h <= maxSize {
		return img
	}

	var newW, newH int
	if w > h {
		newW = maxSize
		newH = int(math.Round(float64(h) * (float64(maxSize) / float64(w))))
	} else {
		newH = maxSize
		newW = int(math.Round(float64(w) * (float64(maxSize) / float64(h))))
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return imaging.Resize(img, newW, newH, imaging.Lanczos)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("%w: jpeg encode: %v", common.ErrImage, err)
	}
	return buf.Bytes(), nil
}

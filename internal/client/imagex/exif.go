package imagex

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/dmitrijs2005/photovault/internal/client/models"
)

// ParseExif extracts the fixed metadata field list from the image bytes.
// Inputs without EXIF data (PNGs, stripped JPEGs, unknown namespaces) yield
// an empty record, never an error.
func ParseExif(data []byte) *models.Exif {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return &models.Exif{}
	}

	meta := &models.Exif{
		Manufacturer:  getString(x, exif.Make),
		Model:         getString(x, exif.Model),
		Aperture:      getRational(x, exif.FNumber),
		ExposureTime:  getExposureTime(x),
		ISO:           getInt(x, exif.ISOSpeedRatings),
		FocalLength:   getRational(x, exif.FocalLength),
		FocalLength35: getRational(x, exif.FocalLengthIn35mmFilm),
		Orientation:   getInt(x, exif.Orientation),
	}

	if dt, err := x.DateTime(); err == nil {
		ts := dt.Unix()
		meta.DateTaken = &ts
	}

	if lat, long, err := x.LatLong(); err == nil {
		meta.GPSLatitude = &lat
		meta.GPSLongitude = &long
	}

	return meta
}

// getRational reads a rational tag (aperture, focal length) as float64.
// Some cameras store these as plain integers instead.
func getRational(x *exif.Exif, name exif.FieldName) *float64 {
	tag, err := x.Get(name)
	if err != nil || tag == nil {
		return nil
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		if valInt, errInt := tag.Int(0); errInt == nil {
			f := float64(valInt)
			return &f
		}
		return nil
	}
	val := float64(num) / float64(den)
	return &val
}

func getInt(x *exif.Exif, name exif.FieldName) *int {
	tag, err := x.Get(name)
	if err != nil || tag == nil {
		return nil
	}
	val, err := tag.Int(0)
	if err != nil {
		return nil
	}
	return &val
}

// getString trims the null terminators some firmwares append.
func getString(x *exif.Exif, name exif.FieldName) *string {
	tag, err := x.Get(name)
	if err != nil || tag == nil {
		return nil
	}
	val := strings.Trim(strings.TrimRight(tag.String(), "\x00"), `"`)
	if val == "" {
		return nil
	}
	return &val
}

// getExposureTime formats the exposure time the way photographers expect:
// "1/250" for fast shutters, seconds with a suffix otherwise.
func getExposureTime(x *exif.Exif) *string {
	tag, err := x.Get(exif.ExposureTime)
	if err != nil || tag == nil {
		return nil
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return nil
	}

	if num == 1 && den > 1 {
		s := fmt.Sprintf("1/%d", den)
		return &s
	}
	val := float64(num) / float64(den)
	if val >= 1.0 {
		s := fmt.Sprintf("%.1fs", val)
		return &s
	}
	s := fmt.Sprintf("%.4fs", val)
	return &s
}

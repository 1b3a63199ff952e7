package models

// Exif is the fixed set of camera metadata fields carried inside a photo
// entity. All fields are optional; inputs without EXIF data produce the
// zero value rather than an error.
type Exif struct {
	Manufacturer  *string  `json:"manufacturer,omitempty"`
	Model         *string  `json:"model,omitempty"`
	Aperture      *float64 `json:"aperture,omitempty"`
	ExposureTime  *string  `json:"exposureTime,omitempty"`
	ISO           *int     `json:"iso,omitempty"`
	FocalLength   *float64 `json:"focalLength,omitempty"`
	FocalLength35 *float64 `json:"focalLength35mmEquiv,omitempty"`
	Orientation   *int     `json:"orientation,omitempty"`
	DateTaken     *int64   `json:"dateTaken,omitempty"`
	GPSLatitude   *float64 `json:"gpsLatitude,omitempty"`
	GPSLongitude  *float64 `json:"gpsLongitude,omitempty"`
}

// IsZero reports whether no field is set.
func (e *Exif) IsZero() bool {
	return e == nil || *e == Exif{}
}

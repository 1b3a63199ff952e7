package imagex

import (
	"image"

	"github.com/disintegration/imaging"
)

// Orient applies the inverse of the EXIF orientation transform so that the
// returned image displays upright without EXIF interpretation.
//
//	1 identity              5 rotate 90 CW + flip horizontal
//	2 flip horizontal       6 rotate 90 CW
//	3 rotate 180            7 rotate 90 CW + flip vertical
//	4 flip vertical         8 rotate 270 CW
//
// Values outside 1..8 are treated as 1.
func Orient(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		// imaging rotates counter-clockwise; 270 CCW == 90 CW.
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// SwapsDimensions reports whether the orientation exchanges width and
// height when the image is displayed upright.
func SwapsDimensions(orientation int) bool {
	return orientation >= 5 && orientation <= 8
}

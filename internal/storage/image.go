package storage

import (
	"bytes"

	"github.com/disintegration/imaging"
)

// Images larger than this on either side are scaled down before upload.
const maxImageDimension = 1600

// NormalizeImage bounds a JPEG or PNG to maxImageDimension on the long edge
// and re-encodes it. The optimized rendition is used only if it is actually
// smaller; otherwise (and for any decode failure or unsupported format such
// as WEBP) the original bytes pass through untouched.
func NormalizeImage(data []byte, contentType string) ([]byte, string) {
	var format imaging.Format
	switch contentType {
	case "image/jpeg", "image/jpg":
		format = imaging.JPEG
		contentType = "image/jpeg"
	case "image/png":
		format = imaging.PNG
	default:
		return data, contentType
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, contentType
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageDimension || bounds.Dy() > maxImageDimension {
		img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(80)); err != nil {
		return data, contentType
	}

	if buf.Len() > 0 && buf.Len() < len(data) {
		return buf.Bytes(), contentType
	}
	return data, contentType
}

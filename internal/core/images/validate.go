package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// maxPixels bounds decoded dimensions to keep decompression bombs out
const maxPixels = 40_000_000

// Validate checks an upload's size, declared content type and actual bytes.
// It returns the decoded format name ("jpeg", "png", "gif" or "webp").
func Validate(img Image) (string, error) {
	if len(img.Data) == 0 {
		return "", ErrEmptyImage
	}
	if len(img.Data) > MaxImageSize {
		return "", fmt.Errorf("%w: got %d bytes", ErrImageTooLarge, len(img.Data))
	}

	// An empty content type is allowed; the bytes decide
	if ct := normalizeMimeType(img.ContentType); ct != "" && ct != "application/octet-stream" && !isValidMimeType(ct) {
		return "", fmt.Errorf("%w: declared %s", ErrUnsupportedFormat, ct)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if !isValidMimeType(mimeTypeFor(format)) {
		return "", fmt.Errorf("%w: format %s", ErrUnsupportedFormat, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
		return "", fmt.Errorf("%w: invalid dimensions %dx%d", ErrInvalidImage, cfg.Width, cfg.Height)
	}

	// Full decode catches truncated or corrupt bodies behind a valid header
	if _, err := imaging.Decode(bytes.NewReader(img.Data)); err != nil {
		return "", fmt.Errorf("%w: failed to decode image: %v", ErrInvalidImage, err)
	}

	return format, nil
}

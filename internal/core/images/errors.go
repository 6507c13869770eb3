package images

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidImage is the parent of every client-side payload error
	ErrInvalidImage = errors.New("invalid image")

	// ErrEmptyImage is returned for a zero-length payload
	ErrEmptyImage = fmt.Errorf("%w: empty image data", ErrInvalidImage)

	// ErrImageTooLarge is returned when the payload exceeds MaxImageSize
	ErrImageTooLarge = fmt.Errorf("%w: image exceeds maximum size of %d bytes (6MB)", ErrInvalidImage, MaxImageSize)

	// ErrUnsupportedFormat is returned for payloads that are not jpeg/png/webp/gif
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported image format (allowed: image/jpeg, image/png, image/webp, image/gif)", ErrInvalidImage)

	// ErrStorageFailed wraps failures of the underlying object store
	ErrStorageFailed = errors.New("image storage failed")
)

// IsInvalidImage reports whether err was caused by the payload itself
func IsInvalidImage(err error) bool {
	return errors.Is(err, ErrInvalidImage)
}

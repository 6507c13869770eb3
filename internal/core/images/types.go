package images

import (
	"context"
	"path"
	"strings"
)

// MaxImageSize is the largest accepted payload (6MB = 6291456 bytes)
const MaxImageSize = 6291456

// Image is an uploaded binary payload as received from the client
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Service stores an image and returns its public URL
type Service interface {
	Upload(ctx context.Context, img Image) (string, error)
}

// Store writes an object and returns the URL it is publicly reachable at.
// Implementations: GCSStore (Google Cloud Storage) and LocalStore (disk).
type Store interface {
	Put(ctx context.Context, objectName, contentType string, data []byte) (string, error)
}

// normalizeMimeType converts non-standard MIME types to their standard equivalents
// Common case: Many clients send image/jpg instead of the standard image/jpeg
func normalizeMimeType(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	switch mimeType {
	case "image/jpg", "image/pjpeg":
		return "image/jpeg"
	default:
		return mimeType
	}
}

// isValidMimeType checks if the MIME type is allowed for uploads
func isValidMimeType(mimeType string) bool {
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	default:
		return false
	}
}

// extensionFor returns the canonical file extension for a decoded format
func extensionFor(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png", "gif", "webp":
		return "." + format
	default:
		return ""
	}
}

// mimeTypeFor returns the MIME type for a decoded format
func mimeTypeFor(format string) string {
	if format == "" {
		return ""
	}
	return "image/" + format
}

// sanitizeFilename keeps only the base name with a restricted character set
func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('-')
		}
		if b.Len() >= 64 {
			break
		}
	}
	return strings.Trim(b.String(), "-")
}

package images

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type uploadService struct {
	store  Store
	logger *slog.Logger
}

// NewUploadService creates an image uploader backed by store
func NewUploadService(store Store, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &uploadService{
		store:  store,
		logger: logger,
	}
}

// Upload validates img and stores it under a unique object name.
// Payload problems satisfy IsInvalidImage; store failures wrap ErrStorageFailed.
func (s *uploadService) Upload(ctx context.Context, img Image) (string, error) {
	format, err := Validate(img)
	if err != nil {
		return "", err
	}

	objectName := ObjectName(img.Filename, format)
	contentType := mimeTypeFor(format)

	url, err := s.store.Put(ctx, objectName, contentType, img.Data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	s.logger.Debug("image stored",
		"object", objectName,
		"content_type", contentType,
		"size", len(img.Data))

	return url, nil
}

// ObjectName builds "<uuid>-<sanitized name><ext>" so equal client filenames
// never overwrite each other.
func ObjectName(filename, format string) string {
	name := uuid.NewString()
	if base := sanitizeFilename(filename); base != "" {
		name += "-" + base
	}
	return name + extensionFor(format)
}

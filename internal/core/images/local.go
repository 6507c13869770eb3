package images

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UploadsPath is the URL prefix under which LocalStore objects are served
const UploadsPath = "/uploads/"

// LocalStore writes objects to a directory on disk. The HTTP server exposes
// that directory under UploadsPath.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates dir if needed. publicBaseURL is the externally
// reachable origin of this service, e.g. "http://localhost:8080".
func NewLocalStore(dir, publicBaseURL string) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.New("upload directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

// Dir returns the directory objects are written to
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes data atomically (temp file + rename) and returns its URL
func (s *LocalStore) Put(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if objectName == "" || objectName != filepath.Base(objectName) || strings.HasPrefix(objectName, ".") {
		return "", fmt.Errorf("invalid object name %q", objectName)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to write %s: %w", objectName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to close %s: %w", objectName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to chmod %s: %w", objectName, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, objectName)); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to store %s: %w", objectName, err)
	}

	return s.baseURL + UploadsPath + objectName, nil
}

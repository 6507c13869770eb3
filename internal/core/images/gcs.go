package images

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore writes objects to a Google Cloud Storage bucket and returns their
// public URL. The bucket is expected to grant public read to allUsers.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore creates a store for bucket. credentialsFile is optional; when
// empty the client falls back to Application Default Credentials.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string, opts ...option.ClientOption) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("GCS bucket name cannot be empty")
	}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStore{
		client: client,
		bucket: bucket,
	}, nil
}

// Put uploads data in a single request and returns the object's public URL
func (s *GCSStore) Put(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	// Payloads are capped at MaxImageSize, a resumable session buys nothing
	w.ChunkSize = 0

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}

	return gcsPublicURL(s.bucket, objectName), nil
}

// Close releases the underlying client
func (s *GCSStore) Close() error {
	return s.client.Close()
}

// gcsPublicURL formats https://storage.googleapis.com/{bucket}/{object}
func gcsPublicURL(bucket, objectName string) string {
	u := url.URL{
		Scheme: "https",
		Host:   "storage.googleapis.com",
		Path:   "/" + bucket + "/" + objectName,
	}
	return u.String()
}

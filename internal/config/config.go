package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends for uploaded images
const (
	StorageGCS   = "gcs"
	StorageLocal = "local"
)

// Config validation errors
var (
	// ErrMissingDatabaseURL is returned when DATABASE_URL is empty
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	// ErrMissingTokenConfig is returned when neither SECRET_KEY nor JWT_JWKS_URL is set
	ErrMissingTokenConfig = errors.New("SECRET_KEY or JWT_JWKS_URL is required")
	// ErrInvalidStorageBackend is returned for an unknown STORAGE_BACKEND
	ErrInvalidStorageBackend = errors.New("STORAGE_BACKEND must be \"gcs\" or \"local\"")
	// ErrMissingBucketName is returned when the GCS backend has no bucket
	ErrMissingBucketName = errors.New("BUCKET_NAME is required for the gcs storage backend")
	// ErrMissingUploadDir is returned when the local backend has no directory
	ErrMissingUploadDir = errors.New("UPLOAD_DIR is required for the local storage backend")
	// ErrInvalidTimeout is returned for a non-positive timeout
	ErrInvalidTimeout = errors.New("timeouts must be positive")
	// ErrInvalidRateLimit is returned for a non-positive rate limit
	ErrInvalidRateLimit = errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
)

// Config holds the service configuration
type Config struct {
	// DatabaseURL is the PostgreSQL connection string
	DatabaseURL string

	// Port the HTTP server listens on
	Port string

	// SecretKey verifies HS256 bearer tokens
	SecretKey string

	// JWKSURL optionally enables RS256/ES256 tokens carrying a kid
	JWKSURL string

	// FollowingServiceURL is the base URL of the follower service.
	// Empty disables the following feed (it then answers 500).
	FollowingServiceURL string
	FollowingTimeout    time.Duration

	// StorageBackend is StorageGCS or StorageLocal
	StorageBackend  string
	BucketName      string
	CredentialsFile string
	UploadDir       string
	// PublicBaseURL is this service's externally reachable origin, used for
	// local-backend image URLs
	PublicBaseURL string
	UploadTimeout time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	CORSAllowedOrigins []string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Port:               "8080",
		FollowingTimeout:   5 * time.Second,
		StorageBackend:     StorageLocal,
		UploadDir:          "uploads",
		PublicBaseURL:      "http://localhost:8080",
		UploadTimeout:      15 * time.Second,
		RateLimitRequests:  100,
		RateLimitWindow:    time.Minute,
		CORSAllowedOrigins: []string{"*"},
	}
}

// FromEnv creates a Config from environment variables and validates it.
// Uses defaults for any missing optional variable.
//
// Environment variables:
//   - DATABASE_URL (required)
//   - PORT (default: 8080)
//   - SECRET_KEY: HS256 token secret
//   - JWT_JWKS_URL: JWKS endpoint for asymmetric tokens (one of the two is required)
//   - FOLLOWING_SERVICE_URL: follower service base URL
//   - FOLLOWING_TIMEOUT: e.g. "5s" or "5" (default: 5s)
//   - STORAGE_BACKEND: "gcs" or "local" (default: local)
//   - BUCKET_NAME, CREDENTIALS_FILE: GCS settings
//   - UPLOAD_DIR (default: uploads), PUBLIC_BASE_URL (default: http://localhost:PORT)
//   - UPLOAD_TIMEOUT (default: 15s)
//   - RATE_LIMIT_REQUESTS (default: 100), RATE_LIMIT_WINDOW (default: 1m)
//   - CORS_ALLOWED_ORIGINS: comma-separated (default: *)
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.SecretKey = os.Getenv("SECRET_KEY")
	cfg.JWKSURL = os.Getenv("JWT_JWKS_URL")
	cfg.FollowingServiceURL = os.Getenv("FOLLOWING_SERVICE_URL")
	cfg.BucketName = os.Getenv("BUCKET_NAME")
	cfg.CredentialsFile = os.Getenv("CREDENTIALS_FILE")

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
		cfg.PublicBaseURL = "http://localhost:" + v
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		cfg.PublicBaseURL = strings.TrimSuffix(v, "/")
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.StorageBackend = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.UploadDir = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}

	cfg.FollowingTimeout = durationFromEnv("FOLLOWING_TIMEOUT", cfg.FollowingTimeout)
	cfg.UploadTimeout = durationFromEnv("UPLOAD_TIMEOUT", cfg.UploadTimeout)
	cfg.RateLimitWindow = durationFromEnv("RATE_LIMIT_WINDOW", cfg.RateLimitWindow)

	if v := os.Getenv("RATE_LIMIT_REQUESTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitRequests = n
		} else {
			slog.Warn("[CONFIG] invalid RATE_LIMIT_REQUESTS value, using default",
				"value", v,
				"default", cfg.RateLimitRequests,
				"error", err,
			)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for missing or invalid values
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if c.SecretKey == "" && c.JWKSURL == "" {
		return ErrMissingTokenConfig
	}

	switch c.StorageBackend {
	case StorageGCS:
		if c.BucketName == "" {
			return ErrMissingBucketName
		}
	case StorageLocal:
		if c.UploadDir == "" {
			return ErrMissingUploadDir
		}
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidStorageBackend, c.StorageBackend)
	}

	if c.FollowingTimeout <= 0 || c.UploadTimeout <= 0 {
		return fmt.Errorf("%w: following=%v upload=%v", ErrInvalidTimeout, c.FollowingTimeout, c.UploadTimeout)
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return ErrInvalidRateLimit
	}

	return nil
}

// durationFromEnv accepts Go durations ("1m30s") or whole seconds ("90")
func durationFromEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	slog.Warn("[CONFIG] invalid duration, using default",
		"key", key,
		"value", v,
		"default", fallback,
	)
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

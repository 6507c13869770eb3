package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// JWKSFetcher fetches the auth service's public key set and keeps it refreshed
// in the background. Unknown key IDs trigger one forced refresh before failing,
// so rotated keys are picked up without a restart.
type JWKSFetcher struct {
	cache   *jwk.Cache
	jwksURL string
}

// NewJWKSFetcher registers jwksURL with a background-refreshing key cache.
// ctx bounds the lifetime of the refresh goroutine.
func NewJWKSFetcher(ctx context.Context, jwksURL string, minRefresh time.Duration) (*JWKSFetcher, error) {
	if jwksURL == "" {
		return nil, fmt.Errorf("JWKS URL cannot be empty")
	}

	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL, jwk.WithMinRefreshInterval(minRefresh)); err != nil {
		return nil, fmt.Errorf("failed to register JWKS URL: %w", err)
	}

	return &JWKSFetcher{
		cache:   cache,
		jwksURL: jwksURL,
	}, nil
}

// FetchPublicKey returns the raw public key (RSA or ECDSA) for kid
func (f *JWKSFetcher) FetchPublicKey(ctx context.Context, kid string) (interface{}, error) {
	set, err := f.cache.Get(ctx, f.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	key, ok := set.LookupKeyID(kid)
	if !ok {
		// Key not found - the signer may have rotated keys
		set, err = f.cache.Refresh(ctx, f.jwksURL)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh JWKS: %w", err)
		}
		key, ok = set.LookupKeyID(kid)
		if !ok {
			return nil, fmt.Errorf("%w: kid %s", ErrKeyNotFound, kid)
		}
	}

	var raw interface{}
	if err := key.Raw(&raw); err != nil {
		return nil, fmt.Errorf("failed to convert JWK to public key: %w", err)
	}

	return raw, nil
}

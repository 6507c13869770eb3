package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Algorithm constants for JWT signing methods
const (
	AlgorithmHS256 = "HS256"
	AlgorithmRS256 = "RS256"
	AlgorithmES256 = "ES256"
)

// TokenVerifier decodes a bearer credential into the caller's username.
// Failures are ErrInvalidToken or ErrExpiredToken (checked with errors.Is).
type TokenVerifier interface {
	Decode(ctx context.Context, token string) (string, error)
}

// KeyFetcher resolves the public key for an asymmetric token's kid.
// Returns interface{} to support both RSA and ECDSA keys.
type KeyFetcher interface {
	FetchPublicKey(ctx context.Context, kid string) (interface{}, error)
}

// JWTHeader represents the parsed JWT header
type JWTHeader struct {
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	Typ string `json:"typ,omitempty"`
}

// Claims represents the JWT claims issued by the auth service
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// JWTVerifier verifies HS256 tokens signed with the shared secret and, when a
// KeyFetcher is configured, RS256/ES256 tokens whose kid is in the key set.
type JWTVerifier struct {
	keyFetcher KeyFetcher
	secret     []byte
}

// NewJWTVerifier creates a verifier. keyFetcher can be nil to accept HS256 only.
func NewJWTVerifier(secret []byte, keyFetcher KeyFetcher) *JWTVerifier {
	return &JWTVerifier{
		secret:     secret,
		keyFetcher: keyFetcher,
	}
}

// Decode verifies the token and returns its username claim
func (v *JWTVerifier) Decode(ctx context.Context, tokenString string) (string, error) {
	tokenString = stripBearerPrefix(tokenString)

	header, err := ParseJWTHeader(tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	// SECURITY: the key type is chosen from our configuration and the header
	// together, and the parser is pinned to that single algorithm, so a token
	// cannot switch an RSA public key into an HMAC secret.
	key, err := v.resolveKey(ctx, header)
	if err != nil {
		return "", err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{header.Alg}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}

	if claims.Username == "" {
		return "", fmt.Errorf("%w: missing username claim", ErrInvalidToken)
	}

	return claims.Username, nil
}

// resolveKey picks the verification key for the token's algorithm
func (v *JWTVerifier) resolveKey(ctx context.Context, header *JWTHeader) (interface{}, error) {
	switch header.Alg {
	case AlgorithmHS256:
		// Tokens carrying a key ID must be verified asymmetrically
		if header.Kid != "" {
			return nil, fmt.Errorf("%w: HS256 tokens must not carry a kid", ErrInvalidToken)
		}
		if len(v.secret) == 0 {
			return nil, fmt.Errorf("%w: HS256 verification not configured", ErrInvalidToken)
		}
		return v.secret, nil

	case AlgorithmRS256, AlgorithmES256:
		if v.keyFetcher == nil {
			return nil, fmt.Errorf("%w: %s verification not configured", ErrInvalidToken, header.Alg)
		}
		if header.Kid == "" {
			return nil, fmt.Errorf("%w: missing kid in token header", ErrInvalidToken)
		}
		key, err := v.keyFetcher.FetchPublicKey(ctx, header.Kid)
		if err != nil {
			if errors.Is(err, ErrKeyNotFound) {
				return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
			}
			return nil, fmt.Errorf("failed to fetch public key: %w", err)
		}
		return key, nil

	default:
		return nil, fmt.Errorf("%w: unsupported signing algorithm %q", ErrInvalidToken, header.Alg)
	}
}

// stripBearerPrefix removes the "Bearer " prefix from a token string
func stripBearerPrefix(tokenString string) string {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	return strings.TrimSpace(tokenString)
}

// ParseJWTHeader extracts and parses the JWT header from a token string
func ParseJWTHeader(tokenString string) (*JWTHeader, error) {
	tokenString = stripBearerPrefix(tokenString)

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid JWT format: expected 3 parts, got %d", len(parts))
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT header: %w", err)
	}

	var header JWTHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("failed to parse JWT header: %w", err)
	}

	return &header, nil
}

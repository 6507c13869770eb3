package auth

import "errors"

// Decode results other than a username are one of these two sentinels (possibly
// wrapped with detail). Anything else returned by a verifier is an infrastructure
// failure, e.g. an unreachable JWKS endpoint.
var (
	// ErrInvalidToken indicates the token is malformed, badly signed or missing data
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token was valid but its exp claim has passed
	ErrExpiredToken = errors.New("token has expired")

	// ErrKeyNotFound indicates the token's kid is not present in the key set
	ErrKeyNotFound = errors.New("signing key not found")
)

package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for post operations. Handlers map each of these to exactly
// one HTTP status; collaborator errors are never returned as-is.
var (
	// ErrNotFound is returned when a post does not exist
	ErrNotFound = errors.New("post not found")

	// ErrLikeNotFound is returned when the caller has not liked the post
	ErrLikeNotFound = errors.New("like not found")

	// ErrNoFollows is returned when the caller follows nobody
	ErrNoFollows = errors.New("user does not follow anyone")

	// ErrForbidden is returned when the caller is not the post's author
	ErrForbidden = errors.New("not authorized to modify this post")

	// ErrAlreadyLiked is returned on a duplicate like
	ErrAlreadyLiked = errors.New("post already liked")

	// ErrUnauthorized is returned when no bearer credential was supplied
	ErrUnauthorized = errors.New("authentication required")

	// ErrInvalidToken is returned when the bearer credential cannot be decoded
	ErrInvalidToken = errors.New("invalid token: decoding error")

	// ErrExpiredToken is returned when the bearer credential has expired
	ErrExpiredToken = errors.New("invalid token: token has expired")

	// ErrUploadFailed is returned when the image could not be stored
	ErrUploadFailed = errors.New("image upload failed")

	// ErrFollowingUnavailable is returned when the follower service could not be queried
	ErrFollowingUnavailable = errors.New("following lookup failed")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error maps to a missing resource
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrLikeNotFound) ||
		errors.Is(err, ErrNoFollows)
}

// IsAuthError checks if error means the caller's identity could not be established
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken)
}

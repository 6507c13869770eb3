package likes

import "errors"

var (
	// ErrLikeNotFound indicates no like exists for the requested (post, user) pair
	ErrLikeNotFound = errors.New("like not found")

	// ErrPostNotFound indicates the liked post no longer exists (foreign key violation)
	ErrPostNotFound = errors.New("liked post not found")
)

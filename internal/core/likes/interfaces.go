package likes

import "context"

// Repository defines the data access interface for likes
type Repository interface {
	// Create atomically inserts a like for (postID, username), or returns the
	// existing one. created is true only for the call that actually inserted
	// the row, even under concurrent requests for the same pair.
	Create(ctx context.Context, postID int64, username string) (like *Like, created bool, err error)

	// ListByPost returns all likes on a post in insertion order
	ListByPost(ctx context.Context, postID int64) ([]*Like, error)

	// GetByPostAndUser returns ErrLikeNotFound if the user has not liked the post
	GetByPostAndUser(ctx context.Context, postID int64, username string) (*Like, error)

	// Delete removes a like. Returns ErrLikeNotFound if it is already gone.
	Delete(ctx context.Context, like *Like) error
}

package posts

import (
	"context"

	"Posts/internal/core/likes"
)

// Service defines the business logic interface for posts and their likes.
// Coordinates between Repository, likes.Repository, the token verifier,
// the image uploader and the following lookup.
//
// Every operation that needs an identity receives the raw bearer token and
// resolves the username itself. Existence is always checked before ownership.
type Service interface {
	// ListPosts returns the global feed, newest first
	ListPosts(ctx context.Context, page, limit int) ([]*Post, error)

	// ListPostsByUser returns one author's posts, newest first
	ListPostsByUser(ctx context.Context, username string, page, limit int) ([]*Post, error)

	// ListFollowingPosts returns posts by everyone the caller follows.
	// Returns ErrNoFollows when the caller follows nobody.
	ListFollowingPosts(ctx context.Context, token string, page, limit int) ([]*Post, error)

	// GetPost retrieves a single post
	GetPost(ctx context.Context, id int64) (*Post, error)

	// CreatePost authenticates the caller, uploads the optional image and stores the post
	// Flow: Validate -> Verify token -> Upload image -> Insert
	CreatePost(ctx context.Context, token string, req CreatePostRequest) (*Post, error)

	// UpdatePost applies a partial update on behalf of the post's author
	// Flow: Validate -> Verify token -> Fetch (404) -> Ownership (403) -> Upload image -> Update
	UpdatePost(ctx context.Context, token string, id int64, req UpdatePostRequest) (*Post, error)

	// DeletePost removes a post and, by cascade, its likes. Returns the deleted post.
	// Flow: Fetch (404) -> Verify token -> Ownership (403) -> Delete
	DeletePost(ctx context.Context, token string, id int64) (*Post, error)

	// GetLikes returns the like count and the likers of a post. No identity required.
	GetLikes(ctx context.Context, id int64) (*likes.Summary, error)

	// LikePost records the caller's like. Returns ErrAlreadyLiked on a duplicate.
	LikePost(ctx context.Context, token string, id int64) error

	// UnlikePost removes the caller's like. Returns ErrLikeNotFound if there is none.
	UnlikePost(ctx context.Context, token string, id int64) error
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post, setting ID and CreatedAt on success
	Create(ctx context.Context, post *Post) error

	// GetByID returns ErrNotFound if the post does not exist
	GetByID(ctx context.Context, id int64) (*Post, error)

	// List returns all posts ordered by creation time descending
	List(ctx context.Context, limit, offset int) ([]*Post, error)

	// ListByAuthor returns one author's posts ordered by creation time descending
	ListByAuthor(ctx context.Context, username string, limit, offset int) ([]*Post, error)

	// ListByAuthors returns posts whose author is in usernames, same ordering
	ListByAuthors(ctx context.Context, usernames []string, limit, offset int) ([]*Post, error)

	// Update sets text and/or imageURL (nil leaves the column untouched).
	// Returns a ValidationError when both are nil and ErrNotFound when the post is missing.
	Update(ctx context.Context, id int64, text, imageURL *string) (*Post, error)

	// Delete removes the post; the database cascades the delete to its likes.
	// Returns ErrNotFound when the post is missing.
	Delete(ctx context.Context, id int64) error
}

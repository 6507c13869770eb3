package posts

import (
	"time"

	"Posts/internal/core/images"
)

// Post represents a user-authored post in the database.
// CreatedAt is assigned by the store on insert and never changes afterwards.
type Post struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ImageURL  *string   `json:"imageurl" db:"imageurl"`
	Username  string    `json:"username" db:"username"`
	Text      string    `json:"text" db:"text"`
	ID        int64     `json:"id" db:"id"`
}

// CreatePostRequest represents input for creating a new post.
// The author is never part of the request: it is derived from the bearer token.
type CreatePostRequest struct {
	Image *images.Image
	Text  string
}

// UpdatePostRequest represents a partial update. At least one field must be set.
type UpdatePostRequest struct {
	Text  *string
	Image *images.Image
}

// Pagination limits for list endpoints
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// Offset converts a 1-based page and a page size into a row offset
func Offset(page, limit int) int {
	return (page - 1) * limit
}

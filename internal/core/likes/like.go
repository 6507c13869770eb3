package likes

import "time"

// Like represents a single user's endorsement of a post.
// At most one Like exists per (PostID, Username); the store enforces this with
// a unique constraint.
type Like struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Username  string    `json:"username" db:"username"`
	ID        int64     `json:"-" db:"id"`
	PostID    int64     `json:"-" db:"post_id"`
}

// Summary is the public view of a post's likes
type Summary struct {
	Likes     []*Like `json:"likes"`
	LikeCount int     `json:"like_count"`
}

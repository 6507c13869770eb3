package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"Posts/internal/core/likes"
)

// maxLikeCreateAttempts bounds the insert/read loop in Create. Another attempt
// is only needed when a conflicting like is deleted between our insert and read.
const maxLikeCreateAttempts = 3

type postgresLikeRepo struct {
	db *sqlx.DB
}

// NewLikeRepository creates a new PostgreSQL like repository
func NewLikeRepository(db *sqlx.DB) likes.Repository {
	return &postgresLikeRepo{db: db}
}

// Create inserts a like or returns the existing one.
// Atomicity comes from the unique_like_post_user constraint: of any number of
// concurrent inserts for the same pair exactly one gets a row back from
// RETURNING, every other one falls through to the read and reports created=false.
func (r *postgresLikeRepo) Create(ctx context.Context, postID int64, username string) (*likes.Like, bool, error) {
	query := `
		INSERT INTO likes (post_id, username)
		VALUES ($1, $2)
		ON CONFLICT (post_id, username) DO NOTHING
		RETURNING id, post_id, username, created_at
	`

	for attempt := 0; attempt < maxLikeCreateAttempts; attempt++ {
		var like likes.Like
		err := r.db.GetContext(ctx, &like, query, postID, username)
		if err == nil {
			return &like, true, nil
		}

		if !errors.Is(err, sql.ErrNoRows) {
			if isForeignKeyViolation(err) {
				return nil, false, likes.ErrPostNotFound
			}
			// ON CONFLICT covers this constraint, kept for a renamed/duplicated one
			if isUniqueViolation(err) {
				continue
			}
			return nil, false, fmt.Errorf("failed to insert like: %w", err)
		}

		// ON CONFLICT DO NOTHING returns no rows when the like already exists
		existing, err := r.GetByPostAndUser(ctx, postID, username)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, likes.ErrLikeNotFound) {
			return nil, false, err
		}
	}

	return nil, false, fmt.Errorf("failed to insert like: row for post %d kept changing under concurrent writes", postID)
}

// ListByPost returns a post's likes in the order they were created
func (r *postgresLikeRepo) ListByPost(ctx context.Context, postID int64) ([]*likes.Like, error) {
	query := `
		SELECT id, post_id, username, created_at
		FROM likes
		WHERE post_id = $1
		ORDER BY id ASC
	`

	result := []*likes.Like{}
	if err := r.db.SelectContext(ctx, &result, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	return result, nil
}

// GetByPostAndUser retrieves a user's like on a post
func (r *postgresLikeRepo) GetByPostAndUser(ctx context.Context, postID int64, username string) (*likes.Like, error) {
	query := `
		SELECT id, post_id, username, created_at
		FROM likes
		WHERE post_id = $1 AND username = $2
	`

	var like likes.Like
	if err := r.db.GetContext(ctx, &like, query, postID, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, likes.ErrLikeNotFound
		}
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	return &like, nil
}

// Delete removes a like by ID
func (r *postgresLikeRepo) Delete(ctx context.Context, like *likes.Like) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE id = $1`, like.ID)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return likes.ErrLikeNotFound
	}
	return nil
}

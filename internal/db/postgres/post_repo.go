package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"Posts/internal/core/posts"
)

const postColumns = `id, username, text, imageurl, created_at`

type postgresPostRepo struct {
	db *sqlx.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sqlx.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post into the posts table.
// ID and CreatedAt are assigned by the database and written back into post.
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	if strings.TrimSpace(post.Username) == "" {
		return posts.NewValidationError("username", "author is required")
	}
	if strings.TrimSpace(post.Text) == "" {
		return posts.NewValidationError("text", "text is required")
	}

	query := `
		INSERT INTO posts (username, text, imageurl)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, post.Username, post.Text, post.ImageURL).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return posts.NewValidationError("post", "post violates a table constraint")
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetByID retrieves a post by its ID
func (r *postgresPostRepo) GetByID(ctx context.Context, id int64) (*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	var post posts.Post
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, posts.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// List returns one page of all posts, newest first
func (r *postgresPostRepo) List(ctx context.Context, limit, offset int) ([]*posts.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	return r.selectPosts(ctx, query, limit, offset)
}

// ListByAuthor returns one page of a single author's posts, newest first
func (r *postgresPostRepo) ListByAuthor(ctx context.Context, username string, limit, offset int) ([]*posts.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE username = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	return r.selectPosts(ctx, query, username, limit, offset)
}

// ListByAuthors returns one page of posts written by any of usernames, newest first
func (r *postgresPostRepo) ListByAuthors(ctx context.Context, usernames []string, limit, offset int) ([]*posts.Post, error) {
	if len(usernames) == 0 {
		return []*posts.Post{}, nil
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE username = ANY($1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	return r.selectPosts(ctx, query, pq.Array(usernames), limit, offset)
}

// Update applies a partial update in a single statement; nil arguments keep
// the current column value.
func (r *postgresPostRepo) Update(ctx context.Context, id int64, text, imageURL *string) (*posts.Post, error) {
	if text == nil && imageURL == nil {
		return nil, posts.NewValidationError("text", "at least one of text or image must be provided")
	}
	if text != nil && strings.TrimSpace(*text) == "" {
		return nil, posts.NewValidationError("text", "text cannot be empty")
	}

	query := `
		UPDATE posts
		SET text = COALESCE($2, text),
		    imageurl = COALESCE($3, imageurl)
		WHERE id = $1
		RETURNING ` + postColumns

	var post posts.Post
	if err := r.db.GetContext(ctx, &post, query, id, text, imageURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, posts.ErrNotFound
		}
		if isCheckViolation(err) {
			return nil, posts.NewValidationError("post", "post violates a table constraint")
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return &post, nil
}

// Delete removes a post. Its likes are removed by ON DELETE CASCADE in the
// same statement, so no reader ever sees likes for a deleted post.
func (r *postgresPostRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

func (r *postgresPostRepo) selectPosts(ctx context.Context, query string, args ...interface{}) ([]*posts.Post, error) {
	result := []*posts.Post{}
	if err := r.db.SelectContext(ctx, &result, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return result, nil
}

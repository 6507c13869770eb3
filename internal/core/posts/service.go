package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/rivo/uniseg"

	"Posts/internal/auth"
	"Posts/internal/core/following"
	"Posts/internal/core/images"
	"Posts/internal/core/likes"
)

const (
	// maxTextGraphemes is the post text limit in user-perceived characters
	maxTextGraphemes = 255

	defaultUploadTimeout    = 15 * time.Second
	defaultFollowingTimeout = 5 * time.Second
)

// ServiceConfig bounds the blocking collaborator calls made by the service
type ServiceConfig struct {
	UploadTimeout    time.Duration
	FollowingTimeout time.Duration
}

type postService struct {
	repo      Repository
	likeRepo  likes.Repository
	verifier  auth.TokenVerifier
	uploader  images.Service
	following following.Lookup
	logger    *slog.Logger
	cfg       ServiceConfig
}

// NewPostService creates a new post service.
// uploader and followingLookup can be nil (e.g., in tests or minimal setups); the
// operations that need them then fail with ErrUploadFailed / ErrFollowingUnavailable.
func NewPostService(
	repo Repository,
	likeRepo likes.Repository,
	verifier auth.TokenVerifier,
	uploader images.Service, // Optional: can be nil
	followingLookup following.Lookup, // Optional: can be nil
	cfg ServiceConfig,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = defaultUploadTimeout
	}
	if cfg.FollowingTimeout <= 0 {
		cfg.FollowingTimeout = defaultFollowingTimeout
	}
	return &postService{
		repo:      repo,
		likeRepo:  likeRepo,
		verifier:  verifier,
		uploader:  uploader,
		following: followingLookup,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *postService) ListPosts(ctx context.Context, page, limit int) ([]*Post, error) {
	if err := validatePagination(page, limit); err != nil {
		return nil, err
	}

	result, err := s.repo.List(ctx, limit, Offset(page, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return result, nil
}

func (s *postService) ListPostsByUser(ctx context.Context, username string, page, limit int) ([]*Post, error) {
	if err := validatePagination(page, limit); err != nil {
		return nil, err
	}
	if strings.TrimSpace(username) == "" {
		return nil, NewValidationError("username", "username is required")
	}

	result, err := s.repo.ListByAuthor(ctx, username, limit, Offset(page, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by author: %w", err)
	}
	return result, nil
}

func (s *postService) ListFollowingPosts(ctx context.Context, token string, page, limit int) ([]*Post, error) {
	if err := validatePagination(page, limit); err != nil {
		return nil, err
	}

	username, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	followed, err := s.lookupFollowing(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(followed) == 0 {
		return nil, ErrNoFollows
	}

	result, err := s.repo.ListByAuthors(ctx, followed, limit, Offset(page, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by followed authors: %w", err)
	}
	return result, nil
}

func (s *postService) GetPost(ctx context.Context, id int64) (*Post, error) {
	return s.fetchPost(ctx, id)
}

func (s *postService) CreatePost(ctx context.Context, token string, req CreatePostRequest) (*Post, error) {
	// 1. Validate input before doing any network work
	if err := validateText(req.Text); err != nil {
		return nil, err
	}

	// 2. SECURITY: the author is always the verified token subject
	username, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	// 3. Upload the image, if any
	post := &Post{
		Username: username,
		Text:     req.Text,
	}
	if req.Image != nil {
		imageURL, err := s.uploadImage(ctx, username, *req.Image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = &imageURL
	}

	// 4. Persist
	if err := s.repo.Create(ctx, post); err != nil {
		s.logOrphanedImage(post.ImageURL, err)
		if IsValidationError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created",
		"post_id", post.ID,
		"username", username,
		"has_image", post.ImageURL != nil)

	return post, nil
}

func (s *postService) UpdatePost(ctx context.Context, token string, id int64, req UpdatePostRequest) (*Post, error) {
	if req.Text == nil && req.Image == nil {
		return nil, NewValidationError("text", "at least one of text or image must be provided")
	}
	if req.Text != nil {
		if err := validateText(*req.Text); err != nil {
			return nil, err
		}
	}

	username, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	post, err := s.fetchPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.Username != username {
		s.logger.Warn("post update rejected: caller is not the author",
			"post_id", id,
			"author", post.Username,
			"caller", username)
		return nil, ErrForbidden
	}

	var imageURL *string
	if req.Image != nil {
		uploaded, err := s.uploadImage(ctx, username, *req.Image)
		if err != nil {
			return nil, err
		}
		imageURL = &uploaded
	}

	updated, err := s.repo.Update(ctx, id, req.Text, imageURL)
	if err != nil {
		s.logOrphanedImage(imageURL, err)
		// The post may have been deleted between the fetch and the update
		if errors.Is(err, ErrNotFound) || IsValidationError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return updated, nil
}

func (s *postService) DeletePost(ctx context.Context, token string, id int64) (*Post, error) {
	// Existence first: a missing post is 404 even for anonymous callers
	post, err := s.fetchPost(ctx, id)
	if err != nil {
		return nil, err
	}

	username, err := s.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	if post.Username != username {
		s.logger.Warn("post delete rejected: caller is not the author",
			"post_id", id,
			"author", post.Username,
			"caller", username)
		return nil, ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", "post_id", id, "username", username)
	return post, nil
}

func (s *postService) GetLikes(ctx context.Context, id int64) (*likes.Summary, error) {
	if _, err := s.fetchPost(ctx, id); err != nil {
		return nil, err
	}

	// Count and detail come from one read so they always agree
	list, err := s.likeRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	if list == nil {
		list = []*likes.Like{}
	}

	return &likes.Summary{
		LikeCount: len(list),
		Likes:     list,
	}, nil
}

func (s *postService) LikePost(ctx context.Context, token string, id int64) error {
	username, err := s.authenticate(ctx, token)
	if err != nil {
		return err
	}

	if _, err := s.fetchPost(ctx, id); err != nil {
		return err
	}

	_, created, err := s.likeRepo.Create(ctx, id, username)
	if err != nil {
		if errors.Is(err, likes.ErrPostNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	if !created {
		return ErrAlreadyLiked
	}

	return nil
}

func (s *postService) UnlikePost(ctx context.Context, token string, id int64) error {
	username, err := s.authenticate(ctx, token)
	if err != nil {
		return err
	}

	if _, err := s.fetchPost(ctx, id); err != nil {
		return err
	}

	like, err := s.likeRepo.GetByPostAndUser(ctx, id, username)
	if err != nil {
		if errors.Is(err, likes.ErrLikeNotFound) {
			return ErrLikeNotFound
		}
		return fmt.Errorf("failed to get like: %w", err)
	}

	if err := s.likeRepo.Delete(ctx, like); err != nil {
		if errors.Is(err, likes.ErrLikeNotFound) {
			return ErrLikeNotFound
		}
		return fmt.Errorf("failed to delete like: %w", err)
	}

	return nil
}

// fetchPost maps the store's not-found to ErrNotFound and wraps everything else
func (s *postService) fetchPost(ctx context.Context, id int64) (*Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// authenticate resolves the caller's username from the bearer token.
// Verifier errors are remapped onto this package's taxonomy.
func (s *postService) authenticate(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrUnauthorized
	}
	if s.verifier == nil {
		return "", ErrUnauthorized
	}

	username, err := s.verifier.Decode(ctx, token)
	switch {
	case err == nil:
		return username, nil
	case errors.Is(err, auth.ErrExpiredToken):
		return "", ErrExpiredToken
	case errors.Is(err, auth.ErrInvalidToken):
		s.logger.Debug("token rejected", "error", err)
		return "", ErrInvalidToken
	default:
		s.logger.Error("token verification failed", "error", err)
		return "", fmt.Errorf("token verification unavailable")
	}
}

// uploadImage stores the image with a bounded timeout
func (s *postService) uploadImage(ctx context.Context, username string, img images.Image) (string, error) {
	if s.uploader == nil {
		s.logger.Error("image upload requested but no uploader is configured")
		return "", ErrUploadFailed
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
	defer cancel()

	url, err := s.uploader.Upload(uploadCtx, img)
	if err != nil {
		// Bad payloads are the client's fault; everything else is ours
		if images.IsInvalidImage(err) {
			return "", NewValidationError("image", err.Error())
		}
		s.logger.Error("image upload failed",
			"username", username,
			"filename", img.Filename,
			"error", err)
		return "", ErrUploadFailed
	}

	return url, nil
}

// logOrphanedImage records an uploaded image that no post references because
// the write that would have referenced it failed
func (s *postService) logOrphanedImage(imageURL *string, cause error) {
	if imageURL == nil {
		return
	}
	s.logger.Warn("uploaded image is orphaned",
		"image_url", *imageURL,
		"error", cause)
}

// lookupFollowing queries the follower service with a bounded timeout
func (s *postService) lookupFollowing(ctx context.Context, username string) ([]string, error) {
	if s.following == nil {
		s.logger.Error("following lookup requested but no client is configured")
		return nil, ErrFollowingUnavailable
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.FollowingTimeout)
	defer cancel()

	followed, err := s.following.GetFollowing(lookupCtx, username)
	if err != nil {
		s.logger.Error("following lookup failed", "username", username, "error", err)
		return nil, ErrFollowingUnavailable
	}
	return followed, nil
}

// validatePagination requires page > 0 and 1 <= limit <= MaxLimit
func validatePagination(page, limit int) error {
	if page <= 0 {
		return NewValidationError("page", "page must be greater than 0")
	}
	if limit <= 0 || limit > MaxLimit {
		return NewValidationError("limit", fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}
	// (page-1)*limit must fit in an int
	if page-1 > math.MaxInt/limit {
		return NewValidationError("page", "page is too large")
	}
	return nil
}

// validateText requires non-blank text of at most maxTextGraphemes grapheme clusters
func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return NewValidationError("text", "text is required")
	}
	if uniseg.GraphemeClusterCount(text) > maxTextGraphemes {
		return NewValidationError("text",
			fmt.Sprintf("text too long (max %d characters)", maxTextGraphemes))
	}
	return nil
}

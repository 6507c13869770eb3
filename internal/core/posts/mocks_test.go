package posts

import (
	"context"

	"github.com/stretchr/testify/mock"

	"Posts/internal/core/images"
	"Posts/internal/core/likes"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, post *Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, limit, offset int) ([]*Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

func (m *MockRepository) ListByAuthor(ctx context.Context, username string, limit, offset int) ([]*Post, error) {
	args := m.Called(ctx, username, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

func (m *MockRepository) ListByAuthors(ctx context.Context, usernames []string, limit, offset int) ([]*Post, error) {
	args := m.Called(ctx, usernames, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int64, text, imageURL *string) (*Post, error) {
	args := m.Called(ctx, id, text, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockLikeRepository is a mock implementation of likes.Repository
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Create(ctx context.Context, postID int64, username string) (*likes.Like, bool, error) {
	args := m.Called(ctx, postID, username)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*likes.Like), args.Bool(1), args.Error(2)
}

func (m *MockLikeRepository) ListByPost(ctx context.Context, postID int64) ([]*likes.Like, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*likes.Like), args.Error(1)
}

func (m *MockLikeRepository) GetByPostAndUser(ctx context.Context, postID int64, username string) (*likes.Like, error) {
	args := m.Called(ctx, postID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*likes.Like), args.Error(1)
}

func (m *MockLikeRepository) Delete(ctx context.Context, like *likes.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

// MockVerifier is a mock implementation of auth.TokenVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Decode(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// MockUploader is a mock implementation of images.Service
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, img images.Image) (string, error) {
	args := m.Called(ctx, img)
	return args.String(0), args.Error(1)
}

// MockFollowing is a mock implementation of following.Lookup
type MockFollowing struct {
	mock.Mock
}

func (m *MockFollowing) GetFollowing(ctx context.Context, username string) ([]string, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

package post

import (
	"context"

	"github.com/stretchr/testify/mock"

	"Posts/internal/core/likes"
	"Posts/internal/core/posts"
)

// MockService is a mock implementation of posts.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListPosts(ctx context.Context, page, limit int) ([]*posts.Post, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*posts.Post), args.Error(1)
}

func (m *MockService) ListPostsByUser(ctx context.Context, username string, page, limit int) ([]*posts.Post, error) {
	args := m.Called(ctx, username, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*posts.Post), args.Error(1)
}

func (m *MockService) ListFollowingPosts(ctx context.Context, token string, page, limit int) ([]*posts.Post, error) {
	args := m.Called(ctx, token, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*posts.Post), args.Error(1)
}

func (m *MockService) GetPost(ctx context.Context, id int64) (*posts.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func (m *MockService) CreatePost(ctx context.Context, token string, req posts.CreatePostRequest) (*posts.Post, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func (m *MockService) UpdatePost(ctx context.Context, token string, id int64, req posts.UpdatePostRequest) (*posts.Post, error) {
	args := m.Called(ctx, token, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func (m *MockService) DeletePost(ctx context.Context, token string, id int64) (*posts.Post, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*posts.Post), args.Error(1)
}

func (m *MockService) GetLikes(ctx context.Context, id int64) (*likes.Summary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*likes.Summary), args.Error(1)
}

func (m *MockService) LikePost(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockService) UnlikePost(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

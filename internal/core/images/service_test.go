package images

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Put(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, objectName, contentType, data)
	return args.String(0), args.Error(1)
}

var objectNamePattern = regexp.MustCompile(`^[0-9a-f-]{36}-cat\.png$`)

func TestUploadService_Upload(t *testing.T) {
	ctx := context.Background()
	pngData := encodeTestImage(t, imaging.PNG)

	t.Run("stores validated image under a unique name", func(t *testing.T) {
		store := new(MockStore)
		store.On("Put", ctx, mock.MatchedBy(objectNamePattern.MatchString), "image/png", pngData).
			Return("https://img.example/cat.png", nil)

		url, err := NewUploadService(store, nil).Upload(ctx, Image{
			Filename:    "cat.png",
			ContentType: "image/png",
			Data:        pngData,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://img.example/cat.png", url)
		store.AssertExpectations(t)
	})

	t.Run("invalid payload never reaches the store", func(t *testing.T) {
		store := new(MockStore)

		_, err := NewUploadService(store, nil).Upload(ctx, Image{Filename: "cat.png", Data: []byte("nope")})
		assert.True(t, IsInvalidImage(err))
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure is not an invalid image", func(t *testing.T) {
		store := new(MockStore)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("bucket unavailable"))

		_, err := NewUploadService(store, nil).Upload(ctx, Image{Filename: "cat.png", Data: pngData})
		assert.ErrorIs(t, err, ErrStorageFailed)
		assert.False(t, IsInvalidImage(err))
	})
}

func TestObjectName(t *testing.T) {
	a := ObjectName("cat.png", "png")
	b := ObjectName("cat.png", "png")
	assert.NotEqual(t, a, b)
	assert.Regexp(t, objectNamePattern, a)

	assert.Regexp(t, `^[0-9a-f-]{36}\.jpg$`, ObjectName("", "jpeg"))
}

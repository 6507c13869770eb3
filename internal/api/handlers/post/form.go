package post

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"Posts/internal/core/images"
)

const (
	// maxFormSize leaves room for the text fields and multipart framing
	maxFormSize = images.MaxImageSize + 1<<20

	// maxFormMemory is held in memory; larger parts spill to temp files
	maxFormMemory = 8 << 20
)

var errRequestTooLarge = errors.New("request body too large")

// postForm is the decoded multipart (or urlencoded) body of create/update
type postForm struct {
	Text  *string
	Image *images.Image
}

// parsePostForm reads the optional "text" field and "image" file part
func parsePostForm(w http.ResponseWriter, r *http.Request) (*postForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)

	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, errRequestTooLarge
		}
		return nil, fmt.Errorf("invalid form body: %w", err)
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	form := &postForm{}
	if values, ok := r.PostForm["text"]; ok && len(values) > 0 {
		text := values[0]
		form.Text = &text
	}

	img, err := readImagePart(r)
	if err != nil {
		return nil, err
	}
	form.Image = img

	return form, nil
}

// readImagePart returns nil when no "image" part (or an empty one) was sent
func readImagePart(r *http.Request) (*images.Image, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid image part: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, images.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 && header.Filename == "" {
		return nil, nil
	}

	return &images.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

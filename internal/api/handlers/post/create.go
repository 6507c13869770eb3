package post

import (
	"errors"
	"log"
	"net/http"

	"Posts/internal/api/middleware"
	"Posts/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /api/v1/posts
// Multipart form: text (required), image (optional file)
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	form, err := parsePostForm(w, r)
	if err != nil {
		writeFormError(w, err)
		return
	}

	req := posts.CreatePostRequest{Image: form.Image}
	if form.Text != nil {
		req.Text = *form.Text
	}

	// SECURITY: the author comes from the bearer token, never from the form
	post, err := h.service.CreatePost(r.Context(), middleware.GetBearerToken(r), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	log.Printf("[POST-CREATE] id=%d username=%s", post.ID, post.Username)
	writeJSON(w, http.StatusCreated, post)
}

// writeFormError reports a body that could not be decoded
func writeFormError(w http.ResponseWriter, err error) {
	if errors.Is(err, errRequestTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
			"Request body too large (max 7MB)")
		return
	}
	writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
}

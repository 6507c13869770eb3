package post

import (
	"net/http"

	"Posts/internal/api/middleware"
	"Posts/internal/core/posts"
)

// UpdateHandler handles partial post updates
type UpdateHandler struct {
	service posts.Service
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service posts.Service) *UpdateHandler {
	return &UpdateHandler{
		service: service,
	}
}

// HandleUpdate handles PUT /api/v1/posts/{id}
// Multipart form: text and/or image; at least one is required
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	form, err := parsePostForm(w, r)
	if err != nil {
		writeFormError(w, err)
		return
	}

	post, err := h.service.UpdatePost(r.Context(), middleware.GetBearerToken(r), id, posts.UpdatePostRequest{
		Text:  form.Text,
		Image: form.Image,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

package post

import (
	"log"
	"net/http"

	"Posts/internal/api/middleware"
	"Posts/internal/core/posts"
)

// DeleteHandler handles post deletion
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /api/v1/posts/{id}
// Responds with the deleted post
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	post, err := h.service.DeletePost(r.Context(), middleware.GetBearerToken(r), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	log.Printf("[POST-DELETE] id=%d username=%s", post.ID, post.Username)
	writeJSON(w, http.StatusOK, post)
}

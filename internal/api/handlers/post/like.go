package post

import (
	"net/http"

	"Posts/internal/api/middleware"
	"Posts/internal/core/posts"
)

// LikeHandler serves /api/v1/posts/{id}/like
type LikeHandler struct {
	service posts.Service
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service posts.Service) *LikeHandler {
	return &LikeHandler{
		service: service,
	}
}

// HandleGetLikes handles GET /api/v1/posts/{id}/like
// Response: {"like_count": n, "likes": [{"username", "created_at"}]}
func (h *LikeHandler) HandleGetLikes(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	summary, err := h.service.GetLikes(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleLike handles POST /api/v1/posts/{id}/like
// A repeated like is a 409, not a no-op
func (h *LikeHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	if err := h.service.LikePost(r.Context(), middleware.GetBearerToken(r), id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "Liked")
}

// HandleUnlike handles DELETE /api/v1/posts/{id}/like
func (h *LikeHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	id, err := parsePostID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	if err := h.service.UnlikePost(r.Context(), middleware.GetBearerToken(r), id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "Disliked")
}

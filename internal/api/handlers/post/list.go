package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Posts/internal/api/middleware"
	"Posts/internal/core/posts"
)

// ListHandler serves the paginated feeds
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// HandleList handles GET /api/v1/posts?page=&limit=
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	result, err := h.service.ListPosts(r.Context(), page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleListByUser handles GET /api/v1/posts/user/{username}?page=&limit=
func (h *ListHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	result, err := h.service.ListPostsByUser(r.Context(), chi.URLParam(r, "username"), page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleListFollowing handles GET /api/v1/posts/following/all?page=&limit=
// Returns posts by everyone the caller follows
func (h *ListHandler) HandleListFollowing(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	result, err := h.service.ListFollowingPosts(r.Context(), middleware.GetBearerToken(r), page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

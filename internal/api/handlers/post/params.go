package post

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Posts/internal/core/posts"
)

// parsePostID reads the {id} URL parameter
func parsePostID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", raw)
	}
	return id, nil
}

// parsePagination reads ?page= and ?limit=, applying defaults for absent values.
// Range checks are left to the service.
func parsePagination(r *http.Request) (page, limit int, err error) {
	page, err = queryInt(r, "page", posts.DefaultPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err = queryInt(r, "limit", posts.DefaultLimit)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

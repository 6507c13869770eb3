package routes

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"Posts/internal/core/images"
)

const indexGreeting = "Hello World, go to /api/v1/posts to browse posts"

// RegisterWebRoutes registers the index page and, when uploadDir is set, the
// static route for images written by the local storage backend.
func RegisterWebRoutes(r chi.Router, uploadDir string) {
	// Landing page
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(indexGreeting))
	})

	if uploadDir == "" {
		return
	}

	// Uploaded images (local storage backend only)
	fs := http.StripPrefix(images.UploadsPath, http.FileServer(noDirListing{http.Dir(uploadDir)}))
	r.Get(images.UploadsPath+"*", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	})
}

// noDirListing hides directory indexes from http.FileServer
type noDirListing struct {
	fs http.FileSystem
}

func (n noDirListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}

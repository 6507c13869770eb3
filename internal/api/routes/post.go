package routes

import (
	"github.com/go-chi/chi/v5"

	"Posts/internal/api/handlers/post"
	"Posts/internal/api/middleware"
	"Posts/internal/core/posts"
)

// RegisterPostRoutes registers the post and like endpoints under /api/v1/posts.
// Every route runs through BearerToken; whether a credential is required is
// decided by the service so existence checks can come first.
func RegisterPostRoutes(r chi.Router, service posts.Service) {
	// Initialize handlers
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	createHandler := post.NewCreateHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	likeHandler := post.NewLikeHandler(service)

	r.Route("/api/v1/posts", func(r chi.Router) {
		r.Use(middleware.BearerToken)

		// Feeds
		r.Get("/", listHandler.HandleList)
		r.Get("/user/{username}", listHandler.HandleListByUser)
		r.Get("/following/all", listHandler.HandleListFollowing)

		// Posts
		r.Post("/", createHandler.HandleCreate)
		r.Get("/{id}", getHandler.HandleGet)
		r.Put("/{id}", updateHandler.HandleUpdate)
		r.Delete("/{id}", deleteHandler.HandleDelete)

		// Likes
		r.Get("/{id}/like", likeHandler.HandleGetLikes)
		r.Post("/{id}/like", likeHandler.HandleLike)
		r.Delete("/{id}/like", likeHandler.HandleUnlike)
	})
}

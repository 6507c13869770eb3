package post

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Posts/internal/core/posts"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

// writeJSON writes a successful JSON response
func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Log encoding errors but don't return error response (headers already sent)
		log.Printf("Failed to encode response: %v", err)
	}
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case posts.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case errors.Is(err, posts.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "AuthenticationRequired",
			"Authentication required")

	case errors.Is(err, posts.ErrExpiredToken):
		writeError(w, http.StatusUnauthorized, "ExpiredToken",
			"Invalid token: Token has expired")

	case errors.Is(err, posts.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "InvalidToken",
			"Invalid token: decoding error")

	case errors.Is(err, posts.ErrForbidden):
		writeError(w, http.StatusForbidden, "NotAuthorized",
			"You are not the author of this post")

	case errors.Is(err, posts.ErrNotFound):
		writeError(w, http.StatusNotFound, "PostNotFound", "Post not found")

	case errors.Is(err, posts.ErrLikeNotFound):
		writeError(w, http.StatusNotFound, "LikeNotFound", "Like not found")

	case errors.Is(err, posts.ErrNoFollows):
		writeError(w, http.StatusNotFound, "NoFollows", "You are not following anyone")

	case errors.Is(err, posts.ErrAlreadyLiked):
		writeError(w, http.StatusConflict, "AlreadyLiked", "Post already liked")

	case errors.Is(err, posts.ErrUploadFailed):
		writeError(w, http.StatusInternalServerError, "UploadFailed",
			"Image upload failed")

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in post handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}

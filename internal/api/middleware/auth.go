package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
)

// Context keys for storing request-scoped credentials
type contextKey string

const (
	BearerTokenKey contextKey = "bearer_token"
)

// BearerToken moves the Authorization bearer credential into the request
// context. It never rejects a request: a missing or malformed header simply
// leaves no token, and the post service decides whether identity is needed and
// in which order it is checked (e.g. a missing post is 404 before 401).
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := parseBearer(authHeader)
		if !ok {
			log.Printf("[AUTH_FAILURE] type=malformed_header ip=%s method=%s path=%s",
				r.RemoteAddr, r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), BearerTokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetBearerToken extracts the bearer token from the request context
// Returns empty string if the request carried no usable credential
func GetBearerToken(r *http.Request) string {
	token, _ := r.Context().Value(BearerTokenKey).(string)
	return token
}

// parseBearer accepts "Bearer <token>" with a case-insensitive scheme
func parseBearer(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

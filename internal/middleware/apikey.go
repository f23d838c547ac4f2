package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/pushrelay/api/internal/model"
)

// APIKey returns a middleware that requires a matching X-API-Key header.
// An empty key disables the check entirely, leaving the route open; this
// matches deployments that protect the endpoint at the network edge
// instead.
func APIKey(key string) Middleware {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				WriteUnauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteUnauthorized writes the API key rejection response
func WriteUnauthorized(w http.ResponseWriter) {
	model.NewUnauthorizedError("invalid or missing API key").WriteJSON(w)
}

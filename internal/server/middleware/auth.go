package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/foliohq/folio/internal/auth"
)

// Auth requires a valid bearer token and injects the acting username into
// the request context.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := extractBearer(r); tok != "" {
				claims, err := auth.ValidateToken(jwtSecret, tok)
				if err == nil && claims.Username != "" {
					ctx := context.WithValue(r.Context(), ContextKeyUsername, claims.Username)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
		})
	}
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return h[7:]
	}
	return ""
}

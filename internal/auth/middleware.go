package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dayhub/dayhub-server/internal/api/respond"
)

type contextKey struct{}

// UserFromContext returns the authenticated user ID, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok
}

// Middleware authenticates the Bearer token and stores the resolved user
// ID in the request context. Missing or invalid keys yield 401.
func Middleware(az Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := bearerToken(r.Header.Get("Authorization"))
			info, err := az.Authorize(r.Context(), key)
			if err != nil {
				respond.WriteError(w, http.StatusUnauthorized, "invalid or missing API key")
				return
			}
			ctx := context.WithValue(r.Context(), contextKey{}, info.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/campusportal/backend/internal/models"
	pkghttp "github.com/campusportal/backend/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// ClaimsContextKey is the key for storing decoded token claims in context
	ClaimsContextKey contextKey = "claims"
)

// Middleware validates the bearer token and injects the decoded claims into
// the request context. A request without a token is rejected distinctly from
// one with a bad or expired token.
func Middleware(tm *TokenManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tm.ValidateToken(BearerToken(r))
			if err != nil {
				if errors.Is(err, models.ErrMissingToken) {
					pkghttp.WriteUnauthorized(w, "Token required")
					return
				}
				pkghttp.WriteForbidden(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on the token's userType. The decision is made
// from claims alone; handlers that need fresh isActive or profile data
// re-fetch the user themselves.
func RequireRole(roles ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				pkghttp.WriteUnauthorized(w, "Token required")
				return
			}

			if err := Authorize(claims, roles...); err != nil {
				pkghttp.WriteForbidden(w, "Access denied. Insufficient permissions.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from the Authorization header, or returns
// "" when no bearer token is presented.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// ClaimsFromContext extracts decoded token claims from a request context.
func ClaimsFromContext(ctx context.Context) *models.TokenClaims {
	claims, ok := ctx.Value(ClaimsContextKey).(*models.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mheijden/portfolio-tracker/internal/api/response"
	"github.com/mheijden/portfolio-tracker/internal/auth"
)

type contextKey string

const principalKey contextKey = "principal"

// RequireAuth resolves the bearer token from the Authorization header and
// stores the authenticated principal in the request context. Requests
// without a valid token are rejected with 401.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.RespondError(w, http.StatusUnauthorized, "authentication required", "Missing Authorization header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				response.RespondError(w, http.StatusUnauthorized, "authentication required", "Authorization header must use the Bearer scheme")
				return
			}

			principal, err := tokens.Verify(token)
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, "authentication required", "Token is invalid or expired")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the principal stored by RequireAuth.
// The second return value is false for requests that skipped the middleware.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(auth.Principal)
	return principal, ok
}

// WithPrincipal returns a context carrying the given principal. Intended for
// tests that call handlers without running the middleware.
func WithPrincipal(ctx context.Context, principal auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

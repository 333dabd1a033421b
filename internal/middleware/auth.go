package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cmulenga/internhub-be/internal/auth"
	"github.com/cmulenga/internhub-be/internal/http/respond"
	"github.com/cmulenga/internhub-be/internal/models"
)

type contextKey struct{}

var claimsKey = contextKey{}

// ClaimsFromContext returns the verified token claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// RequireAuth verifies the bearer token and attaches its claims to the
// request context. A missing token is 401, a bad or expired one 403. The
// check is stateless: signature and time bounds only.
func RequireAuth(tokens *auth.TokenManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respond.Error(w, http.StatusUnauthorized, "authentication token required")
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			respond.Error(w, http.StatusForbidden, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// RequireRole rejects authenticated requests whose user type is not in the
// allowed set. Must run inside RequireAuth.
func RequireRole(next http.Handler, allowed ...models.UserType) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "authentication token required")
			return
		}
		for _, userType := range allowed {
			if claims.UserType == userType {
				next.ServeHTTP(w, r)
				return
			}
		}
		respond.Error(w, http.StatusForbidden, "insufficient permissions")
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/paycal/backend/internal/auth"
	"github.com/paycal/backend/internal/pkg/errors"
	"github.com/paycal/backend/internal/pkg/utils"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// PrincipalKey is the context key for the authenticated caller
	PrincipalKey ContextKey = "principal"
)

// bearerToken returns the credential from the Authorization header
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

// AuthMiddleware rejects requests without a bearer token (401) or with
// an invalid or expired one (403).
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			claims, err := auth.ParseClaims(tokenStr, jwtSecret)
			if err != nil {
				utils.WriteError(w, errors.Forbidden("Invalid or expired token"))
				return
			}

			p := claims.Principal()
			AddLogField(w, "user_id", p.ID)

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// WithPrincipal stores the caller in ctx
func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// GetPrincipal extracts the caller from the request context
func GetPrincipal(r *http.Request) (auth.Principal, bool) {
	p, ok := r.Context().Value(PrincipalKey).(auth.Principal)
	return p, ok
}

// GetUserID extracts the caller's user ID from the request context
func GetUserID(r *http.Request) (int64, bool) {
	p, ok := GetPrincipal(r)
	return p.ID, ok
}

package auth

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/levaetras/internal/settings"
)

type ctxKey struct{}

// Middleware rejects requests without a valid bearer token and stores the
// claims in the request context.
func Middleware(tokens *Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*Claims)
	return claims, ok
}

// ClientScope returns the client a caller is restricted to. Staff callers are
// not restricted.
func ClientScope(ctx context.Context) (string, bool) {
	claims, ok := FromContext(ctx)
	if !ok || claims.Role != settings.UserClient {
		return "", false
	}

	return claims.ClientID, true
}

// CourierScope returns the courier a caller is restricted to. Courier tokens
// carry the courier id as their user id.
func CourierScope(ctx context.Context) (string, bool) {
	claims, ok := FromContext(ctx)
	if !ok || claims.Role != settings.UserCourier {
		return "", false
	}

	return claims.UserID, true
}

func RequireRole(roles ...settings.UserKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := FromContext(r.Context())
			if !ok || !slices.Contains(roles, claims.Role) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

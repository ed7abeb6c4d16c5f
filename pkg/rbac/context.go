package rbac

import (
	"context"
	"net/http"
	"strings"
)

type roleCtxKey struct{}

// WithRole stores the caller's role in ctx.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleCtxKey{}, role)
}

// RoleFromContext returns the role stored by WithRole.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleCtxKey{}).(string)
	return role, ok && role != ""
}

// RoleExtractor finds the caller's role in a request.
type RoleExtractor func(r *http.Request) (string, bool)

// HeaderExtractor reads the role from header.
func HeaderExtractor(header string) RoleExtractor {
	return func(r *http.Request) (string, bool) {
		role := strings.TrimSpace(r.Header.Get(header))
		return role, role != ""
	}
}

// Middleware stores the extracted role in the request context. Requests
// without a role pass through unchanged and fail later permission checks.
func Middleware(extract RoleExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if role, ok := extract(r); ok {
				r = r.WithContext(WithRole(r.Context(), role))
			}
			next.ServeHTTP(w, r)
		})
	}
}

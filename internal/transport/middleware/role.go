package middleware

import (
	"context"
	"net/http"
	"slices"

	"github.com/heartmarshall/pollution-reporter/internal/domain"
	"github.com/heartmarshall/pollution-reporter/pkg/ctxutil"
)

// CheckRole returns domain.ErrUnauthorized for anonymous callers and
// domain.ErrForbidden when the caller's role is not among roles.
func CheckRole(ctx context.Context, roles ...domain.AccountRole) error {
	caller, ok := ctxutil.CallerFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !slices.Contains(roles, domain.AccountRole(caller.Role)) {
		return domain.ErrForbidden
	}
	return nil
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.CallerFromCtx(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole admits only callers holding one of roles.
func RequireRole(roles ...domain.AccountRole) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch CheckRole(r.Context(), roles...) {
			case nil:
				next.ServeHTTP(w, r)
			case domain.ErrUnauthorized:
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			default:
				http.Error(w, "forbidden", http.StatusForbidden)
			}
		})
	}
}

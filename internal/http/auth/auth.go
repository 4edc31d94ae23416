// Package auth gates API routes on the session user and their roles.
package auth

import (
	"net/http"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/http/respond"
	"github.com/MrJamesThe3rd/fintrack/internal/session"
)

var (
	ErrUnauthorized = apperr.New(apperr.ErrUnauthorized, respond.CodeUnauthorized, "Authentication required")
	ErrForbidden    = apperr.New(apperr.ErrForbidden, respond.CodeForbidden, "You are not allowed to perform this action")
)

// RequireUser rejects requests without a session user with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.UserFrom(r.Context()); !ok {
			respond.Error(w, r, ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects anonymous requests with 401 and users lacking role with 403.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := session.UserFrom(r.Context())
			if !ok {
				respond.Error(w, r, ErrUnauthorized)
				return
			}

			if !u.HasRole(role) {
				respond.Error(w, r, ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jobnest/jobnest/internal/auth"
)

// PageGuard protects browser-facing routes. Unlike the API middleware it
// never writes JSON: visitors without a session are sent to the login
// page with the original path preserved in returnUrl, and signed-in
// users lacking the permission land on the unauthorized page.
type PageGuard struct {
	logger *slog.Logger
}

func NewPageGuard(logger *slog.Logger) *PageGuard {
	return &PageGuard{logger: logger}
}

// Require redirects rather than rejecting.
func (g *PageGuard) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok {
				target := r.URL.Path
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, "/login?returnUrl="+url.QueryEscape(target), http.StatusFound)
				return
			}

			if !user.HasPermission(permission) {
				g.logger.Warn("page access denied",
					"user_id", user.ID,
					"role", user.Role,
					"permission", permission,
					"path", r.URL.Path)
				http.Redirect(w, r, "/unauthorized", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession only checks that a user is signed in.
func (g *PageGuard) RequireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := auth.UserFromContext(r.Context()); !ok {
				target := r.URL.Path
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, "/login?returnUrl="+url.QueryEscape(target), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

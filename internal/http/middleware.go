package http

import (
	"net/http"

	"github.com/GabrielMorais2/system-management-usegm/internal/session"
)

// SessionCookie names the cookie holding the opaque session ID.
const SessionCookie = "usegm_session"

// ResolveSession looks the session cookie up in the store and, when it
// resolves, attaches the session to the request context. Requests without a
// valid session pass through unauthenticated; gating happens in RequirePage
// and RequireAPI.
func ResolveSession(store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err == nil && cookie.Value != "" {
				if s, err := store.Get(r.Context(), cookie.Value); err == nil {
					r = r.WithContext(session.NewContext(r.Context(), cookie.Value, s))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePage redirects unauthenticated page loads to /login.
func RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, s, ok := session.FromContext(r.Context()); !ok || s == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAPI rejects unauthenticated API calls with 401.
func RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, s, ok := session.FromContext(r.Context()); !ok || s == nil {
			respondError(w, http.StatusUnauthorized, "unauthenticated", "missing or expired session")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin gates admin-only actions on the session's role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, s, ok := session.FromContext(r.Context()); !ok || !s.IsAdmin() {
			respondError(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

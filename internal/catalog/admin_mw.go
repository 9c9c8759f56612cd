package catalog

import (
	"net/http"

	"Bakeshop/pkg/kit"
)

// RequireAdmin trusts the identity headers injected by the gateway after JWT
// verification. The catalog service is never exposed directly.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-User-Id") == "" {
			kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
			return
		}
		if r.Header.Get("X-User-Role") != "admin" {
			kit.WriteError(w, r, http.StatusForbidden, "admin only", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

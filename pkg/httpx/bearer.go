package httpx

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// RequireBearer rejects requests whose Authorization header does not carry
// the given static token. An empty token disables the check.
func RequireBearer(token string) Middleware {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(authz, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(raw)), []byte(token)) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteJSON(w, http.StatusUnauthorized, ErrorBody{Error: "invalid_token"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

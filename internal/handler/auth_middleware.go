package handler

import (
	"net/http"
	"strings"
)

// requireAuth enforces Authorization: Bearer <token> and stores the resolved
// user id in the request context. Any failure — missing header, malformed
// header, invalid or expired token — is a 401 with the same envelope shape.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" {
			unauthorized(w, r, "missing Authorization header")
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authz, prefix) {
			unauthorized(w, r, "malformed Authorization header")
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(authz, prefix))
		if raw == "" {
			unauthorized(w, r, "missing bearer token")
			return
		}

		userID, err := s.tokens.Resolve(raw)
		if err != nil {
			unauthorized(w, r, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

// unauthorized writes a 401 with a WWW-Authenticate challenge, as required
// for bearer-token authentication.
func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, r, http.StatusUnauthorized, "unauthorized", message)
}

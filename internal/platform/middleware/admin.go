package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Kamduis/name-combo/internal/platform/secrets"
)

// RequireAdminToken guards destructive admin endpoints with a shared token
// passed via the X-Admin-Token header. Only the bcrypt hash of the token is
// held in memory.
func RequireAdminToken(tokenHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-Admin-Token")
			if tokenHash == "" || provided == "" || secrets.Verify(provided, tokenHash) != nil {
				logger.WarnContext(r.Context(), "forbidden - admin token missing or wrong",
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

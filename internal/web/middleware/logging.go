package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/codechallenge-go/internal/middleware"
)

// Logging creates logging middleware for the dashboard. The SSE stream is
// long-lived and logged by the hub instead.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	inner := middleware.Logging(logger)
	return func(next http.Handler) http.Handler {
		logged := inner(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/events" {
				next.ServeHTTP(w, r)
				return
			}
			logged.ServeHTTP(w, r)
		})
	}
}

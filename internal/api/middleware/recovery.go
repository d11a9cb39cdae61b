package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/reviewlens/reviewlens/internal/api/response"
)

// Recovery converts a handler panic into a 500 with the standard error
// envelope. The stack is logged under the request's correlation id so
// the panic can be matched to the request line Logger emits.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic recovered",
					"request_id", RequestID(r.Context()),
					"error", err,
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.Error(w, http.StatusInternalServerError,
					"INTERNAL_ERROR", "An unexpected error occurred", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/dkoval-dev/goblog/internal/logger"
	"github.com/dkoval-dev/goblog/internal/utils"
)

// Recover converts a panicking handler into a 500 response so one request's
// failure never takes down the process.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.Error("panic while handling request",
					"method", r.Method, "path", r.URL.Path,
					"panic", rec, "stack", string(debug.Stack()))
				utils.WriteError(w, errors.New("panic recovered"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/calebhawthorne/regenmarket-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID takes the caller-supplied request ID or mints one, echoes it
// in the response header, and seeds the request-scoped logger with it.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

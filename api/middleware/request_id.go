package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rukkie/storefront/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID carries an inbound request id through the response and the
// request-scoped logger. Ids that do not parse as UUIDs are replaced so log
// correlation keys stay uniform.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if _, err := uuid.Parse(reqID); err != nil {
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

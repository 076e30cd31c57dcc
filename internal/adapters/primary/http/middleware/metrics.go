package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/qualitec/erp-backend/internal/infrastructure/metrics"
)

// HTTPMetrics returns a middleware that records request counts and latency.
// The route label uses the chi route pattern, not the raw path, to keep
// metric cardinality bounded.
func HTTPMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			m.RecordHTTPRequest(
				route,
				r.Method,
				strconv.Itoa(wrapped.statusCode),
				float64(time.Since(start).Milliseconds()),
			)
		})
	}
}

package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vbazhenov/user-accounts/internal/metrics"
)

// MetricsMiddleware records a counter sample per completed request, labeled
// with the chi route pattern rather than the raw path so token-bearing URLs
// do not explode label cardinality.
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			m.ObserveRequest(r.Method, route, rw.statusCode)
		})
	}
}

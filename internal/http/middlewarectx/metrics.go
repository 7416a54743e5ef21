package middlewarectx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/auth-service/internal/lib/metrics"
)

// unmatchedRoute метка для запросов, не попавших ни в один маршрут.
const unmatchedRoute = "unmatched"

// Metrics считает запросы и их длительность по шаблону маршрута chi.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.Requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			m.Duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

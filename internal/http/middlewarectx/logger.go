package middlewarectx

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
)

// RequestLogger пишет одну строку на запрос: метод, путь, статус и длительность.
// Ответы со статусом 400 и выше пишутся с уровнем Warn.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				duration := time.Since(start)
				level := slog.LevelInfo
				if status >= http.StatusBadRequest {
					level = slog.LevelWarn
				}
				log.LogAttrs(r.Context(), level,
					fmt.Sprintf("%s %s %d %dms", r.Method, r.URL.RequestURI(), status, duration.Milliseconds()),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", status),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("duration", duration),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

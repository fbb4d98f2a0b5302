package middleware

import (
	"net/http"
	"time"

	"pillpal/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Observer recibe cada request terminado (lo implementan las métricas).
type Observer interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// RequestLog loguea una línea por request. Va después de chimw.RequestID.
func RequestLog(log logger.Logger, obs Observer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			elapsed := time.Since(start)

			if obs != nil {
				obs.ObserveHTTP(r.Method, route, status, elapsed)
			}
			log.Debug("http request", map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"route":      route,
				"status":     status,
				"elapsed_ms": elapsed.Milliseconds(),
			})
		})
	}
}

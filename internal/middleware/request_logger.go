package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"livestock-api/internal/platform/logger"
	"livestock-api/internal/platform/metrics"
)

// RequestLogger loguea cada request y alimenta el registro de métricas.
// Requiere chi RequestID montado antes para poder correlacionar.
func RequestLogger(log logger.Logger, reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			reqID := chimw.GetReqID(r.Context())
			ww.Header().Set("X-Request-ID", reqID)

			next.ServeHTTP(ww, r)

			dur := time.Since(start)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			if reg != nil {
				reg.Observe(r.Method, route, ww.Status(), dur)
			}

			fields := map[string]any{
				"request_id":  reqID,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": fmt.Sprintf("%.2f", float64(dur.Microseconds())/1000),
				"ip":          r.RemoteAddr,
			}

			switch {
			case ww.Status() >= 500:
				log.Error("request", fields)
			case dur > time.Second:
				log.Warn("request lento", fields)
			default:
				log.Info("request", fields)
			}
		})
	}
}

// SecurityHeaders agrega los headers defensivos mínimos a toda respuesta.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-API-Version", "1.0")
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Logging escreve um log estruturado por requisição.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			event := logger.Info()
			if ww.Status() >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event = event.Str("method", r.Method).Str("path", r.URL.Path).
				Int("status", ww.Status()).Dur("duration", time.Since(start)).
				Str("ip", realIPFromRequest(r))

			if reqID := r.Header.Get("X-Request-ID"); reqID != "" {
				event = event.Str("client_request_id", reqID)
			}
			if reqID := middleware.GetReqID(r.Context()); reqID != "" {
				event = event.Str("request_id", reqID)
			}

			event.Msg("http_request")
		})
	}
}

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/irisprep/handler"
	"github.com/dmitrymomot/irisprep/pkg/logger"
)

// requestLogger logs one line per request after it completes.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				logger.StatusCode(ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}

// failAs joins any error from bind with httpErr so the error handler
// answers with httpErr while the original cause is still logged.
func failAs(httpErr handler.HTTPError, bind handler.Bind) handler.Bind {
	return func(r *http.Request, v any) error {
		if err := bind(r, v); err != nil {
			return errors.Join(httpErr, err)
		}
		return nil
	}
}

func (s *server) rateLimited(w http.ResponseWriter, r *http.Request) {
	s.log.WarnContext(r.Context(), "submission rate limit exceeded", slog.String("path", r.URL.Path))
	_ = handler.JSONError(errRateLimited).Render(w, r)
}

// Package api exposes the SI validation and submission workflow over HTTP.
//
// Routes:
//
//	POST /api/si/validate              validate (and optionally auto-fix) a record
//	POST /api/si/submit                validate and submit a record to IRIS
//	GET  /api/submissions/{id}         fetch a submission
//	POST /api/submissions/{id}/retry   resubmit a failed submission
//	GET  /health/live                  liveness probe
//	GET  /health/ready                 readiness probe
//
// Every JSON response uses the handler.JSONResponse envelope.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/irisprep/handler"
	"github.com/dmitrymomot/irisprep/pkg/binder"
	"github.com/dmitrymomot/irisprep/pkg/httpserver"
	"github.com/dmitrymomot/irisprep/pkg/ratelimiter"
	"github.com/dmitrymomot/irisprep/pkg/requestid"
	"github.com/dmitrymomot/irisprep/pkg/rules"
	"github.com/dmitrymomot/irisprep/pkg/submission"
)

type server struct {
	reg     *rules.Registry
	svc     *submission.Service
	now     func() time.Time
	log     *slog.Logger
	checks  []httpserver.Check
	limiter *ratelimiter.Bucket
}

type Option func(*server)

// WithClock sets the time source used as the reference instant for validation.
func WithClock(now func() time.Time) Option {
	return func(s *server) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithReadinessChecks adds checks run by the readiness probe.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(s *server) {
		s.checks = append(s.checks, checks...)
	}
}

// WithSubmitLimiter rate limits the routes that call IRIS per client IP.
func WithSubmitLimiter(b *ratelimiter.Bucket) Option {
	return func(s *server) {
		s.limiter = b
	}
}

// New builds the router.
func New(cfg Config, reg *rules.Registry, svc *submission.Service, opts ...Option) http.Handler {
	s := &server{
		reg: reg,
		svc: svc,
		now: time.Now,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	errorHandler := handler.NewErrorHandler(s.log)
	jsonBody := binder.JSON(binder.AllowUnknownFields(), binder.WithMaxSize(cfg.BodyLimit))
	pathParams := binder.Path(chi.URLParam)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestid.Middleware)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health/live", httpserver.Liveness())
	r.Get("/health/ready", httpserver.Readiness(s.log, s.checks...))

	r.Route("/api", func(r chi.Router) {
		if cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
		}

		r.Post("/si/validate", handler.Wrap(s.validate,
			handler.WithBinders[handler.Context, validateRequest](failAs(errValidationFailed, jsonBody)),
			handler.WithErrorHandler[handler.Context, validateRequest](errorHandler),
		))
		r.Get("/submissions/{id}", handler.Wrap(s.getSubmission,
			handler.WithBinders[handler.Context, getRequest](pathParams),
			handler.WithErrorHandler[handler.Context, getRequest](errorHandler),
		))

		r.Group(func(r chi.Router) {
			if s.limiter != nil {
				r.Use(ratelimiter.Middleware(s.limiter, ratelimiter.ClientIP,
					ratelimiter.WithDenyHandler(http.HandlerFunc(s.rateLimited)),
				))
			}
			r.Post("/si/submit", handler.Wrap(s.submit,
				handler.WithBinders[handler.Context, submitRequest](jsonBody),
				handler.WithErrorHandler[handler.Context, submitRequest](errorHandler),
			))
			r.Post("/submissions/{id}/retry", handler.Wrap(s.retry,
				handler.WithBinders[handler.Context, retryRequest](pathParams, jsonBody),
				handler.WithErrorHandler[handler.Context, retryRequest](errorHandler),
			))
		})
	})

	return r
}

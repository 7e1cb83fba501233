package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/irisprep/pkg/binder"
	"github.com/dmitrymomot/irisprep/pkg/logger"
)

func isBindError(err error) bool {
	return errors.Is(err, binder.ErrFailedToParseJSON) ||
		errors.Is(err, binder.ErrFailedToParsePath) ||
		errors.Is(err, binder.ErrMissingContentType) ||
		errors.Is(err, binder.ErrUnsupportedMediaType) ||
		errors.Is(err, binder.ErrRequestTooLarge)
}

func bindError(err error) HTTPError {
	switch {
	case errors.Is(err, binder.ErrRequestTooLarge):
		return ErrRequestTooLarge
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return ErrUnsupportedMedia
	default:
		return ErrBadRequest.WithMessage("Malformed request")
	}
}

func logLevel(status int) slog.Level {
	if status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler creates an error handler that logs err with the request
// context and renders the JSON failure envelope. Client errors are logged
// at warn level, server errors at error level.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		info := classifyError(err)
		r := ctx.Request()

		log.LogAttrs(r.Context(), logLevel(info.Code), "request error",
			logger.Error(err),
			logger.StatusCode(info.Code),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := JSONError(info).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}

package handler

import "net/http"

// HTTPError is an error with an HTTP status and a machine-readable key.
// Message is the client-facing text; when empty the status text is used.
type HTTPError struct {
	Code    int    // HTTP status code
	Key     string // Machine-readable code, e.g. "NOT_FOUND"
	Message string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key
}

// WithMessage returns a copy of e with its client-facing message replaced.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

func (e HTTPError) message() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Code)
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "BAD_REQUEST"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "NOT_FOUND"}
	ErrRequestTooLarge     = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "REQUEST_TOO_LARGE"}
	ErrUnsupportedMedia    = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "UNSUPPORTED_MEDIA_TYPE"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "INTERNAL_ERROR"}
	ErrBadGateway          = HTTPError{Code: http.StatusBadGateway, Key: "BAD_GATEWAY"}
)

// NewHTTPError creates a custom HTTP error.
//
// Example:
//
//	errMissingData := handler.NewHTTPError(http.StatusBadRequest, "INVALID_DATA", "Missing SI data")
func NewHTTPError(code int, key, message string) HTTPError {
	return HTTPError{Code: code, Key: key, Message: message}
}

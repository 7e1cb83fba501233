package iris

import "errors"

// Submission errors. Transport failures are retried; the rest are final.
var (
	ErrSubmissionFailed = errors.New("iris submission failed")
	ErrRejected         = errors.New("iris rejected the shipping instruction")
	ErrPermanentFailure = errors.New("permanent iris failure")
	ErrTemporaryFailure = errors.New("temporary iris failure")
	ErrTimeout          = errors.New("iris request timeout")
	ErrCircuitOpen      = errors.New("iris circuit breaker is open")
	ErrInvalidResponse  = errors.New("invalid iris response")
	ErrInvalidBaseURL   = errors.New("invalid iris base URL")
	ErrUnavailable      = errors.New("iris service temporarily unavailable")
)

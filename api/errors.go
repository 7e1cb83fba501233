package api

import (
	"net/http"

	"github.com/dmitrymomot/irisprep/handler"
)

// Error codes returned in the response envelope.
const (
	CodeInvalidData      = "INVALID_DATA"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeValidationErrors = "VALIDATION_ERRORS"
	CodeSubmissionFailed = "SUBMISSION_FAILED"
	CodeNotRetryable     = "NOT_RETRYABLE"
	CodeRateLimited      = "RATE_LIMITED"
)

var (
	errMissingData      = handler.NewHTTPError(http.StatusBadRequest, CodeInvalidData, "Missing SI data")
	errMalformedData    = handler.NewHTTPError(http.StatusBadRequest, CodeInvalidData, "Malformed SI data")
	errValidationFailed = handler.NewHTTPError(http.StatusInternalServerError, CodeValidationFailed, "Validation failed")
	errValidationErrors = handler.NewHTTPError(http.StatusUnprocessableEntity, CodeValidationErrors, "Record has validation errors")
	errSubmissionFailed = handler.NewHTTPError(http.StatusBadGateway, CodeSubmissionFailed, "Submission to IRIS failed")
	errNotRetryable     = handler.NewHTTPError(http.StatusConflict, CodeNotRetryable, "Only failed submissions can be retried")
	errRateLimited      = handler.NewHTTPError(http.StatusTooManyRequests, CodeRateLimited, "Too many submissions, retry later")
	errNotFound         = handler.ErrNotFound.WithMessage("Submission not found")
)

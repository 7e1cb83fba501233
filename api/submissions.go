package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/irisprep/handler"
	"github.com/dmitrymomot/irisprep/pkg/logger"
	"github.com/dmitrymomot/irisprep/pkg/si"
	"github.com/dmitrymomot/irisprep/pkg/submission"
	"github.com/dmitrymomot/irisprep/pkg/validator"
)

type submitRequest struct {
	Data        json.RawMessage `json:"data"`
	SubmittedBy string          `json:"submittedBy"`
}

type getRequest struct {
	ID string `path:"id"`
}

type retryRequest struct {
	ID   string          `path:"id" json:"-"`
	Data json.RawMessage `json:"data" path:"-"`
}

func (s *server) submit(ctx handler.Context, req submitRequest) handler.Response {
	rec, err := s.recordFrom(ctx, req.Data)
	if err != nil {
		return handler.JSONError(err)
	}

	sub, err := s.svc.Submit(ctx, rec, req.SubmittedBy, nil)
	return s.submissionResponse(ctx, sub, err, http.StatusCreated)
}

func (s *server) getSubmission(ctx handler.Context, req getRequest) handler.Response {
	sub, err := s.svc.Get(ctx, req.ID)
	if errors.Is(err, submission.ErrNotFound) {
		return handler.JSONError(errNotFound)
	}
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(sub)
}

func (s *server) retry(ctx handler.Context, req retryRequest) handler.Response {
	rec, err := s.recordFrom(ctx, req.Data)
	if err != nil {
		return handler.JSONError(err)
	}

	sub, err := s.svc.Retry(ctx, req.ID, rec, nil)
	switch {
	case errors.Is(err, submission.ErrNotFound):
		return handler.JSONError(errNotFound)
	case errors.Is(err, submission.ErrNotRetryable):
		return handler.JSONError(errNotRetryable)
	}
	return s.submissionResponse(ctx, sub, err, http.StatusOK)
}

func (s *server) recordFrom(ctx handler.Context, raw json.RawMessage) (si.Record, error) {
	rec, ok, err := decodeRecord(raw)
	if !ok {
		return si.Record{}, errMissingData
	}
	if err != nil {
		s.log.WarnContext(ctx, "malformed SI record", logger.Error(err))
		return si.Record{}, errMalformedData
	}
	return rec, nil
}

// submissionResponse renders the outcome of a workflow run. The submission
// is returned as data in every case so clients can see how far it got.
func (s *server) submissionResponse(ctx handler.Context, sub submission.Submission, err error, okStatus int) handler.Response {
	switch {
	case err == nil:
		return handler.JSON(sub, handler.WithJSONStatus(okStatus))
	case errors.Is(err, submission.ErrRecordInvalid):
		if issues, ok := validator.AsIssues(err); ok {
			s.log.InfoContext(ctx, "submission blocked by validation errors",
				logger.SubmissionID(sub.ID), logger.IssueCount(len(issues)))
		}
		var result any
		if sub.Validation != nil {
			result = sub.Validation
		}
		return failure(errValidationErrors, sub, result)
	case errors.Is(err, submission.ErrSubmissionFailed):
		s.log.WarnContext(ctx, "submission failed", logger.SubmissionID(sub.ID), logger.Error(err))
		var result any
		if sub.IrisResponse != nil {
			result = sub.IrisResponse
		}
		return failure(errSubmissionFailed, sub, result)
	default:
		s.log.ErrorContext(ctx, "submission workflow error", logger.SubmissionID(sub.ID), logger.Error(err))
		return handler.JSONError(err)
	}
}

func failure(httpErr handler.HTTPError, data, result any) handler.Response {
	return handler.JSON(handler.JSONResponse{
		Success: false,
		Result:  result,
		Data:    data,
		Error:   httpErr.Message,
		Code:    httpErr.Key,
	}, handler.WithJSONStatus(httpErr.Code))
}

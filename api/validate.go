package api

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/dmitrymomot/irisprep/handler"
	"github.com/dmitrymomot/irisprep/pkg/iris"
	"github.com/dmitrymomot/irisprep/pkg/logger"
	"github.com/dmitrymomot/irisprep/pkg/si"
)

type validateRequest struct {
	Data         json.RawMessage `json:"data"`
	ApplyAutoFix *bool           `json:"applyAutoFix"`
}

// decodeRecord reads the data member of a request body. ok is false when
// data is absent or falsy: null, false, "" or 0.
func decodeRecord(raw json.RawMessage) (rec si.Record, ok bool, err error) {
	if isFalsy(raw) {
		return si.Record{}, false, nil
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return si.Record{}, true, err
	}
	return rec, true, nil
}

func (s *server) validate(ctx handler.Context, req validateRequest) handler.Response {
	rec, ok, err := decodeRecord(req.Data)
	if !ok {
		return handler.JSONError(errMissingData)
	}
	if err != nil {
		s.log.ErrorContext(ctx, "failed to decode SI record", logger.Error(err))
		return handler.JSONError(errors.Join(errValidationFailed, err))
	}

	now := s.now()
	prepared := iris.Prepare(s.reg, rec, now)
	res := prepared.Result

	s.log.InfoContext(ctx, "record validated",
		logger.RecordID(rec.ID),
		logger.Validation(res.IsValid, len(res.Errors()), len(res.Warnings()), res.Metadata.AutoFixedFields),
	)

	if req.ApplyAutoFix != nil && !*req.ApplyAutoFix {
		return handler.JSON(req.Data, handler.WithResult(res))
	}

	data := prepared.Data
	data.ValidationResult = &si.ValidationSummary{
		IsValid:          res.IsValid,
		ValidatedAt:      now,
		AutoFixesApplied: len(res.AutoFixes),
	}
	if res.IsValid {
		data.Status = si.StatusValidated
	}

	return handler.JSON(data, handler.WithResult(res))
}

func isFalsy(raw json.RawMessage) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case float64:
		return x == 0
	}
	return false
}

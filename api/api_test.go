package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/irisprep/api"
	"github.com/dmitrymomot/irisprep/pkg/iris"
	"github.com/dmitrymomot/irisprep/pkg/ratelimiter"
	"github.com/dmitrymomot/irisprep/pkg/requestid"
	"github.com/dmitrymomot/irisprep/pkg/rules"
	"github.com/dmitrymomot/irisprep/pkg/submission"
)

var now = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

const validData = `{
	"id": "si_abc123",
	"shipperName": "  Acme Corp  ",
	"shipperAddress": "123 Harbor Road, Newark NJ",
	"shipperContact": "+1 (555) 123-4567",
	"consigneeName": "Globex Ltd",
	"consigneeAddress": "88 Century Avenue, Shanghai",
	"consigneeContact": "+86 21 5555 0100",
	"cargoDescription": "Industrial pumps",
	"containerNumber": "abcd 1234567",
	"bookingNumber": "BOOK123456",
	"portOfLoading": "usnyc",
	"portOfDischarge": "CNSHA",
	"cargoReadyDate": "12/25/2025",
	"requestedShipDate": "2025-12-28",
	"weight": 15000,
	"volume": 60
}`

type submitterFunc func(ctx context.Context, req iris.SubmissionRequest) (iris.SubmissionResponse, error)

func (f submitterFunc) Submit(ctx context.Context, req iris.SubmissionRequest) (iris.SubmissionResponse, error) {
	return f(ctx, req)
}

func accepting() iris.Submitter {
	return submitterFunc(func(context.Context, iris.SubmissionRequest) (iris.SubmissionResponse, error) {
		return iris.SubmissionResponse{Success: true, Status: iris.StatusAccepted, ReferenceNumber: "IRIS-20250601-ABC123"}, nil
	})
}

func newRouter(sub iris.Submitter, opts ...api.Option) http.Handler {
	reg := rules.New()
	clock := func() time.Time { return now }
	var n atomic.Int64
	svc := submission.NewService(reg, sub,
		submission.WithClock(clock),
		submission.WithIDGenerator(func() string { return fmt.Sprintf("sub_%d", n.Add(1)) }),
	)
	return api.New(api.Config{}, reg, svc, append([]api.Option{api.WithClock(clock)}, opts...)...)
}

type envelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestValidate(t *testing.T) {
	t.Parallel()
	h := newRouter(accepting())

	t.Run("auto-fixed record", func(t *testing.T) {
		t.Parallel()
		w, env := do(t, h, http.MethodPost, "/api/si/validate", `{"data":`+validData+`}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)

		var result iris.ValidationResult
		require.NoError(t, json.Unmarshal(env.Result, &result))
		assert.True(t, result.IsValid)
		assert.Len(t, result.AutoFixes, 4)
		assert.Equal(t, 15, result.Metadata.TotalFields)

		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "ABCD1234567", data["containerNumber"])
		assert.Equal(t, "USNYC", data["portOfLoading"])
		assert.Equal(t, "2025-12-25", data["cargoReadyDate"])
		assert.Equal(t, "Acme Corp", data["shipperName"])
		assert.Equal(t, "validated", data["status"])
		assert.Equal(t, map[string]any{
			"isValid":          true,
			"validatedAt":      "2025-06-01T09:30:00Z",
			"autoFixesApplied": 4.0,
		}, data["validationResult"])
	})

	t.Run("auto-fix not merged back", func(t *testing.T) {
		t.Parallel()
		w, env := do(t, h, http.MethodPost, "/api/si/validate", `{"data":`+validData+`,"applyAutoFix":false}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, validData, string(env.Data))

		var result iris.ValidationResult
		require.NoError(t, json.Unmarshal(env.Result, &result))
		assert.Len(t, result.AutoFixes, 4)
	})

	t.Run("invalid record still succeeds", func(t *testing.T) {
		t.Parallel()
		w, env := do(t, h, http.MethodPost, "/api/si/validate", `{"data":{"containerNumber":"ABC123"}}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		var result iris.ValidationResult
		require.NoError(t, json.Unmarshal(env.Result, &result))
		assert.False(t, result.IsValid)

		var data map[string]any
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.NotContains(t, data, "status")
	})

	tests := []struct {
		name   string
		body   string
		status int
		code   string
		error  string
	}{
		{"missing data", `{}`, http.StatusBadRequest, api.CodeInvalidData, "Missing SI data"},
		{"null data", `{"data":null}`, http.StatusBadRequest, api.CodeInvalidData, "Missing SI data"},
		{"false data", `{"data":false}`, http.StatusBadRequest, api.CodeInvalidData, "Missing SI data"},
		{"empty string data", `{"data":""}`, http.StatusBadRequest, api.CodeInvalidData, "Missing SI data"},
		{"zero data", `{"data":0}`, http.StatusBadRequest, api.CodeInvalidData, "Missing SI data"},
		{"truthy non-object data", `{"data":true}`, http.StatusInternalServerError, api.CodeValidationFailed, "Validation failed"},
		{"type mismatch", `{"data":{"weight":"heavy"}}`, http.StatusInternalServerError, api.CodeValidationFailed, "Validation failed"},
		{"malformed body", `{"data":`, http.StatusInternalServerError, api.CodeValidationFailed, "Validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, env := do(t, h, http.MethodPost, "/api/si/validate", tt.body)

			assert.Equal(t, tt.status, w.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.code, env.Code)
			assert.Equal(t, tt.error, env.Error)
		})
	}
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()
		h := newRouter(accepting())
		w, env := do(t, h, http.MethodPost, "/api/si/submit", `{"data":`+validData+`,"submittedBy":"ops@acme.example"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Success)

		var sub submission.Submission
		require.NoError(t, json.Unmarshal(env.Data, &sub))
		assert.Equal(t, submission.StatusSubmitted, sub.Status)
		assert.Equal(t, "IRIS-20250601-ABC123", sub.ReferenceNumber)
		assert.Equal(t, "ops@acme.example", sub.SubmittedBy)

		w, env = do(t, h, http.MethodGet, "/api/submissions/"+sub.ID, "")
		require.Equal(t, http.StatusOK, w.Code)
		var stored submission.Submission
		require.NoError(t, json.Unmarshal(env.Data, &stored))
		assert.Equal(t, sub.ID, stored.ID)
		assert.Equal(t, submission.StatusSubmitted, stored.Status)
	})

	t.Run("invalid record", func(t *testing.T) {
		t.Parallel()
		w, env := do(t, newRouter(accepting()), http.MethodPost, "/api/si/submit", `{"data":{"containerNumber":"ABC123"}}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.False(t, env.Success)
		assert.Equal(t, api.CodeValidationErrors, env.Code)

		var result iris.ValidationResult
		require.NoError(t, json.Unmarshal(env.Result, &result))
		assert.False(t, result.IsValid)
		assert.NotEmpty(t, result.Issues)
	})

	t.Run("iris unavailable", func(t *testing.T) {
		t.Parallel()
		h := newRouter(submitterFunc(func(context.Context, iris.SubmissionRequest) (iris.SubmissionResponse, error) {
			return iris.SubmissionResponse{}, iris.ErrUnavailable
		}))
		w, env := do(t, h, http.MethodPost, "/api/si/submit", `{"data":`+validData+`}`)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, api.CodeSubmissionFailed, env.Code)
		assert.Empty(t, env.Result)

		var sub submission.Submission
		require.NoError(t, json.Unmarshal(env.Data, &sub))
		assert.Equal(t, submission.StatusFailed, sub.Status)
		assert.Equal(t, submission.CodeSubmissionFailed, sub.ErrorCode)
	})

	t.Run("missing data", func(t *testing.T) {
		t.Parallel()
		w, env := do(t, newRouter(accepting()), http.MethodPost, "/api/si/submit", `{"submittedBy":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, api.CodeInvalidData, env.Code)
	})

	t.Run("falsy data", func(t *testing.T) {
		t.Parallel()
		w, env := do(t, newRouter(accepting()), http.MethodPost, "/api/si/submit", `{"data":false}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing SI data", env.Error)
	})

	t.Run("malformed data", func(t *testing.T) {
		t.Parallel()
		w, env := do(t, newRouter(accepting()), http.MethodPost, "/api/si/submit", `{"data":{"volume":"big"}}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Malformed SI data", env.Error)
	})
}

func TestSubmissions_GetAndRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	h := newRouter(submitterFunc(func(context.Context, iris.SubmissionRequest) (iris.SubmissionResponse, error) {
		if calls.Add(1) == 1 {
			return iris.SubmissionResponse{}, errors.New("connection reset")
		}
		return iris.SubmissionResponse{Success: true, Status: iris.StatusAccepted, ReferenceNumber: "IRIS-2"}, nil
	}))

	_, env := do(t, h, http.MethodPost, "/api/si/submit", `{"data":`+validData+`}`)
	var failed submission.Submission
	require.NoError(t, json.Unmarshal(env.Data, &failed))
	require.Equal(t, submission.StatusFailed, failed.Status)

	w, env := do(t, h, http.MethodPost, "/api/submissions/"+failed.ID+"/retry", `{"data":`+validData+`}`)
	require.Equal(t, http.StatusOK, w.Code)
	var retried submission.Submission
	require.NoError(t, json.Unmarshal(env.Data, &retried))
	assert.Equal(t, failed.ID, retried.ID)
	assert.Equal(t, submission.StatusSubmitted, retried.Status)
	assert.Equal(t, 1, retried.RetryCount)

	w, env = do(t, h, http.MethodPost, "/api/submissions/"+failed.ID+"/retry", `{"data":`+validData+`}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, api.CodeNotRetryable, env.Code)

	w, env = do(t, h, http.MethodPost, "/api/submissions/unknown/retry", `{"data":`+validData+`}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Code)

	w, env = do(t, h, http.MethodGet, "/api/submissions/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Submission not found", env.Error)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	h := newRouter(accepting())
	w, _ := do(t, h, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())

	w, _ = do(t, h, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)

	down := newRouter(accepting(), api.WithReadinessChecks(func(context.Context) error { return iris.ErrCircuitOpen }))
	w, _ = do(t, down, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "NOT_READY", w.Body.String())
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	h := newRouter(accepting())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set(requestid.Header, "client-id-1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "client-id-1", w.Header().Get(requestid.Header))

	w, _ = do(t, h, http.MethodGet, "/health/live", "")
	assert.NotEmpty(t, w.Header().Get(requestid.Header))
}

func TestSubmitRateLimit(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	h := newRouter(accepting(), api.WithSubmitLimiter(limiter))

	w, _ := do(t, h, http.MethodPost, "/api/si/submit", `{"data":`+validData+`}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env := do(t, h, http.MethodPost, "/api/si/submit", `{"data":`+validData+`}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, api.CodeRateLimited, env.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	w, _ = do(t, h, http.MethodPost, "/api/si/validate", `{"data":`+validData+`}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

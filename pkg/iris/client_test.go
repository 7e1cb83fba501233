package iris_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/irisprep/pkg/iris"
)

func newClient(t *testing.T, url string, cfg iris.Config, opts ...iris.ClientOption) *iris.Client {
	t.Helper()
	cfg.BaseURL = url
	opts = append([]iris.ClientOption{iris.WithBackoff(iris.FixedBackoff{Interval: time.Millisecond})}, opts...)
	c, err := iris.NewClient(cfg, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_Submit_Success(t *testing.T) {
	t.Parallel()

	req := iris.NewSubmissionRequest(wellFormed(), "ops@acme.example", now)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/shipping-instructions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "irisprep/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer key_123", r.Header.Get("Authorization"))

		var got iris.SubmissionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "BOOK123456", got.ShippingInstruction.BookingNumber)
		assert.Equal(t, "ops@acme.example", got.SubmittedBy)

		writeJSON(w, http.StatusCreated, iris.SubmissionResponse{
			Success:         true,
			ReferenceNumber: "IRIS-2025-06-01-A1B2C3",
			Status:          iris.StatusAccepted,
			Message:         "queued",
		})
	}))
	defer srv.Close()

	c := newClient(t, srv.URL+"/v1/", iris.Config{APIKey: "key_123"})
	resp, err := c.Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "IRIS-2025-06-01-A1B2C3", resp.ReferenceNumber)
	assert.Equal(t, iris.StatusAccepted, resp.Status)
}

func TestClient_Submit_Signature(t *testing.T) {
	t.Parallel()

	const secret = "iris_secret"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		ts, err := strconv.ParseInt(r.Header.Get(iris.HeaderTimestamp), 10, 64)
		require.NoError(t, err)
		assert.Equal(t, iris.Sign(secret, ts, body), r.Header.Get(iris.HeaderSignature))
		assert.NotEmpty(t, r.Header.Get(iris.HeaderRequestID))
		assert.Empty(t, r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, iris.SubmissionResponse{Success: true, Status: iris.StatusPending})
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, iris.Config{SigningSecret: secret})
	_, err := c.Submit(context.Background(), iris.SubmissionRequest{SubmittedBy: "tester"})
	require.NoError(t, err)
}

func TestClient_Submit_RetriesTemporaryFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			writeJSON(w, http.StatusOK, iris.SubmissionResponse{Success: true, Status: iris.StatusAccepted, ReferenceNumber: "IRIS-1"})
		}
	}))
	defer srv.Close()

	var attempts []iris.Attempt
	c := newClient(t, srv.URL, iris.Config{MaxRetries: 3}, iris.WithOnAttempt(func(a iris.Attempt) {
		attempts = append(attempts, a)
	}))

	resp, err := c.Submit(context.Background(), iris.SubmissionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "IRIS-1", resp.ReferenceNumber)
	assert.Equal(t, int32(3), calls.Load())

	require.Len(t, attempts, 3)
	assert.Equal(t, http.StatusServiceUnavailable, attempts[0].StatusCode)
	assert.Equal(t, 3, attempts[2].Number)
	assert.NoError(t, attempts[2].Err)
}

func TestClient_Submit_GivesUp(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, iris.Config{MaxRetries: 2})
	_, err := c.Submit(context.Background(), iris.SubmissionRequest{})

	assert.ErrorIs(t, err, iris.ErrSubmissionFailed)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Submit_TruncatedBodyIsRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", "512")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, iris.Config{MaxRetries: 1})
	_, err := c.Submit(context.Background(), iris.SubmissionRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, iris.ErrTemporaryFailure)
	assert.ErrorIs(t, err, iris.ErrSubmissionFailed)
	assert.NotErrorIs(t, err, iris.ErrInvalidResponse)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Submit_PermanentFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, iris.Config{MaxRetries: 3})
	_, err := c.Submit(context.Background(), iris.SubmissionRequest{})

	assert.ErrorIs(t, err, iris.ErrPermanentFailure)
	assert.Contains(t, err.Error(), "status 401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Submit_Rejected(t *testing.T) {
	t.Parallel()

	rejection := iris.SubmissionResponse{
		Success: false,
		Status:  iris.StatusRejected,
		Message: "Validation failed",
		Errors: []iris.Error{
			{Code: "INVALID_PORT", Field: "portOfLoading", Message: "Port code not recognized", Severity: "error"},
		},
	}

	tests := []struct {
		name   string
		status int
	}{
		{"as 200", http.StatusOK},
		{"as 422", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				writeJSON(w, tt.status, rejection)
			}))
			defer srv.Close()

			c := newClient(t, srv.URL, iris.Config{MaxRetries: 3})
			resp, err := c.Submit(context.Background(), iris.SubmissionRequest{})

			assert.ErrorIs(t, err, iris.ErrRejected)
			assert.Equal(t, int32(1), calls.Load())
			require.Len(t, resp.Errors, 1)
			assert.Equal(t, "INVALID_PORT", resp.Errors[0].Code)
			assert.Equal(t, iris.CircuitClosed, c.Breaker().State())
		})
	}
}

func TestClient_Submit_InvalidResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, iris.Config{MaxRetries: 3})
	_, err := c.Submit(context.Background(), iris.SubmissionRequest{})

	assert.ErrorIs(t, err, iris.ErrPermanentFailure)
	assert.ErrorIs(t, err, iris.ErrInvalidResponse)
}

func TestClient_Submit_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, iris.Config{Timeout: 20 * time.Millisecond})
	_, err := c.Submit(context.Background(), iris.SubmissionRequest{})

	assert.ErrorIs(t, err, iris.ErrSubmissionFailed)
	assert.ErrorIs(t, err, iris.ErrTimeout)
}

func TestClient_Submit_ContextCanceledBetweenRetries(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := newClient(t, srv.URL, iris.Config{MaxRetries: 5},
		iris.WithBackoff(iris.FixedBackoff{Interval: time.Second}),
		iris.WithOnAttempt(func(iris.Attempt) { cancel() }),
	)

	_, err := c.Submit(ctx, iris.SubmissionRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Submit_CircuitOpens(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, iris.Config{MaxRetries: 1, BreakerFailures: 2, BreakerRecovery: time.Hour})

	_, err := c.Submit(context.Background(), iris.SubmissionRequest{})
	require.Error(t, err)
	assert.Equal(t, iris.CircuitOpen, c.Breaker().State())

	_, err = c.Submit(context.Background(), iris.SubmissionRequest{})
	assert.ErrorIs(t, err, iris.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	for _, u := range []string{"ftp://iris.example", "http://", "://bad"} {
		_, err := iris.NewClient(iris.Config{BaseURL: u})
		assert.ErrorIs(t, err, iris.ErrInvalidBaseURL, u)
	}
}

func TestNew_SelectsSubmitter(t *testing.T) {
	t.Parallel()

	sub, err := iris.New(iris.Config{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &iris.Simulator{}, sub)

	sub, err = iris.New(iris.Config{BaseURL: "https://iris.example"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &iris.Client{}, sub)
}

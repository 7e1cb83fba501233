package iris

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/irisprep/pkg/logger"
)

const (
	submitPath       = "/shipping-instructions"
	userAgent        = "irisprep/1.0"
	maxResponseBytes = 64 << 10

	HeaderSignature = "X-Iris-Signature"
	HeaderTimestamp = "X-Iris-Timestamp"
	HeaderRequestID = "X-Iris-Request-ID"
)

// Attempt describes one HTTP round trip to IRIS.
type Attempt struct {
	Number     int
	StatusCode int
	Duration   time.Duration
	Err        error
}

// Client submits shipping instructions over HTTP with retries and a
// circuit breaker. Create it with NewClient and reuse it; it is safe for
// concurrent use.
type Client struct {
	endpoint   string
	apiKey     string
	secret     string
	timeout    time.Duration
	maxRetries int

	http      *http.Client
	backoff   Backoff
	breaker   *CircuitBreaker
	onAttempt func(Attempt)
	log       *slog.Logger
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default transport. Nil is ignored.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithBackoff(b Backoff) ClientOption {
	return func(cl *Client) {
		if b != nil {
			cl.backoff = b
		}
	}
}

// WithCircuitBreaker shares a breaker between clients of the same endpoint.
func WithCircuitBreaker(cb *CircuitBreaker) ClientOption {
	return func(cl *Client) {
		if cb != nil {
			cl.breaker = cb
		}
	}
}

// WithOnAttempt registers a hook called after every HTTP attempt.
func WithOnAttempt(fn func(Attempt)) ClientOption {
	return func(cl *Client) {
		cl.onAttempt = fn
	}
}

func WithLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) {
		if l != nil {
			cl.log = l
		}
	}
}

// NewClient validates cfg.BaseURL and builds a client for it.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		endpoint:   strings.TrimRight(u.String(), "/") + submitPath,
		apiKey:     cfg.APIKey,
		secret:     cfg.SigningSecret,
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		backoff: DefaultBackoff(),
		breaker: NewCircuitBreaker(cfg.BreakerFailures, cfg.BreakerRecovery),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Breaker exposes the client's circuit breaker for health reporting.
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// Submit posts req to IRIS. Network errors, 5xx and the retryable 4xx
// codes (408, 425, 429) are retried with backoff; everything else returns
// at once.
func (c *Client) Submit(ctx context.Context, req SubmissionRequest) (SubmissionResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return SubmissionResponse{}, fmt.Errorf("failed to marshal submission: %w", err)
	}

	if !c.breaker.Allow() {
		return SubmissionResponse{}, ErrCircuitOpen
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return SubmissionResponse{}, ctx.Err()
			case <-time.After(c.backoff.NextInterval(attempt)):
			}
		}

		resp, status, dur, err := c.do(ctx, payload)
		if c.onAttempt != nil {
			c.onAttempt(Attempt{Number: attempt + 1, StatusCode: status, Duration: dur, Err: err})
		}

		// A rejection is a healthy answer from IRIS.
		if err == nil || errors.Is(err, ErrRejected) {
			c.breaker.RecordSuccess()
		} else {
			c.breaker.RecordFailure()
		}

		if err == nil {
			c.log.InfoContext(ctx, "shipping instruction accepted",
				logger.Component("iris"),
				logger.ReferenceNumber(resp.ReferenceNumber),
				logger.Duration(dur),
			)
			return resp, nil
		}
		if errors.Is(err, ErrRejected) {
			return resp, err
		}

		c.log.WarnContext(ctx, "iris attempt failed",
			logger.Component("iris"),
			logger.RetryCount(attempt),
			logger.StatusCode(status),
			logger.Error(err),
		)
		lastErr = err

		if isPermanent(status) || errors.Is(err, ErrInvalidResponse) {
			return resp, fmt.Errorf("%w: %w", ErrPermanentFailure, err)
		}
	}

	return SubmissionResponse{}, fmt.Errorf("%w after %d attempts: %w", ErrSubmissionFailed, c.maxRetries+1, lastErr)
}

func (c *Client) do(ctx context.Context, payload []byte) (SubmissionResponse, int, time.Duration, error) {
	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return SubmissionResponse{}, 0, time.Since(start), fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.secret != "" {
		ts := time.Now().Unix()
		req.Header.Set(HeaderSignature, Sign(c.secret, ts, payload))
		req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}

	res, err := c.http.Do(req)
	dur := time.Since(start)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return SubmissionResponse{}, 0, dur, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return SubmissionResponse{}, 0, dur, fmt.Errorf("%w: %w", ErrTemporaryFailure, err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return SubmissionResponse{}, 0, dur, fmt.Errorf("%w: failed to read response: %w", ErrTemporaryFailure, err)
	}

	var out SubmissionResponse
	decodeErr := json.Unmarshal(body, &out)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		if decodeErr == nil && out.Status == StatusRejected {
			return out, res.StatusCode, dur, fmt.Errorf("%w: %s", ErrRejected, out.Message)
		}
		return SubmissionResponse{}, res.StatusCode, dur, fmt.Errorf("iris returned status %d: %s", res.StatusCode, snippet(body))
	}

	if decodeErr != nil {
		return SubmissionResponse{}, res.StatusCode, dur, fmt.Errorf("%w: %w", ErrInvalidResponse, decodeErr)
	}
	if !out.Accepted() {
		return out, res.StatusCode, dur, fmt.Errorf("%w: %s", ErrRejected, out.Message)
	}
	return out, res.StatusCode, dur, nil
}

// Sign returns the hex HMAC-SHA256 of "<timestamp>.<payload>" under secret.
func Sign(secret string, timestamp int64, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%d.%s", timestamp, payload)
	return hex.EncodeToString(h.Sum(nil))
}

// isPermanent reports whether a status code will not change on retry.
func isPermanent(status int) bool {
	if status < 400 || status >= 500 {
		return false
	}
	switch status {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return false
	default:
		return true
	}
}

// snippet flattens a response body for error messages.
func snippet(body []byte) string {
	s := strings.ReplaceAll(string(body), "\n", " ")
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

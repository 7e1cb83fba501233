package iris

import (
	"context"
	"log/slog"
)

// Submitter delivers shipping instructions to IRIS.
//
// A returned response with ErrRejected means IRIS answered but refused the
// document; its Errors explain why. Any other error means no usable answer.
type Submitter interface {
	Submit(ctx context.Context, req SubmissionRequest) (SubmissionResponse, error)
}

// New returns an HTTP client for cfg, or a Simulator when cfg has no base URL.
func New(cfg Config, log *slog.Logger) (Submitter, error) {
	if cfg.Simulated() {
		return NewSimulator(
			WithFailureRate(cfg.SimulatedFailureRate),
			WithLatency(cfg.SimulatedLatency),
		), nil
	}
	return NewClient(cfg, WithLogger(log))
}

// Ready returns a readiness check for s. It fails with ErrCircuitOpen while
// a Client's breaker is open and always passes for other submitters.
func Ready(s Submitter) func(ctx context.Context) error {
	return func(context.Context) error {
		c, ok := s.(*Client)
		if ok && c.Breaker().State() == CircuitOpen {
			return ErrCircuitOpen
		}
		return nil
	}
}

package iris

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Simulator stands in for IRIS when no endpoint is configured. It accepts
// submissions with reference numbers of the form IRIS-YYYY-MM-DD-XXXXXX
// and fails a configurable share of them with ErrUnavailable. Safe for
// concurrent use.
type Simulator struct {
	mu sync.Mutex

	failureRate float64
	latency     time.Duration
	rnd         *rand.Rand
	now         func() time.Time
}

type SimulatorOption func(*Simulator)

// WithFailureRate sets the share of submissions that fail, clamped to [0, 1].
func WithFailureRate(rate float64) SimulatorOption {
	return func(s *Simulator) {
		s.failureRate = min(max(rate, 0), 1)
	}
}

// WithLatency delays every submission by d.
func WithLatency(d time.Duration) SimulatorOption {
	return func(s *Simulator) {
		if d > 0 {
			s.latency = d
		}
	}
}

// WithRandSource makes outcomes and reference numbers reproducible.
func WithRandSource(src rand.Source) SimulatorOption {
	return func(s *Simulator) {
		if src != nil {
			s.rnd = rand.New(src)
		}
	}
}

func WithClock(now func() time.Time) SimulatorOption {
	return func(s *Simulator) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSimulator returns a simulator failing 10% of submissions.
func NewSimulator(opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		failureRate: 0.1,
		rnd:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) Submit(ctx context.Context, req SubmissionRequest) (SubmissionResponse, error) {
	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return SubmissionResponse{}, ctx.Err()
		case <-time.After(s.latency):
		}
	}
	if err := ctx.Err(); err != nil {
		return SubmissionResponse{}, err
	}

	s.mu.Lock()
	failed := s.rnd.Float64() < s.failureRate
	now := s.now()
	ref := s.reference(now)
	s.mu.Unlock()

	if failed {
		return SubmissionResponse{}, fmt.Errorf("%w: unable to process submission, please try again", ErrUnavailable)
	}

	return SubmissionResponse{
		Success:         true,
		ReferenceNumber: ref,
		Status:          StatusAccepted,
		Message:         "Shipping instruction accepted and queued for processing",
		Timestamp:       now,
	}, nil
}

func (s *Simulator) reference(at time.Time) string {
	var b strings.Builder
	b.WriteString("IRIS-")
	b.WriteString(at.UTC().Format(time.DateOnly))
	b.WriteByte('-')
	for range 6 {
		b.WriteByte(referenceAlphabet[s.rnd.IntN(len(referenceAlphabet))])
	}
	return b.String()
}

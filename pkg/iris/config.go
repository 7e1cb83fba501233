package iris

import "time"

// Config holds IRIS client settings. An empty BaseURL selects the simulator.
type Config struct {
	BaseURL       string        `env:"IRIS_BASE_URL"`
	APIKey        string        `env:"IRIS_API_KEY"`
	SigningSecret string        `env:"IRIS_SIGNING_SECRET"`
	Timeout       time.Duration `env:"IRIS_TIMEOUT" envDefault:"10s"`
	MaxRetries    int           `env:"IRIS_MAX_RETRIES" envDefault:"3"`

	BreakerFailures int           `env:"IRIS_BREAKER_FAILURES" envDefault:"5"`
	BreakerRecovery time.Duration `env:"IRIS_BREAKER_RECOVERY" envDefault:"30s"`

	// SimulatedFailureRate is the share of simulated submissions that fail.
	SimulatedFailureRate float64       `env:"IRIS_SIMULATED_FAILURE_RATE" envDefault:"0.1"`
	SimulatedLatency     time.Duration `env:"IRIS_SIMULATED_LATENCY" envDefault:"0s"`
}

// Simulated reports whether no real IRIS endpoint is configured.
func (c Config) Simulated() bool {
	return c.BaseURL == ""
}

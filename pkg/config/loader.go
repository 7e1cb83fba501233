package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type options struct {
	files   []string
	prefix  string
	environ map[string]string
}

type Option func(*options)

// WithEnvFiles sets the .env files read before parsing. Files that do not
// exist are skipped. Default is ".env".
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = files
	}
}

// WithPrefix requires every variable name to carry prefix, so that
// `env:"PORT"` reads APP_PORT with prefix "APP_".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment parses vars instead of the process environment. Values
// from env files are used only for keys missing from vars.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		o.environ = vars
	}
}

// Load parses environment variables into a new T based on its env tags.
//
// Example:
//
//	type IRISConfig struct {
//		BaseURL string        `env:"IRIS_BASE_URL"`
//		Timeout time.Duration `env:"IRIS_TIMEOUT" envDefault:"10s"`
//	}
//
//	cfg, err := config.Load[IRISConfig]()
func Load[T any](opts ...Option) (T, error) {
	o := &options{files: []string{".env"}}
	for _, opt := range opts {
		opt(o)
	}

	var zero T
	parseOpts := env.Options{Prefix: o.prefix}

	if o.environ == nil {
		for _, f := range o.files {
			// Load never overrides variables already set in the process.
			if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return zero, errors.Join(ErrReadingEnvFile, fmt.Errorf("%s: %w", f, err))
			}
		}
	} else {
		vars := make(map[string]string)
		for _, f := range o.files {
			fileVars, err := godotenv.Read(f)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return zero, errors.Join(ErrReadingEnvFile, fmt.Errorf("%s: %w", f, err))
			}
			for k, v := range fileVars {
				if _, ok := vars[k]; !ok {
					vars[k] = v
				}
			}
		}
		maps.Copy(vars, o.environ)
		parseOpts.Environment = vars
	}

	cfg, err := env.ParseAsWithOptions[T](parseOpts)
	if err != nil {
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is Load that panics on error. Use it for configuration the
// service cannot start without.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

// Command irisprep serves the SI validation and IRIS submission API.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/irisprep/api"
	"github.com/dmitrymomot/irisprep/pkg/config"
	"github.com/dmitrymomot/irisprep/pkg/httpserver"
	"github.com/dmitrymomot/irisprep/pkg/iris"
	"github.com/dmitrymomot/irisprep/pkg/logger"
	"github.com/dmitrymomot/irisprep/pkg/ratelimiter"
	"github.com/dmitrymomot/irisprep/pkg/requestid"
	"github.com/dmitrymomot/irisprep/pkg/rules"
	"github.com/dmitrymomot/irisprep/pkg/submission"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"irisprep"`
	LogLevel string `env:"LOG_LEVEL"`

	HTTP       httpserver.Config
	API        api.Config
	IRIS       iris.Config
	Submission submission.Config
	RateLimit  ratelimiter.Config
}

func main() {
	cfg := config.MustLoad[appConfig]()

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			slog.Error("invalid LOG_LEVEL", logger.Error(err))
			os.Exit(1)
		}
		logOpts = append(logOpts, logger.WithLevel(lvl))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	reg := rules.New()

	sub, err := iris.New(cfg.IRIS, log.With(logger.Component("iris")))
	if err != nil {
		log.Error("failed to create IRIS client", logger.Error(err))
		os.Exit(1)
	}
	if cfg.IRIS.Simulated() {
		log.Warn("IRIS_BASE_URL not set, submissions go to the simulator",
			slog.Float64("failure_rate", cfg.IRIS.SimulatedFailureRate))
	}

	svc := submission.NewService(reg, sub,
		submission.WithStore(submission.NewMemoryStore(cfg.Submission.StoreCapacity)),
		submission.WithLogger(log.With(logger.Component("submission"))),
	)

	limitStore := ratelimiter.NewMemoryStore()
	defer limitStore.Close()
	limiter, err := ratelimiter.NewBucket(limitStore, cfg.RateLimit)
	if err != nil {
		log.Error("invalid rate limit config", logger.Error(err))
		os.Exit(1)
	}

	router := api.New(cfg.API, reg, svc,
		api.WithLogger(log),
		api.WithReadinessChecks(iris.Ready(sub)),
		api.WithSubmitLimiter(limiter),
	)

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(context.Background(), router); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		limitStore.Close()
		os.Exit(1)
	}
}

// Package config loads env-tagged configuration structs with
// github.com/caarlos0/env and .env files via github.com/joho/godotenv.
//
// Each component declares its own Config struct; the service entry point
// loads them one by one:
//
//	srv := config.MustLoad[httpserver.Config]()
//	irisCfg, err := config.Load[iris.Config](config.WithEnvFiles(".env", ".env.local"))
//
// Nothing is cached. Tests pass WithEnvironment to avoid touching the
// process environment.
package config

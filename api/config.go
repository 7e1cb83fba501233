package api

import "time"

type Config struct {
	BodyLimit      int64         `env:"API_BODY_LIMIT" envDefault:"1048576"`
	RequestTimeout time.Duration `env:"API_REQUEST_TIMEOUT" envDefault:"55s"`
}

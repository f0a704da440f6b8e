package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/lexbot/pkg/log"
)

type HTTPConfig struct {
	Addr         string        `env:"HTTP_ADDR" envDefault:"127.0.0.1:5000"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	// Chat replies get 90% of it, a longer rate limited scrape answers with a network error.
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"90s"`
}

func LoadHTTPConfig() (*HTTPConfig, error) {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	return c, nil
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c, err := LoadHTTPConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse HTTP config")
	}
	return c
}

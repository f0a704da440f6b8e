package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/pkg/log"
)

type ScraperConfig struct {
	UserAgent string        `env:"SCRAPE_USER_AGENT" envDefault:"Mozilla/5.0"`
	Timeout   time.Duration `env:"SCRAPE_TIMEOUT" envDefault:"10s"`

	// At most RateCalls fetches per RatePeriod, at least MinInterval apart.
	RateCalls   int           `env:"SCRAPE_RATE_CALLS" envDefault:"10"`
	RatePeriod  time.Duration `env:"SCRAPE_RATE_PERIOD" envDefault:"60s"`
	MinInterval time.Duration `env:"SCRAPE_MIN_INTERVAL" envDefault:"1s"`

	MaxBodyBytes int64  `env:"SCRAPE_MAX_BODY_BYTES" envDefault:"2097152"`
	// Extra attempts after a network error. Status errors are never retried.
	MaxRetries   int    `env:"SCRAPE_MAX_RETRIES" envDefault:"0"`
	TextMode     string `env:"SCRAPE_TEXT_MODE" envDefault:"plain"`
	PreviewChars int    `env:"SCRAPE_PREVIEW_CHARS" envDefault:"500"`
}

func LoadScraperConfig() (*ScraperConfig, error) {
	c := &ScraperConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if c.UserAgent == "" {
		c.UserAgent = core.DefaultUserAgent
	}
	return c, nil
}

func NewScraperConfig(ctx context.Context) *ScraperConfig {
	c, err := LoadScraperConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Scraper config")
	}
	return c
}

func (c *ScraperConfig) validate() error {
	switch {
	case c.Timeout <= 0:
		return fmt.Errorf("SCRAPE_TIMEOUT must be positive, got %s", c.Timeout)
	case c.RateCalls < 0:
		return fmt.Errorf("SCRAPE_RATE_CALLS must not be negative, got %d", c.RateCalls)
	case c.RateCalls > 0 && c.RatePeriod <= 0:
		return fmt.Errorf("SCRAPE_RATE_PERIOD must be positive, got %s", c.RatePeriod)
	case c.MinInterval < 0:
		return fmt.Errorf("SCRAPE_MIN_INTERVAL must not be negative, got %s", c.MinInterval)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("SCRAPE_MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	case c.MaxRetries < 0:
		return fmt.Errorf("SCRAPE_MAX_RETRIES must not be negative, got %d", c.MaxRetries)
	case c.TextMode != "plain" && c.TextMode != "pretty":
		return fmt.Errorf("SCRAPE_TEXT_MODE must be plain or pretty, got %q", c.TextMode)
	case c.PreviewChars <= 0:
		return fmt.Errorf("SCRAPE_PREVIEW_CHARS must be positive, got %d", c.PreviewChars)
	}
	return nil
}

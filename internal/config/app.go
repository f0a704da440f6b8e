package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/lexbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"LEXBOT_RUNTIME_PATH" envDefault:".lexbot"`

	// Transport Flags
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"true"`
	EnableHTTP     bool `env:"ENABLE_HTTP" envDefault:"false"`
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// Exchanges returned per history request, 0 for all of them.
	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"100"`

	// Knowledge base file, empty for the built-in one.
	KnowledgePath  string  `env:"KNOWLEDGE_PATH"`
	MatchThreshold float64 `env:"MATCH_THRESHOLD" envDefault:"0.6"`
}

func LoadAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if c.MatchThreshold < 0 || c.MatchThreshold >= 1 {
		return nil, fmt.Errorf("MATCH_THRESHOLD must be in [0, 1), got %v", c.MatchThreshold)
	}
	if c.HistoryLimit < 0 {
		return nil, fmt.Errorf("HISTORY_LIMIT must not be negative, got %d", c.HistoryLimit)
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := LoadAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "lexbot.db")
}

// GetKnowledgePath returns KNOWLEDGE_PATH, relative paths resolved against the
// runtime directory.
func (c AppConfig) GetKnowledgePath() string {
	if c.KnowledgePath == "" || filepath.IsAbs(c.KnowledgePath) {
		return c.KnowledgePath
	}
	return filepath.Join(c.RuntimePath, c.KnowledgePath)
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

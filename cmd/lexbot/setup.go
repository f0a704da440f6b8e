package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/sandevgo/lexbot/internal/config"
	"github.com/sandevgo/lexbot/internal/observability/metrics"
	"github.com/sandevgo/lexbot/internal/providers/knowledge"
	"github.com/sandevgo/lexbot/internal/providers/nlp"
	"github.com/sandevgo/lexbot/internal/providers/tools"
	"github.com/sandevgo/lexbot/internal/service/chat"
	"github.com/sandevgo/lexbot/internal/service/command"
	"github.com/sandevgo/lexbot/internal/service/matcher"
	"github.com/sandevgo/lexbot/internal/service/responder"
	"github.com/sandevgo/lexbot/internal/storage/sqlite"
	"github.com/sandevgo/lexbot/internal/transport/cli"
	"github.com/sandevgo/lexbot/internal/transport/telegram"
	"github.com/sandevgo/lexbot/internal/transport/web"
	"github.com/sandevgo/lexbot/pkg/log"
	"github.com/sandevgo/lexbot/pkg/ratelimit"
	"github.com/sandevgo/lexbot/pkg/srv"
)

// app holds the components shared by every command.
type app struct {
	cfg     *config.AppConfig
	metrics *metrics.Metrics
	db      *sqlx.DB
	chat    *chat.Service
}

// newMatcher loads the knowledge base and fits the model once.
func newMatcher(ctx context.Context, cfg *config.AppConfig) (*matcher.Matcher, *nlp.Normalizer, error) {
	normalizer, err := nlp.NewEnglishNormalizer()
	if err != nil {
		return nil, nil, err
	}

	entries, err := knowledge.Load(cfg.GetKnowledgePath())
	if err != nil {
		return nil, nil, err
	}

	m, err := matcher.NewFromEntries(normalizer, entries, cfg.MatchThreshold)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build matcher: %w", err)
	}

	log.FromCtx(ctx).Debug().
		Int("entries", len(entries)).
		Float64("threshold", cfg.MatchThreshold).
		Msg("knowledge base fitted")
	return m, normalizer, nil
}

func newFetcher(scrapeCfg *config.ScraperConfig, m *metrics.Metrics) *tools.Fetch {
	limiter := ratelimit.New(ratelimit.Config{
		Calls:       scrapeCfg.RateCalls,
		Period:      scrapeCfg.RatePeriod,
		MinInterval: scrapeCfg.MinInterval,
	})

	return tools.NewFetch(tools.FetchConfig{
		UserAgent:    scrapeCfg.UserAgent,
		Timeout:      scrapeCfg.Timeout,
		MaxBodyBytes: scrapeCfg.MaxBodyBytes,
		Mode:         tools.TextMode(scrapeCfg.TextMode),
		MaxRetries:   scrapeCfg.MaxRetries,
	}, limiter, tools.WithRecorder(m))
}

// newApp builds everything up to the chat service. The caller closes db.
func newApp(ctx context.Context) (*app, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid app config: %w", err)
	}
	scrapeCfg, err := config.LoadScraperConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid scraper config: %w", err)
	}

	mt, _, err := newMatcher(ctx, appCfg)
	if err != nil {
		return nil, err
	}

	splitter, err := nlp.NewSentenceSplitter()
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	router := command.NewRouter(newFetcher(scrapeCfg, m), scrapeCfg.PreviewChars)
	resp := responder.New(router, mt, splitter)

	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &app{
		cfg:     appCfg,
		metrics: m,
		db:      db,
		chat:    chat.NewService(resp, sqlite.NewConversationRepo(db), m, appCfg.HistoryLimit),
	}, nil
}

func NewServices(ctx context.Context, stop func()) []srv.Service {
	logger := log.FromCtx(ctx)

	a, err := newApp(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize")
	}

	services := []srv.Service{srv.NewCleanup("sqlite", a.db.Close)}

	transports, err := initTransports(ctx, a, stop)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Fatal().Msg("no transport enabled, set ENABLE_CLI, ENABLE_HTTP or ENABLE_TELEGRAM")
	}

	return append(services, transports...)
}

func initTransports(ctx context.Context, a *app, stop func()) ([]srv.Service, error) {
	var services []srv.Service

	if a.cfg.EnableHTTP {
		httpCfg := config.NewHTTPConfig(ctx)
		server, err := web.NewServer(ctx, httpCfg, a.chat, a.metrics)
		if err != nil {
			return nil, err
		}
		services = append(services, server)
	}

	if a.cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.chat)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if a.cfg.EnableCLI {
		rl, err := cli.NewReadLine(a.chat, a.cfg, stop)
		if err != nil {
			return nil, err
		}
		services = append(services, rl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

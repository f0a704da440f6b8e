package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/pkg/log"
	"github.com/sandevgo/lexbot/pkg/retry"
)

const (
	defaultFetchTimeout = 10 * time.Second
	defaultMaxBodyBytes = 2 << 20
	scanChunk           = 32 << 10
)

// disallowMarker anywhere in the raw body means the site does not want to be
// scraped. It is a plain substring test, not robots.txt parsing.
var disallowMarker = []byte("Disallow")

type Limiter interface {
	Acquire(ctx context.Context) error
}

type Recorder interface {
	RecordFetch(outcome string, duration time.Duration)
	ObserveLimiterWait(wait time.Duration)
}

type FetchConfig struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
	Mode         TextMode
	MaxRetries   int
}

func NewDefaultFetchConfig() FetchConfig {
	return FetchConfig{
		UserAgent:    core.DefaultUserAgent,
		Timeout:      defaultFetchTimeout,
		MaxBodyBytes: defaultMaxBodyBytes,
		Mode:         TextPlain,
	}
}

type FetchOption func(*Fetch)

func WithHTTPClient(client *http.Client) FetchOption {
	return func(f *Fetch) {
		f.client = client
	}
}

// WithRetryConfig replaces the retry policy derived from FetchConfig.MaxRetries.
func WithRetryConfig(cfg *retry.Config) FetchOption {
	return func(f *Fetch) {
		f.retrier = retry.NewRetrier(cfg)
	}
}

func WithRecorder(r Recorder) FetchOption {
	return func(f *Fetch) {
		f.recorder = r
	}
}

// Fetch downloads a single page and reduces it to plain text. Every attempt,
// retries included, first passes the shared limiter.
type Fetch struct {
	cfg      FetchConfig
	client   *http.Client
	limiter  Limiter
	retrier  *retry.Retrier
	recorder Recorder
}

func NewFetch(cfg FetchConfig, limiter Limiter, opts ...FetchOption) *Fetch {
	def := NewDefaultFetchConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if !cfg.Mode.Valid() {
		cfg.Mode = def.Mode
	}

	retryCfg := retry.NoRetryConfig()
	if cfg.MaxRetries > 0 {
		retryCfg = retry.NewDefaultConfig()
		retryCfg.MaxRetries = cfg.MaxRetries
		retryCfg.ShouldRetry = IsRetryable
	}

	f := &Fetch{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		retrier: retry.NewRetrier(retryCfg),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the page text, or a *core.FetchError.
func (f *Fetch) Fetch(ctx context.Context, rawURL string) (core.FetchResult, error) {
	logger := log.FromCtx(ctx).With().Str("url", rawURL).Logger()
	start := time.Now()

	if err := validateURL(rawURL); err != nil {
		f.record(string(core.FetchNetwork), start)
		return core.FetchResult{}, &core.FetchError{Kind: core.FetchNetwork, URL: rawURL, Err: err}
	}

	var result core.FetchResult
	err := f.retrier.Do(ctx, func() error {
		res, err := f.fetchOnce(ctx, rawURL)
		if err != nil {
			logger.Debug().Err(err).Msg("fetch attempt failed")
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		var fe *core.FetchError
		if !errors.As(err, &fe) {
			// retry backoff interrupted by ctx
			fe = &core.FetchError{Kind: core.FetchNetwork, URL: rawURL, Err: err}
		}
		f.record(string(fe.Kind), start)
		logger.Warn().Err(fe).Str("kind", string(fe.Kind)).Msg("fetch failed")
		return core.FetchResult{}, fe
	}

	outcome := "ok"
	if result.Disallowed {
		outcome = "disallowed"
	}
	f.record(outcome, start)
	logger.Info().
		Str("outcome", outcome).
		Int("chars", len(result.Text)).
		Bool("truncated", result.Truncated).
		Dur("took", time.Since(start)).
		Msg("page fetched")

	return result, nil
}

func (f *Fetch) fetchOnce(ctx context.Context, rawURL string) (core.FetchResult, error) {
	waitStart := time.Now()
	if err := f.limiter.Acquire(ctx); err != nil {
		return core.FetchResult{}, &core.FetchError{
			Kind: core.FetchNetwork,
			URL:  rawURL,
			Err:  fmt.Errorf("rate limiter: %w", err),
		}
	}
	if f.recorder != nil {
		f.recorder.ObserveLimiterWait(time.Since(waitStart))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return core.FetchResult{}, &core.FetchError{Kind: core.FetchNetwork, URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return core.FetchResult{}, &core.FetchError{Kind: core.FetchNetwork, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.FetchResult{}, &core.FetchError{Kind: core.FetchHTTPStatus, URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes+1))
	if err != nil {
		return core.FetchResult{}, &core.FetchError{
			Kind: core.FetchNetwork,
			URL:  rawURL,
			Err:  fmt.Errorf("failed to read body: %w", err),
		}
	}

	disallowed := bytes.Contains(body, disallowMarker)

	var truncated bool
	if int64(len(body)) > f.cfg.MaxBodyBytes {
		// the marker test covers the whole body, only the text is capped
		if !disallowed {
			disallowed, err = scanForMarker(resp.Body, body)
			if err != nil {
				return core.FetchResult{}, &core.FetchError{
					Kind: core.FetchNetwork,
					URL:  rawURL,
					Err:  fmt.Errorf("failed to read body: %w", err),
				}
			}
		}
		body = body[:f.cfg.MaxBodyBytes]
		truncated = true
	}

	if disallowed {
		return core.FetchResult{Text: core.DisallowedText, Disallowed: true, Truncated: truncated}, nil
	}

	text, err := extractText(body, f.cfg.Mode)
	if err != nil {
		return core.FetchResult{}, &core.FetchError{Kind: core.FetchInternal, URL: rawURL, Err: err}
	}

	return core.FetchResult{Text: text, Truncated: truncated}, nil
}

// scanForMarker streams the rest of r looking for disallowMarker, including a
// match that starts in the tail of seen.
func scanForMarker(r io.Reader, seen []byte) (bool, error) {
	keep := len(disallowMarker) - 1
	window := make([]byte, 0, scanChunk+keep)
	window = append(window, seen[len(seen)-min(keep, len(seen)):]...)

	buf := make([]byte, scanChunk)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			window = append(window, buf[:n]...)
			if bytes.Contains(window, disallowMarker) {
				return true, nil
			}
			window = append(window[:0], window[len(window)-min(keep, len(window)):]...)
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
}

func (f *Fetch) record(outcome string, start time.Time) {
	if f.recorder != nil {
		f.recorder.RecordFetch(outcome, time.Since(start))
	}
}

// IsRetryable reports whether another attempt could succeed. Only network
// failures qualify.
func IsRetryable(err error) bool {
	return core.AsFetchError(err).Kind == core.FetchNetwork
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL %q: no http or https scheme supplied", rawURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: no host supplied", rawURL)
	}
	return nil
}

// Package web serves the chat page, a JSON API, a WebSocket endpoint and the
// prometheus metrics.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sandevgo/lexbot/internal/config"
	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/internal/observability/metrics"
	"github.com/sandevgo/lexbot/internal/service/chat"
	"github.com/sandevgo/lexbot/pkg/log"
)

const transportName = "http"

//go:embed templates/*.html
var templateFS embed.FS

type ChatHandler interface {
	Handle(ctx context.Context, msg chat.Message) core.Exchange
	History(ctx context.Context, sessionID string) ([]core.Exchange, error)
}

type Server struct {
	cfg      *config.HTTPConfig
	chat     ChatHandler
	metrics  *metrics.Metrics
	page     *template.Template
	upgrader websocket.Upgrader
	http     *http.Server
}

// NewServer builds the server. m may be nil, /metrics is then not served.
func NewServer(ctx context.Context, cfg *config.HTTPConfig, chat ChatHandler, m *metrics.Metrics) (*Server, error) {
	page, err := template.New("chat.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/chat.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		chat:    chat,
		metrics: m,
		page:    page,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}

	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	return s, nil
}

// Handler returns the routed handler with logging and metrics middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /{$}", s.handlePagePost)
	mux.HandleFunc("POST /api/chat", s.handleAPIChat)
	mux.HandleFunc("GET /api/history", s.handleAPIHistory)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	return requestIDMiddleware(accessLogMiddleware(s.metrics.Middleware(mux)))
}

// replyContext bounds the answer to a request so it is ready before
// WriteTimeout closes the connection. A rate limited scrape then ends with a
// network error reply instead of a dropped response.
func (s *Server) replyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.WriteTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.WriteTimeout*9/10)
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.cfg.Addr).Msg("starting http server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) String() string {
	return "http"
}

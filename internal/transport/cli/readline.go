package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/lexbot/internal/config"
	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/internal/service/chat"
	"github.com/sandevgo/lexbot/internal/service/ui"
	"github.com/sandevgo/lexbot/pkg/log"
)

const (
	defaultSessionID = "cli-local"
	transportName    = "cli"
)

type ChatHandler interface {
	Handle(ctx context.Context, msg chat.Message) core.Exchange
}

type ReadLine struct {
	cfg    *config.AppConfig
	chat   ChatHandler
	rl     *readline.Instance
	user   string
	onExit func()
}

// NewReadLine creates the terminal chat. onExit, if set, runs when the user
// leaves so the rest of the process can stop too.
func NewReadLine(chat ChatHandler, cfg *config.AppConfig, onExit func()) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ui.UserStyle.Render("you") + " > ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	user := os.Getenv("USER")
	if user == "" {
		user = core.GuestUser
	}

	return &ReadLine{
		cfg:    cfg,
		chat:   chat,
		rl:     rl,
		user:   user,
		onExit: onExit,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit.")
	if r.onExit != nil {
		defer r.onExit()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if !r.handleLine(ctx, r.rl.Stdout(), line) {
			return nil
		}
	}
}

// handleLine answers one input line. It returns false when the user asked to
// leave.
func (r *ReadLine) handleLine(ctx context.Context, out io.Writer, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "exit" {
		return false
	}
	if trimmed == "" {
		return true
	}

	ex := r.chat.Handle(ctx, chat.Message{
		SessionID: defaultSessionID,
		User:      r.user,
		Text:      line,
		Transport: transportName,
	})
	fmt.Fprintf(out, "%s > %s\n", ui.BotStyle.Render(core.BotName), ex.Response)
	return true
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

func (r *ReadLine) String() string {
	return "cli"
}

// Package responder decides how the bot answers one line of user input.
package responder

import (
	"context"
	"fmt"

	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/pkg/log"
)

const (
	msgUnknown     = "I'm not sure how to respond to that."
	msgUnknownEcho = `I'm not sure how to respond to that. You said: "%s"`
)

type Matcher interface {
	Resolve(query string) (string, bool)
}

// Responder tries commands first, then the knowledge base, then echoes the
// first sentence back. It keeps no state between calls.
type Responder struct {
	commands  core.CmdRouter
	matcher   Matcher
	sentences core.SentenceSplitter
}

func New(commands core.CmdRouter, matcher Matcher, sentences core.SentenceSplitter) *Responder {
	return &Responder{
		commands:  commands,
		matcher:   matcher,
		sentences: sentences,
	}
}

func (r *Responder) Respond(ctx context.Context, input string) core.Reply {
	logger := log.FromCtx(ctx)

	if reply, ok := r.commands.Execute(ctx, core.SessionFromCtx(ctx), input); ok {
		logger.Debug().Str("kind", string(core.ReplyCommand)).Msg("command handled")
		return core.Reply{Text: reply, Kind: core.ReplyCommand}
	}

	if answer, ok := r.matcher.Resolve(input); ok {
		logger.Debug().Str("kind", string(core.ReplyMatch)).Msg("knowledge match")
		return core.Reply{Text: answer, Kind: core.ReplyMatch}
	}

	logger.Debug().Str("kind", string(core.ReplyFallback)).Msg("no match")
	if sents := r.sentences.Sentences(input); len(sents) > 0 {
		return core.Reply{Text: fmt.Sprintf(msgUnknownEcho, sents[0]), Kind: core.ReplyFallback}
	}
	return core.Reply{Text: msgUnknown, Kind: core.ReplyFallback}
}

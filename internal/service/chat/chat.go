// Package chat runs one user message through the responder and keeps the
// conversation log. Every transport talks to the bot through it.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/pkg/log"
)

type Recorder interface {
	RecordReply(kind, transport string)
	RecordPersistFailure()
}

type Message struct {
	SessionID string
	User      string
	Text      string
	// Transport names the caller in logs and metrics, e.g. "http" or "telegram".
	Transport string
}

type Service struct {
	responder    core.Responder
	repo         core.ConversationRepository
	recorder     Recorder
	historyLimit int
	now          func() time.Time
}

func NewService(responder core.Responder, repo core.ConversationRepository, recorder Recorder, historyLimit int) *Service {
	return &Service{
		responder:    responder,
		repo:         repo,
		recorder:     recorder,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

// Handle answers msg and appends the exchange to the log. A failed write is
// logged and counted but the reply is still returned.
func (s *Service) Handle(ctx context.Context, msg Message) core.Exchange {
	if msg.User == "" {
		msg.User = core.GuestUser
	}

	logger := log.FromCtx(ctx).With().
		Str("session_id", msg.SessionID).
		Str("transport", msg.Transport).
		Logger()
	ctx = logger.WithContext(core.WithSession(ctx, msg.SessionID))

	start := s.now()
	reply := s.responder.Respond(ctx, msg.Text)

	ex := core.Exchange{
		SessionID: msg.SessionID,
		User:      msg.User,
		Input:     msg.Text,
		Response:  reply.Text,
		Kind:      reply.Kind,
		CreatedAt: start,
	}

	// the reply is final once computed, so it is kept even past the caller's deadline
	id, err := s.repo.Append(context.WithoutCancel(ctx), ex)
	if err != nil {
		logger.Error().Err(err).Msg("failed to save exchange")
		if s.recorder != nil {
			s.recorder.RecordPersistFailure()
		}
	}
	ex.ID = id

	if s.recorder != nil {
		s.recorder.RecordReply(string(reply.Kind), msg.Transport)
	}
	logger.Info().
		Str("kind", string(reply.Kind)).
		Dur("took", s.now().Sub(start)).
		Msg("message answered")

	return ex
}

// History returns the latest exchanges of a session, oldest first. An empty
// sessionID returns the log of every session.
func (s *Service) History(ctx context.Context, sessionID string) ([]core.Exchange, error) {
	exchanges, err := s.repo.List(ctx, sessionID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return exchanges, nil
}

package telegram

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/lexbot/pkg/conv"
	"github.com/sandevgo/lexbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

// Telegram allows 4096 characters per message
const maxMessageLen = 4000

// messenger is the part of *tele.Bot used to deliver replies.
type messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type sender struct {
	bot messenger
}

func newSender(bot messenger) *sender {
	return &sender{bot: bot}
}

// sendReply delivers a Markdown reply as Telegram HTML. If Telegram refuses the
// markup the reply is sent again as plain text, so the user still gets an answer.
func (s *sender) sendReply(ctx context.Context, to tele.Recipient, md string) error {
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return nil
	}

	err := s.send(to, splitMessage(html, maxMessageLen), tele.ModeHTML)
	if err == nil {
		return nil
	}

	log.FromCtx(ctx).Warn().Err(err).Msg("html reply rejected, sending plain text")
	return s.send(to, splitMessage(md, maxMessageLen))
}

func (s *sender) send(to tele.Recipient, chunks []string, opts ...interface{}) error {
	for _, chunk := range chunks {
		if _, err := s.bot.Send(to, chunk, opts...); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage cuts text into pieces of at most maxLen bytes, preferring line
// breaks in the last two thirds of a piece. Runes are never split.
func splitMessage(text string, maxLen int) []string {
	var chunks []string
	for len(text) > maxLen {
		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = maxLen
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

package core

import "time"

const (
	BotName       = "LexBot"
	RepositoryURL = "https://github.com/sandevgo/lexbot"
	Version       = "0.1.0"

	// DefaultUserAgent is sent on scrape requests. Some sites refuse clients
	// that do not look like a browser.
	DefaultUserAgent = "Mozilla/5.0"

	// GuestUser is recorded for exchanges coming from anonymous transports.
	GuestUser = "guest"
)

// ReplyKind tells which branch of the responder produced a reply.
type ReplyKind string

const (
	ReplyCommand  ReplyKind = "command"
	ReplyMatch    ReplyKind = "match"
	ReplyFallback ReplyKind = "fallback"
)

type Reply struct {
	Text string
	Kind ReplyKind
}

// Exchange is one entry of the conversation log.
type Exchange struct {
	ID        int64     `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	User      string    `db:"user" json:"user"`
	Input     string    `db:"user_input" json:"user_input"`
	Response  string    `db:"bot_response" json:"bot_response"`
	Kind      ReplyKind `db:"kind" json:"kind"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

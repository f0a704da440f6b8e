package core

import "context"

// ConversationRepository is the append-only conversation log.
type ConversationRepository interface {
	Append(ctx context.Context, ex Exchange) (int64, error)
	// List returns exchanges in insertion order. An empty sessionID lists all
	// sessions, limit <= 0 means no limit (otherwise the most recent ones).
	List(ctx context.Context, sessionID string, limit int) ([]Exchange, error)
}

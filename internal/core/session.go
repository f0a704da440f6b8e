package core

import "context"

type sessionKey struct{}

// WithSession stores the conversation session id in ctx.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionFromCtx returns the session id stored by WithSession, or "".
func SessionFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

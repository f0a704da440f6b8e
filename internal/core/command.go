package core

import "context"

type CmdRouter interface {
	// Execute runs the command named by input. handled is false when input is
	// not a command and should be answered by someone else.
	Execute(ctx context.Context, sessionID, input string) (reply string, handled bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args string) (string, error)
}

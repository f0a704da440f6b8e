package command

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/sandevgo/lexbot/internal/core"
)

type Option func(*Router)

// WithWordCommands lets the named commands run without the slash prefix when
// their name is the first word of the input and is followed by whitespace.
func WithWordCommands(names ...string) Option {
	return func(r *Router) {
		for _, name := range names {
			if cmd, ok := r.commands[name]; ok {
				r.words[name] = cmd
			}
		}
	}
}

type Router struct {
	commands map[string]core.Command
	words    map[string]core.Command
}

func New(commands []core.Command, opts ...Option) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
		words:    make(map[string]core.Command),
	}

	for _, cmd := range commands {
		c.commands[strings.ToLower(cmd.Name())] = cmd
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	trimmed := strings.TrimLeftFunc(input, unicode.IsSpace)

	if strings.HasPrefix(trimmed, "/") {
		name, args := splitCommand(strings.TrimPrefix(trimmed, "/"))
		// unknown names are ordinary text, e.g. a path
		if cmd, ok := c.commands[strings.ToLower(name)]; ok {
			return c.run(ctx, cmd, sessionID, args), true
		}
		return "", false
	}

	name, args := splitCommand(trimmed)
	if len(name) == len(trimmed) {
		// a bare word without anything after it is ordinary text
		return "", false
	}
	cmd, ok := c.words[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return c.run(ctx, cmd, sessionID, args), true
}

func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name() < res[j].Name()
	})
	return res
}

func (c *Router) run(ctx context.Context, cmd core.Command, sessionID, args string) string {
	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return result
}

// splitCommand returns the first word and the trimmed remainder.
func splitCommand(s string) (name, args string) {
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx:])
}

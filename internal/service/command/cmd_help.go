package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/lexbot/internal/core"
)

type HelpCommand struct {
	list      func() []core.Command
	formatter *ResponseFormatter
}

// NewHelpCommand lists whatever list returns at execution time, so it can be
// registered in the router it describes.
func NewHelpCommand(list func() []core.Command) *HelpCommand {
	return &HelpCommand{
		list:      list,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, sessionID string, args string) (string, error) {
	cmds := c.list()
	items := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		items = append(items, fmt.Sprintf("`/%s` %s", cmd.Name(), cmd.Description()))
	}

	return c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(items),
		c.formatter.Usage("scrape <url>"),
	), nil
}

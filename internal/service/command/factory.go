package command

import (
	"github.com/sandevgo/lexbot/internal/core"
)

// NewRouter registers the bot commands. scrape also works without the slash.
func NewRouter(fetcher core.Fetcher, previewChars int) *Router {
	var r *Router
	help := NewHelpCommand(func() []core.Command { return r.ListCommands() })

	r = New([]core.Command{
		NewScrapeCommand(fetcher, previewChars),
		help,
	}, WithWordCommands("scrape"))
	return r
}

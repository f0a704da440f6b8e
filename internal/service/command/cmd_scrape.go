package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/pkg/log"
)

const DefaultPreviewChars = 500

const (
	msgNoURL           = "Please provide a URL to scrape."
	msgAccessError     = "Error accessing URL: %s"
	msgUnexpectedError = "An unexpected error occurred during scraping: %s"
	msgScraped         = "Successfully scraped content from %s:"
)

// ScrapeCommand fetches one page and answers with a preview of its text.
// Fetch failures become reply text, Execute never returns an error.
type ScrapeCommand struct {
	fetcher      core.Fetcher
	previewChars int
	formatter    *ResponseFormatter
}

func NewScrapeCommand(fetcher core.Fetcher, previewChars int) *ScrapeCommand {
	if previewChars <= 0 {
		previewChars = DefaultPreviewChars
	}
	return &ScrapeCommand{
		fetcher:      fetcher,
		previewChars: previewChars,
		formatter:    NewResponseFormatter(),
	}
}

func (c *ScrapeCommand) Name() string {
	return "scrape"
}

func (c *ScrapeCommand) Description() string {
	return "Fetch a web page and show the beginning of its text"
}

func (c *ScrapeCommand) Execute(ctx context.Context, sessionID string, args string) (string, error) {
	if args == "" {
		return msgNoURL, nil
	}

	res, err := c.fetcher.Fetch(ctx, args)
	if err != nil {
		fe := core.AsFetchError(err)
		log.FromCtx(ctx).Debug().Err(err).Str("session_id", sessionID).Msg("scrape failed")
		if fe.Kind == core.FetchInternal {
			return fmt.Sprintf(msgUnexpectedError, fe.Error()), nil
		}
		return fmt.Sprintf(msgAccessError, fe.Error()), nil
	}

	if res.Disallowed {
		return res.Text, nil
	}

	return c.formatter.Combine(
		fmt.Sprintf(msgScraped, args),
		c.formatter.CodeBlock(Preview(res.Text, c.previewChars)),
	), nil
}

// Preview returns the first n runes of text, followed by "..." when text is
// longer than that.
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

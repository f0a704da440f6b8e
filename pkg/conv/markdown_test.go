package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const scrapeReply = "Successfully scraped content from example.com:\n\n```\nExample Domain\nMore information...\n```"

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{name: "empty", md: "", want: ""},
		{name: "knowledge answer", md: "Hello there! How can I help you today?", want: "Hello there! How can I help you today?\n"},
		{name: "emphasis", md: "**Commands** and *help*", want: "<strong>Commands</strong> and <em>help</em>\n"},
		{name: "inline code", md: "`/scrape` Fetch a page", want: "<code>/scrape</code> Fetch a page\n"},
		{
			name: "scrape preview",
			md:   scrapeReply,
			want: "Successfully scraped content from example.com:\n\n<pre><code>Example Domain\nMore information...\n</code></pre>\n",
		},
		{name: "script removed", md: "<script>alert('xss')</script>", want: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarkdownToTelegramHTML([]byte(tt.md)))
		})
	}
}

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name        string
		md          string
		contains    []string
		notContains []string
	}{
		{
			name:     "paragraph",
			md:       "**bold**",
			contains: []string{"<p><strong>bold</strong></p>"},
		},
		{
			name:     "scrape preview",
			md:       scrapeReply,
			contains: []string{"<pre><code>Example Domain\nMore information...\n</code></pre>"},
		},
		{
			name:        "script removed",
			md:          "<script>alert('xss')</script>",
			notContains: []string{"<script", "alert"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToHTML([]byte(tt.md))
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

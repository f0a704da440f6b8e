package tools

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/inbucket/html2text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type TextMode string

const (
	// TextPlain keeps every text node outside script, style and noscript, one
	// phrase per line.
	TextPlain TextMode = "plain"
	// TextPretty renders the page with html2text, keeping links and tables.
	TextPretty TextMode = "pretty"
)

func (m TextMode) Valid() bool {
	return m == TextPlain || m == TextPretty
}

func extractText(body []byte, mode TextMode) (string, error) {
	if mode == TextPretty {
		text, err := html2text.FromReader(bytes.NewReader(body), html2text.Options{
			PrettyTables: true,
		})
		if err != nil {
			return "", fmt.Errorf("failed to render page text: %w", err)
		}
		return strings.TrimSpace(text), nil
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var sb strings.Builder
	collectText(doc, &sb)
	return splitPhrases(sb.String()), nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode && skipped(n.DataAtom) {
		return
	}
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// skipped elements hold code or markup rather than page text. noscript
// content is parsed as raw markup when scripting is enabled.
func skipped(a atom.Atom) bool {
	return a == atom.Script || a == atom.Style || a == atom.Noscript
}

// splitPhrases puts every phrase on its own line. Phrases are separated by
// line breaks or by two or more spaces within a line.
func splitPhrases(text string) string {
	lines := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})

	var phrases []string
	for _, line := range lines {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				phrases = append(phrases, phrase)
			}
		}
	}
	return strings.Join(phrases, "\n")
}

package responder

import (
	"context"
	"testing"

	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/internal/providers/knowledge"
	"github.com/sandevgo/lexbot/internal/providers/nlp"
	"github.com/sandevgo/lexbot/internal/service/command"
	"github.com/sandevgo/lexbot/internal/service/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	calls int
}

func (s *stubFetcher) Fetch(context.Context, string) (core.FetchResult, error) {
	s.calls++
	return core.FetchResult{Text: "page text"}, nil
}

func newResponder(t *testing.T, fetcher core.Fetcher) *Responder {
	t.Helper()

	normalizer, err := nlp.NewEnglishNormalizer()
	require.NoError(t, err)
	splitter, err := nlp.NewSentenceSplitter()
	require.NoError(t, err)
	kb, err := knowledge.Default()
	require.NoError(t, err)
	m, err := matcher.NewFromEntries(normalizer, kb, matcher.DefaultThreshold)
	require.NoError(t, err)

	return New(command.NewRouter(fetcher, 0), m, splitter)
}

func TestResponder_Respond(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantKind     core.ReplyKind
		wantText     string
		wantContains string
	}{
		{
			name:     "fallback echoes first sentence",
			input:    "Remind me to buy milk.",
			wantKind: core.ReplyFallback,
			wantText: `I'm not sure how to respond to that. You said: "Remind me to buy milk."`,
		},
		{
			name:     "fallback keeps only the first sentence",
			input:    "Remind me to buy milk. Also eggs.",
			wantKind: core.ReplyFallback,
			wantText: `I'm not sure how to respond to that. You said: "Remind me to buy milk."`,
		},
		{
			name:     "blank input",
			input:    "   ",
			wantKind: core.ReplyFallback,
			wantText: "I'm not sure how to respond to that.",
		},
		{
			name:     "knowledge match",
			input:    "hello",
			wantKind: core.ReplyMatch,
			wantText: "Hello there! How can I help you today?",
		},
		{
			name:     "knowledge match with extra words",
			input:    "Tell me a joke, please",
			wantKind: core.ReplyMatch,
			wantText: "Why don't scientists trust atoms? Because they make up everything!",
		},
		{
			name:         "dynamic answer",
			input:        "what is the date?",
			wantKind:     core.ReplyMatch,
			wantContains: "Today's date is ",
		},
		{
			name:     "unknown slash name reaches the matcher",
			input:    "/tell me a joke",
			wantKind: core.ReplyMatch,
			wantText: "Why don't scientists trust atoms? Because they make up everything!",
		},
		{
			name:         "path reaches the fallback",
			input:        "/etc/passwd is a file.",
			wantKind:     core.ReplyFallback,
			wantContains: `You said: "/etc/passwd is a file."`,
		},
		{
			name:         "slash help stays a command",
			input:        "/help",
			wantKind:     core.ReplyCommand,
			wantContains: "scrape",
		},
		{
			name:     "scrape without url",
			input:    "scrape ",
			wantKind: core.ReplyCommand,
			wantText: "Please provide a URL to scrape.",
		},
		{
			name:         "scrape",
			input:        "scrape https://example.com",
			wantKind:     core.ReplyCommand,
			wantContains: "page text",
		},
	}

	r := newResponder(t, &stubFetcher{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := r.Respond(context.Background(), tt.input)

			assert.Equal(t, tt.wantKind, reply.Kind)
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, reply.Text)
			}
			if tt.wantContains != "" {
				assert.Contains(t, reply.Text, tt.wantContains)
			}
		})
	}
}

func TestResponder_ScrapeFetchesOnce(t *testing.T) {
	fetcher := &stubFetcher{}
	r := newResponder(t, fetcher)

	r.Respond(context.Background(), "scrape https://example.com")
	assert.Equal(t, 1, fetcher.calls)

	r.Respond(context.Background(), "scrape")
	assert.Equal(t, 1, fetcher.calls)
}

type recordingRouter struct {
	sessionID string
}

func (r *recordingRouter) Execute(_ context.Context, sessionID, _ string) (string, bool) {
	r.sessionID = sessionID
	return "", false
}

func (r *recordingRouter) ListCommands() []core.Command { return nil }

type noMatch struct{}

func (noMatch) Resolve(string) (string, bool) { return "", false }

type noSentences struct{}

func (noSentences) Sentences(string) []string { return nil }

func TestResponder_PassesSession(t *testing.T) {
	router := &recordingRouter{}
	r := New(router, noMatch{}, noSentences{})

	reply := r.Respond(core.WithSession(context.Background(), "abc"), "anything")

	assert.Equal(t, "abc", router.sessionID)
	assert.Equal(t, core.Reply{Text: "I'm not sure how to respond to that.", Kind: core.ReplyFallback}, reply)
}

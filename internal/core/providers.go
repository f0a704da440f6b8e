package core

import "context"

// Tokenizer turns raw text into normalized terms.
type Tokenizer interface {
	Tokens(text string) []string
}

type SentenceSplitter interface {
	Sentences(text string) []string
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchResult, error)
}

// Responder produces exactly one reply for every input.
type Responder interface {
	Respond(ctx context.Context, input string) Reply
}

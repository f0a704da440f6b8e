package nlp

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceSplitter segments text with the punkt English model.
type SentenceSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func NewSentenceSplitter() (*SentenceSplitter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence tokenizer: %w", err)
	}
	return &SentenceSplitter{tokenizer: tokenizer}, nil
}

// Sentences returns the trimmed, non-empty sentences of text.
func (s *SentenceSplitter) Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []string
	for _, sent := range s.tokenizer.Tokenize(text) {
		if t := strings.TrimSpace(sent.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

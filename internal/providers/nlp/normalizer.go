// Package nlp holds the text processing shared by the matcher: normalization
// into lemmatized terms and sentence segmentation.
package nlp

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Lemmatizer reduces a lowercase word to its dictionary form.
type Lemmatizer interface {
	Lemma(word string) string
}

// englishLemmatizer loads the dictionary once per process, it is large.
var englishLemmatizer = sync.OnceValues(func() (*golem.Lemmatizer, error) {
	return golem.New(en.New())
})

// Normalizer lowercases text, keeps alphabetic words, removes stop-words and
// reduces the rest to their lemma. It is safe for concurrent use.
type Normalizer struct {
	stopWords  map[string]struct{}
	lemmatizer Lemmatizer
}

func NewNormalizer(lemmatizer Lemmatizer) *Normalizer {
	return &Normalizer{
		stopWords:  stopWordSet(englishStopWords),
		lemmatizer: lemmatizer,
	}
}

// NewEnglishNormalizer uses the golem English dictionary.
func NewEnglishNormalizer() (*Normalizer, error) {
	lemmatizer, err := englishLemmatizer()
	if err != nil {
		return nil, fmt.Errorf("failed to load english lemmatizer: %w", err)
	}
	return NewNormalizer(lemmatizer), nil
}

// Tokens returns the normalized terms of raw in input order.
func (n *Normalizer) Tokens(raw string) []string {
	words := strings.FieldsFunc(strings.ToLower(raw), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if !isAlpha(w) {
			continue
		}
		if _, stop := n.stopWords[w]; stop {
			continue
		}
		if n.lemmatizer != nil {
			if lemma := n.lemmatizer.Lemma(w); lemma != "" {
				w = lemma
			}
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func (n *Normalizer) Normalize(raw string) string {
	return strings.Join(n.Tokens(raw), " ")
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

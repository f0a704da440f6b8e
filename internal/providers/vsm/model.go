// Package vsm implements the TF-IDF vector space used to compare queries with
// knowledge base questions.
package vsm

import (
	"math"
	"slices"

	"github.com/sandevgo/lexbot/internal/core"
)

// Model is fitted once and read-only afterwards; it is safe for concurrent use.
type Model struct {
	tokenizer  core.Tokenizer
	vocabulary map[string]int
	terms      []string
	idf        []float64
	docs       []Vector
}

// Fit builds the vocabulary and idf weights from corpus and caches one
// normalized tf-idf vector per document, in corpus order.
//
// idf(t) = ln((1+N) / (1+df(t))) + 1
func Fit(tokenizer core.Tokenizer, corpus []string) *Model {
	tokenized := make([][]string, len(corpus))
	df := make(map[string]int)
	for i, doc := range corpus {
		tokens := tokenizer.Tokens(doc)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	slices.Sort(terms)

	m := &Model{
		tokenizer:  tokenizer,
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
		docs:       make([]Vector, len(corpus)),
	}

	n := float64(len(corpus))
	for i, t := range terms {
		m.vocabulary[t] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	for i, tokens := range tokenized {
		m.docs[i] = m.vectorize(tokens)
	}
	return m
}

// Transform vectorizes text with the frozen vocabulary. Unknown terms are
// ignored; text without known terms gives the zero vector.
func (m *Model) Transform(text string) Vector {
	return m.vectorize(m.tokenizer.Tokens(text))
}

// Documents returns the cached document vectors. Callers must not modify them.
func (m *Model) Documents() []Vector {
	return m.docs
}

func (m *Model) Terms() []string {
	return slices.Clone(m.terms)
}

func (m *Model) IDF(term string) (float64, bool) {
	idx, ok := m.vocabulary[term]
	if !ok {
		return 0, false
	}
	return m.idf[idx], true
}

func (m *Model) vectorize(tokens []string) Vector {
	weights := make(map[int]float64, len(tokens))
	for _, t := range tokens {
		if idx, ok := m.vocabulary[t]; ok {
			weights[idx] += m.idf[idx]
		}
	}
	return normalized(weights)
}

// Package matcher answers free text by cosine similarity against the
// fitted knowledge base questions.
package matcher

import (
	"errors"
	"sort"

	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/internal/providers/vsm"
)

const DefaultThreshold = 0.6

// Model is the read-only vector space fitted over the knowledge questions.
// Documents()[i] corresponds to entries[i].
type Model interface {
	Transform(text string) vsm.Vector
	Documents() []vsm.Vector
}

type Score struct {
	Index    int
	Question string
	Value    float64
}

// Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	model     Model
	entries   []core.KnowledgeEntry
	threshold float64
}

func New(model Model, entries []core.KnowledgeEntry, threshold float64) (*Matcher, error) {
	if len(model.Documents()) != len(entries) {
		return nil, errors.New("model documents do not match knowledge entries")
	}
	if threshold < 0 || threshold >= 1 {
		return nil, errors.New("threshold must be in [0, 1)")
	}

	return &Matcher{
		model:     model,
		entries:   entries,
		threshold: threshold,
	}, nil
}

// NewFromEntries fits a model over the entry questions with tokenizer.
func NewFromEntries(tokenizer core.Tokenizer, entries []core.KnowledgeEntry, threshold float64) (*Matcher, error) {
	model := vsm.Fit(tokenizer, core.Questions(entries))
	return New(model, entries, threshold)
}

func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match returns the entry whose question is most similar to query. The best
// score must be strictly above the threshold; on ties the lowest index wins.
// A dynamic answer is not evaluated here.
func (m *Matcher) Match(query string) (core.Answer, float64, bool) {
	idx, best := m.best(query)
	if idx < 0 || best <= m.threshold {
		return core.Answer{}, best, false
	}
	return m.entries[idx].Answer, best, true
}

// Resolve is Match followed by evaluation of the answer.
func (m *Matcher) Resolve(query string) (string, bool) {
	answer, _, ok := m.Match(query)
	if !ok {
		return "", false
	}
	return answer.Resolve(), true
}

// Rank scores every entry, highest first. Equal scores keep knowledge order.
func (m *Matcher) Rank(query string) []Score {
	qv := m.model.Transform(query)
	docs := m.model.Documents()

	scores := make([]Score, len(docs))
	for i, dv := range docs {
		scores[i] = Score{Index: i, Question: m.entries[i].Question, Value: vsm.Dot(qv, dv)}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Value > scores[j].Value
	})
	return scores
}

func (m *Matcher) best(query string) (int, float64) {
	qv := m.model.Transform(query)
	if qv.IsZero() {
		return -1, 0
	}

	idx, best := -1, 0.0
	for i, dv := range m.model.Documents() {
		if s := vsm.Dot(qv, dv); idx < 0 || s > best {
			idx, best = i, s
		}
	}
	return idx, best
}

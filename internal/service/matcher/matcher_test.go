package matcher

import (
	"testing"

	"github.com/sandevgo/lexbot/internal/core"
	"github.com/sandevgo/lexbot/internal/providers/knowledge"
	"github.com/sandevgo/lexbot/internal/providers/nlp"
	"github.com/sandevgo/lexbot/internal/providers/vsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	query vsm.Vector
	docs  []vsm.Vector
}

func (s *stubModel) Transform(string) vsm.Vector { return s.query }
func (s *stubModel) Documents() []vsm.Vector     { return s.docs }

func vec(pairs ...float64) vsm.Vector {
	var v vsm.Vector
	for i := 0; i < len(pairs); i += 2 {
		v.Indices = append(v.Indices, int(pairs[i]))
		v.Values = append(v.Values, pairs[i+1])
	}
	return v
}

func entries(answers ...string) []core.KnowledgeEntry {
	out := make([]core.KnowledgeEntry, len(answers))
	for i, a := range answers {
		out[i] = core.KnowledgeEntry{Question: a, Answer: core.StaticAnswer(a)}
	}
	return out
}

func TestMatcher_Threshold(t *testing.T) {
	tests := []struct {
		name   string
		query  vsm.Vector
		wantOK bool
	}{
		{name: "exactly at threshold is rejected", query: vec(0, 0.6, 1, 0.8), wantOK: false},
		{name: "just above threshold is accepted", query: vec(0, 0.600001, 1, 0.799999), wantOK: true},
		{name: "below threshold", query: vec(0, 0.3, 1, 0.9), wantOK: false},
		{name: "zero query", query: vsm.Vector{}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &stubModel{query: tt.query, docs: []vsm.Vector{vec(0, 1)}}
			m, err := New(model, entries("a"), DefaultThreshold)
			require.NoError(t, err)

			answer, _, ok := m.Match("anything")
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, "a", answer.Resolve())
			}
		})
	}
}

func TestMatcher_TieGoesToLowestIndex(t *testing.T) {
	model := &stubModel{
		query: vec(0, 1),
		docs:  []vsm.Vector{vec(1, 1), vec(0, 1), vec(0, 1)},
	}
	m, err := New(model, entries("first", "second", "third"), DefaultThreshold)
	require.NoError(t, err)

	text, ok := m.Resolve("q")
	require.True(t, ok)
	assert.Equal(t, "second", text)

	ranked := m.Rank("q")
	require.Len(t, ranked, 3)
	assert.Equal(t, []int{1, 2, 0}, []int{ranked[0].Index, ranked[1].Index, ranked[2].Index})
	assert.InDelta(t, 1.0, ranked[0].Value, 1e-12)
	assert.Equal(t, "first", ranked[2].Question)
}

func TestMatcher_DynamicAnswerEvaluatedPerCall(t *testing.T) {
	calls := 0
	kb := []core.KnowledgeEntry{{
		Question: "counter",
		Answer: core.DynamicAnswer(func() string {
			calls++
			return "called"
		}),
	}}
	m, err := New(&stubModel{query: vec(0, 1), docs: []vsm.Vector{vec(0, 1)}}, kb, DefaultThreshold)
	require.NoError(t, err)

	answer, _, ok := m.Match("q")
	require.True(t, ok)
	assert.True(t, answer.IsDynamic())
	assert.Zero(t, calls)

	m.Resolve("q")
	m.Resolve("q")
	assert.Equal(t, 2, calls)
}

func TestNew_Validation(t *testing.T) {
	model := &stubModel{docs: []vsm.Vector{vec(0, 1)}}

	_, err := New(model, entries("a", "b"), DefaultThreshold)
	assert.Error(t, err)

	_, err = New(model, entries("a"), 1)
	assert.Error(t, err)

	_, err = New(model, entries("a"), -0.1)
	assert.Error(t, err)
}

func TestMatcher_KnowledgeBase(t *testing.T) {
	normalizer, err := nlp.NewEnglishNormalizer()
	require.NoError(t, err)
	kb, err := knowledge.Default()
	require.NoError(t, err)

	m, err := NewFromEntries(normalizer, kb, DefaultThreshold)
	require.NoError(t, err)

	for i, entry := range kb {
		if len(normalizer.Tokens(entry.Question)) == 0 {
			// nothing left after stopword removal, never matchable
			_, _, ok := m.Match(entry.Question)
			assert.False(t, ok, entry.Question)
			continue
		}

		t.Run(entry.Question, func(t *testing.T) {
			answer, score, ok := m.Match(entry.Question)
			require.True(t, ok)
			assert.InDelta(t, 1.0, score, 1e-9)
			assert.Equal(t, kb[i].Answer.IsDynamic(), answer.IsDynamic())
			if !answer.IsDynamic() {
				assert.Equal(t, kb[i].Answer.Resolve(), answer.Resolve())
			}
		})
	}

	text, ok := m.Resolve("Please tell me a joke!")
	require.True(t, ok)
	assert.Contains(t, text, "atoms")

	text, ok = m.Resolve("What time is it?")
	require.True(t, ok)
	assert.Contains(t, text, "The current time is")

	_, _, ok = m.Match("Remind me to buy milk.")
	assert.False(t, ok)

	_, _, ok = m.Match("")
	assert.False(t, ok)
}

package vsm

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldsTokenizer struct{}

func (fieldsTokenizer) Tokens(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

var corpus = []string{
	"hello",
	"tell joke",
	"time",
	"date",
	"albert einstein",
	"define artificial intelligence",
	"hello world",
}

func TestFit_Vocabulary(t *testing.T) {
	m := Fit(fieldsTokenizer{}, corpus)

	assert.Equal(t, []string{
		"albert", "artificial", "date", "define", "einstein", "hello",
		"intelligence", "joke", "tell", "time", "world",
	}, m.Terms())
	require.Len(t, m.Documents(), len(corpus))
}

func TestFit_IDF(t *testing.T) {
	m := Fit(fieldsTokenizer{}, []string{"hello world", "hello there", "hello hello"})

	hello, ok := m.IDF("hello")
	require.True(t, ok)
	assert.InDelta(t, 1.0, hello, 1e-12, "term in every document")

	world, ok := m.IDF("world")
	require.True(t, ok)
	assert.InDelta(t, math.Log(4.0/2.0)+1, world, 1e-12)

	_, ok = m.IDF("missing")
	assert.False(t, ok)
}

func TestFit_DocumentVectorsAreNormalized(t *testing.T) {
	m := Fit(fieldsTokenizer{}, corpus)
	for i, dv := range m.Documents() {
		assert.InDelta(t, 1.0, dv.Norm(), 1e-9, "document %d", i)
		for _, v := range dv.Values {
			assert.Greater(t, v, 0.0)
		}
	}
}

func TestFit_TermFrequency(t *testing.T) {
	m := Fit(fieldsTokenizer{}, []string{"a a b", "b c"})
	dv := m.Documents()[0]

	// a: tf 2, idf ln(3/2)+1; b: tf 1, idf 1
	wa := 2 * (math.Log(1.5) + 1)
	wb := 1.0
	norm := math.Hypot(wa, wb)
	assert.Equal(t, []int{0, 1}, dv.Indices)
	assert.InDelta(t, wa/norm, dv.Values[0], 1e-12)
	assert.InDelta(t, wb/norm, dv.Values[1], 1e-12)
}

func TestTransform_ExactQuestionMatchesItself(t *testing.T) {
	m := Fit(fieldsTokenizer{}, corpus)
	for i, q := range corpus {
		qv := m.Transform(q)
		assert.InDelta(t, 1.0, Dot(qv, m.Documents()[i]), 1e-9, "question %q", q)
	}
}

func TestTransform_UnknownTerms(t *testing.T) {
	m := Fit(fieldsTokenizer{}, corpus)

	qv := m.Transform("remind buy milk")
	assert.True(t, qv.IsZero())
	for _, dv := range m.Documents() {
		assert.Equal(t, 0.0, Dot(qv, dv))
	}

	assert.True(t, m.Transform("").IsZero())
}

func TestTransform_IgnoresUnseenTermsButKeepsKnown(t *testing.T) {
	m := Fit(fieldsTokenizer{}, corpus)

	qv := m.Transform("please tell me a joke")
	assert.InDelta(t, 1.0, qv.Norm(), 1e-9)
	assert.InDelta(t, 1.0, Dot(qv, m.Documents()[1]), 1e-9)
}

func TestTransform_OrderIndependent(t *testing.T) {
	m := Fit(fieldsTokenizer{}, corpus)
	assert.Equal(t, m.Transform("albert einstein"), m.Transform("einstein albert"))
}

func TestFit_EmptyDocument(t *testing.T) {
	m := Fit(fieldsTokenizer{}, []string{"", "hello"})
	assert.True(t, m.Documents()[0].IsZero())
	assert.Equal(t, 0.0, Dot(m.Transform("hello"), m.Documents()[0]))
}

func TestDot(t *testing.T) {
	a := Vector{Indices: []int{0, 2, 5}, Values: []float64{0.5, 0.5, 0.7}}
	b := Vector{Indices: []int{2, 3, 5}, Values: []float64{1, 1, 1}}
	assert.InDelta(t, 1.2, Dot(a, b), 1e-12)
	assert.Equal(t, 0.0, Dot(a, Vector{}))
}

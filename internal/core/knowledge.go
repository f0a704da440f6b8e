package core

// Answer is either a fixed text or a generator evaluated every time the answer
// is given, e.g. the current time.
type Answer struct {
	static    string
	generator func() string
}

func StaticAnswer(text string) Answer {
	return Answer{static: text}
}

func DynamicAnswer(fn func() string) Answer {
	return Answer{generator: fn}
}

func (a Answer) IsDynamic() bool {
	return a.generator != nil
}

// Resolve returns the answer text, invoking the generator for dynamic answers.
func (a Answer) Resolve() string {
	if a.generator != nil {
		return a.generator()
	}
	return a.static
}

type KnowledgeEntry struct {
	Question string
	Answer   Answer
}

// Questions returns the questions of entries in order, indices match.
func Questions(entries []KnowledgeEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Question
	}
	return out
}

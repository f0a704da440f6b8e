// Package knowledge loads the ordered question/answer list fitted by the
// matcher at startup.
package knowledge

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	fs "github.com/sandevgo/lexbot/configs"
	"github.com/sandevgo/lexbot/internal/core"
	"gopkg.in/yaml.v3"
)

type fileEntry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
	Dynamic  string `yaml:"dynamic"`
}

type file struct {
	Entries []fileEntry `yaml:"entries"`
}

// generators are the dynamic answers a knowledge file may reference.
var generators = map[string]func(now func() time.Time) func() string{
	"time": func(now func() time.Time) func() string {
		return func() string {
			return fmt.Sprintf("The current time is %s.", now().Format(time.TimeOnly))
		}
	},
	"date": func(now func() time.Time) func() string {
		return func() string {
			return fmt.Sprintf("Today's date is %s.", now().Format(time.DateOnly))
		}
	},
}

// Load reads the knowledge file at path, or the built-in one when path is empty.
func Load(path string) ([]core.KnowledgeEntry, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}
	return Parse(data, time.Now)
}

func Default() ([]core.KnowledgeEntry, error) {
	data, err := fs.FS.ReadFile(fs.KnowledgeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded knowledge: %w", err)
	}
	return Parse(data, time.Now)
}

// Parse decodes a knowledge file. now is the clock used by dynamic answers.
func Parse(data []byte, now func() time.Time) ([]core.KnowledgeEntry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge file: %w", err)
	}
	if len(f.Entries) == 0 {
		return nil, errors.New("knowledge file has no entries")
	}

	entries := make([]core.KnowledgeEntry, 0, len(f.Entries))
	for i, fe := range f.Entries {
		question := strings.TrimSpace(fe.Question)
		if question == "" {
			return nil, fmt.Errorf("entry %d: empty question", i)
		}

		switch {
		case fe.Dynamic != "" && fe.Answer != "":
			return nil, fmt.Errorf("entry %d (%q): both answer and dynamic are set", i, question)
		case fe.Dynamic != "":
			gen, ok := generators[fe.Dynamic]
			if !ok {
				return nil, fmt.Errorf("entry %d (%q): unknown dynamic answer %q", i, question, fe.Dynamic)
			}
			entries = append(entries, core.KnowledgeEntry{Question: question, Answer: core.DynamicAnswer(gen(now))})
		case fe.Answer != "":
			entries = append(entries, core.KnowledgeEntry{Question: question, Answer: core.StaticAnswer(fe.Answer)})
		default:
			return nil, fmt.Errorf("entry %d (%q): no answer", i, question)
		}
	}
	return entries, nil
}

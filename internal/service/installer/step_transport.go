package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type transportChoice struct {
	key   string
	title string
	on    bool
}

// TransportStep lets the user toggle the transports to start
type TransportStep struct {
	choices []transportChoice
	cursor  int
	err     string
}

func NewTransportStep() Step {
	return &TransportStep{
		choices: []transportChoice{
			{key: "ENABLE_CLI", title: "Terminal chat", on: true},
			{key: "ENABLE_HTTP", title: "Web chat and HTTP API"},
			{key: "ENABLE_TELEGRAM", title: "Telegram bot"},
		},
	}
}

func (s *TransportStep) Init() tea.Cmd {
	return nil
}

func (s *TransportStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.choices)-1 {
			s.cursor++
		}
	case " ", "space", "x":
		s.choices[s.cursor].on = !s.choices[s.cursor].on
		s.err = ""
	case "enter":
		selected := false
		for _, c := range s.choices {
			state.EnvVars[c.key] = fmt.Sprint(c.on)
			selected = selected || c.on
		}
		if !selected {
			s.err = "select at least one transport"
			return s, nil
		}
		return nil, nil
	}
	return s, nil
}

func (s *TransportStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select the transports to start:\n\n")
	for i, c := range s.choices {
		mark := "[ ]"
		if c.on {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, c.title)
		if s.cursor == i {
			b.WriteString(selStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+line) + "\n")
		}
	}
	if s.err != "" {
		b.WriteString("\n" + errorStyle.Render(s.err) + "\n")
	}
	b.WriteString("\n(space to toggle, enter to confirm)\n")
	return b.String()
}

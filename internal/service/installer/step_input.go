package installer

import (
	"fmt"
	"net"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep asks for a single value and stores it under key.
// An empty answer keeps the default and leaves key unset.
type InputStep struct {
	key      string
	prompt   string
	input    textinput.Model
	required bool
	validate func(string) error
	when     func(state *InstallState) bool
	err      error
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = placeholder
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func NewHTTPAddrStep() Step {
	return &InputStep{
		key:    "HTTP_ADDR",
		prompt: "Address for the web chat (enter keeps 127.0.0.1:5000):",
		input:  newInput("127.0.0.1:5000", false),
		validate: func(v string) error {
			_, _, err := net.SplitHostPort(v)
			return err
		},
		when: func(state *InstallState) bool { return state.enabled("ENABLE_HTTP") },
	}
}

func NewTelegramTokenStep() Step {
	return &InputStep{
		key:      "TELEGRAM_TOKEN",
		prompt:   "Enter your Telegram Bot Token:",
		input:    newInput("123456789:ABCDEF...", true),
		required: true,
		when:     func(state *InstallState) bool { return state.enabled("ENABLE_TELEGRAM") },
	}
}

func NewTelegramOwnerStep() Step {
	return &InputStep{
		key:      "TELEGRAM_OWNER_ID",
		prompt:   "Enter your Telegram User ID (Owner):",
		input:    newInput("123456789", false),
		required: true,
		validate: func(v string) error {
			_, err := strconv.ParseInt(v, 10, 64)
			return err
		},
		when: func(state *InstallState) bool { return state.enabled("ENABLE_TELEGRAM") },
	}
}

func NewThresholdStep() Step {
	return &InputStep{
		key:    "MATCH_THRESHOLD",
		prompt: "Similarity a question must exceed to be answered (enter keeps 0.6):",
		input:  newInput("0.6", false),
		validate: func(v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return err
			}
			if f < 0 || f >= 1 {
				return fmt.Errorf("must be in [0, 1)")
			}
			return nil
		},
	}
}

func (s *InputStep) Skip(state *InstallState) bool {
	return s.when != nil && !s.when(state)
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := s.input.Value()
		switch {
		case value == "" && s.required:
			s.err = fmt.Errorf("a value is required")
			return s, nil
		case value == "":
			return nil, nil
		case s.validate != nil:
			if err := s.validate(value); err != nil {
				s.err = err
				return s, nil
			}
		}
		state.EnvVars[s.key] = value
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	view := s.prompt + "\n\n" + s.input.View() + "\n\n"
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}

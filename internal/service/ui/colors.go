package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle ANSI 6 (cyan) reads well on dark and light terminals.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (gray), dimmer than the command names.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// Conversation styles used by the CLI transport and `lexbot history`.
	UserStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	BotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	MetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ScoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	HitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
)

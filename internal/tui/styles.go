package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/tarefas-tui/internal/task"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// statusStyle colors a status badge: yellow pending, blue in progress, green done
func statusStyle(s task.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch s {
	case task.StatusPending:
		return base.Foreground(lipgloss.Color("220"))
	case task.StatusInProgress:
		return base.Foreground(lipgloss.Color("39"))
	case task.StatusDone:
		return base.Foreground(lipgloss.Color("42"))
	default:
		return base.Foreground(lipgloss.Color("245"))
	}
}

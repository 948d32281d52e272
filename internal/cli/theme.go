package cli

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Warn     lipgloss.Style
	Card     lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

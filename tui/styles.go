package tui

import "charm.land/lipgloss/v2"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	buttonStyle = lipgloss.NewStyle().Reverse(true)
	knobStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)

	channelStyles = [3]lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
)

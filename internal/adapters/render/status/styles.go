package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	agent      lipgloss.Style
	detail     lipgloss.Style
	alert      lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	label      lipgloss.Style
	meta       lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	idle       lipgloss.Style
	working    lipgloss.Style
	done       lipgloss.Style
	roleUser   lipgloss.Style
	roleAI     lipgloss.Style
	roleSystem lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		agent:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("179")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		alert:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		idle:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		working:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		done:       lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		roleUser:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		roleAI:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("179")),
		roleSystem: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

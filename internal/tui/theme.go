package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha subset — true-color hex values
// https://catppuccin.com/palette

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

// Semantic aliases
const (
	colorAccent = colorLavender
	colorError  = colorRed
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	statusStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	answerStyle   = lipgloss.NewStyle().Foreground(colorText)
	timeStyle     = lipgloss.NewStyle().Foreground(colorSubtext0)
	selectedStyle = lipgloss.NewStyle().Foreground(colorPeach)

	chipActiveStyle = lipgloss.NewStyle().Foreground(colorBase).Background(colorTeal).Padding(0, 1)
	chipIdleStyle   = lipgloss.NewStyle().Foreground(colorTeal).Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)

	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Padding(0, 2)
)

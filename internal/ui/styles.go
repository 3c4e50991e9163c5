package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorSubtle   = lipgloss.Color("241")
	colorLive     = lipgloss.Color("42")
	colorError    = lipgloss.Color("196")
	colorSelectFg = lipgloss.Color("229")
	colorSelectBg = lipgloss.Color("57")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	liveStyle     = lipgloss.NewStyle().Foreground(colorLive)
	errStyle      = lipgloss.NewStyle().Foreground(colorError)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSelectFg).Background(colorSelectBg)
	labelStyle    = lipgloss.NewStyle().Width(formLabelW)
)

// inkStyle colors text with a chart color; unknown colors render unstyled.
func inkStyle(color string) lipgloss.Style {
	if color == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexOr(color)))
}

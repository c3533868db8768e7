package styles

import (
	"graphview/internal/visconfig"

	"github.com/charmbracelet/lipgloss"
)

var (
	Subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	Special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	// Node is the fill every label gets in the browser widget.
	Node = lipgloss.Color(visconfig.NodeColor)
	Edge = lipgloss.Color("#888")

	TitleStyle = lipgloss.NewStyle().
			MarginLeft(1).
			MarginRight(5).
			Padding(0, 1).
			Italic(true).
			Foreground(lipgloss.Color("#FFF7DB"))

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(1, 2).
			Margin(1, 1)

	StatusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// NodeStyle colors text the way the node style colors the label.
func NodeStyle(style visconfig.NodeStyle) lipgloss.Style {
	c := style.Advanced.Static.Color
	if c == "" {
		return lipgloss.NewStyle().Foreground(Node)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

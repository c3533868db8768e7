package views

import (
	"fmt"

	"graphview/internal/viewer"
	"graphview/ui/tui/state"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// TabZoneID is the bubblezone id of the i-th tab.
func TabZoneID(i int) string {
	return fmt.Sprintf("tab_%d", i)
}

type TabsView struct{}

func (v TabsView) Render(s state.AppState, props ViewProps) string {
	title := "GRAPHVIEW // NEO4J SCHEMA VIEWER"
	if s.ViewState == viewer.Fetching && !s.Fetched {
		title = props.SpinnerView + " " + title
	}
	header := MenuHeaderStyle.Width(props.Width).Render(title)

	var tabs []string
	for i, name := range state.PageTitles {
		borderColor := BaseColor
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginLeft(1)

		if state.Page(i) == s.CurrentPage {
			borderColor = BrandColor
			style = style.Bold(true).Foreground(lipgloss.Color("#FFF"))
		} else {
			style = style.Foreground(lipgloss.Color("#AAA"))
		}

		rendered := style.BorderForeground(borderColor).Render(fmt.Sprintf("%d %s", i+1, name))
		tabs = append(tabs, zone.Mark(TabZoneID(i), rendered))
	}

	status := lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("#888")).Render(
		fmt.Sprintf("state: %s", s.ViewState))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Center, append(tabs, status)...),
	)
}

var (
	BrandColor = lipgloss.Color("#f27b24")
	BaseColor  = lipgloss.Color("#444")

	MenuHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(BrandColor).
			Align(lipgloss.Left).
			Padding(1, 2)

	CopyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888")).
			Italic(true).
			MarginBottom(1).
			PaddingLeft(2)
)

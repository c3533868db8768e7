package views

import (
	"fmt"
	"strings"

	"graphview/ui/tui/state"

	"github.com/charmbracelet/lipgloss"
)

type ConsoleView struct{}

func (v ConsoleView) Render(s state.AppState, props ViewProps) string {
	availableHeight := props.Height - 10
	if availableHeight < 1 {
		availableHeight = 1
	}

	lines := s.ConsoleLogs
	totalLines := len(lines)

	scrollY := clampScroll(props.ScrollY, totalLines, availableHeight)
	end := scrollY + availableHeight
	if end > totalLines {
		end = totalLines
	}

	viewContent := strings.Join(lines[scrollY:end], "\n")

	width := props.Width - 4
	if width < 1 {
		width = 1
	}
	box := lipgloss.NewStyle().
		Width(width).
		Height(availableHeight).
		Padding(0, 1).
		Render(viewContent)

	footerText := fmt.Sprintf("Scroll: %d/%d", scrollY, totalLines)
	if totalLines > availableHeight {
		footerText += " • Use ↑/↓ to scroll"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Padding(1, 2).Render(box),
		Footer(footerText),
	)
}

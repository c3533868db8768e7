package views

import (
	"encoding/json"
	"fmt"
	"strings"

	"graphview/ui/tui/state"
	"graphview/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

type ConfigView struct{}

func (v ConfigView) Render(s state.AppState, props ViewProps) string {
	if s.Request == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			CopyStyle.Render(fmt.Sprintf("No style configured (schema status %s).", s.Result.Status())),
			Footer("[1-4/Tab] Switch page • [Q] Quit"),
		)
	}

	data, err := json.MarshalIndent(s.Request.Style, "", "  ")
	if err != nil {
		return styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", err))
	}

	lines := strings.Split(string(data), "\n")
	availableHeight := props.Height - 12
	if availableHeight < 1 {
		availableHeight = 1
	}

	scrollY := clampScroll(props.ScrollY, len(lines), availableHeight)
	end := scrollY + availableHeight
	if end > len(lines) {
		end = len(lines)
	}

	info := CopyStyle.Render(fmt.Sprintf("container #%s • initial cypher: %s",
		s.Request.ContainerID, s.Request.InitialCypher))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Highlight).
		Padding(0, 1).
		MarginLeft(2).
		Render(strings.Join(lines[scrollY:end], "\n"))

	return lipgloss.JoinVertical(lipgloss.Left,
		info,
		box,
		Footer(fmt.Sprintf("Scroll: %d/%d • [↑/↓] Scroll • [Q] Quit", scrollY, len(lines))),
	)
}

func clampScroll(scrollY, total, visible int) int {
	if scrollY > total-visible {
		scrollY = total - visible
	}
	if scrollY < 0 {
		scrollY = 0
	}
	return scrollY
}

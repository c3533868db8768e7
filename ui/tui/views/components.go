package views

import (
	"graphview/internal/metadata"
	"graphview/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

func ColorForStatus(status string) lipgloss.Style {
	sStyle := styles.StatusStyle
	switch status {
	case metadata.StatusEmpty:
		return sStyle.Foreground(lipgloss.Color("220")) // Gold
	case metadata.StatusFailed:
		return sStyle.Foreground(lipgloss.Color("196")) // Red
	}
	return sStyle.Foreground(lipgloss.Color("46")) // Green
}

// Footer renders the key hints under every page.
func Footer(text string) string {
	return lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("#555")).Render(text)
}

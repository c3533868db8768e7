package views

import (
	"fmt"

	"graphview/internal/viewer"
	"graphview/ui/tui/state"
	"graphview/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

type GraphView struct{}

func (v GraphView) Render(s state.AppState, props ViewProps) string {
	var body string

	switch {
	case !s.Fetched:
		body = lipgloss.NewStyle().Padding(1, 2).Render(
			props.SpinnerView + " Fetching labels and relationship types...")

	case s.ViewState == viewer.Fetching:
		// Nothing to render: the container stays empty whatever the reason.
		box := styles.CardStyle.
			BorderForeground(BaseColor).
			Width(props.Width/2).
			Render(lipgloss.NewStyle().Foreground(styles.Subtle).Render("(empty)"))
		reason := fmt.Sprintf("schema status: %s", ColorForStatus(s.Result.Status()).Render(s.Result.Status()))
		if s.Result.Failed() {
			reason += fmt.Sprintf(" (%s)", s.Result.Failure)
		}
		body = lipgloss.JoinVertical(lipgloss.Left, box, CopyStyle.Render(reason))

	case s.Err != nil:
		body = lipgloss.NewStyle().Padding(1, 2).Render(
			styles.ErrorStyle.Render(fmt.Sprintf("Render failed: %v", s.Err)))

	case s.ViewState == viewer.Configured:
		body = lipgloss.NewStyle().Padding(1, 2).Render(
			props.SpinnerView + " Loading sample graph...")

	default:
		body = lipgloss.JoinVertical(lipgloss.Left,
			props.GraphView,
			CopyStyle.Render(fmt.Sprintf("request %s • rendered %s",
				s.Request.ID, s.LastUpdate.Format("15:04:05"))),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		Footer("[1-4/Tab] Switch page • [Q] Quit"),
	)
}

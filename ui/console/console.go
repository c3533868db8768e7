// Package console prints the schema report as plain text for non-interactive use.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"graphview/internal/metadata"
	"graphview/internal/output"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

const labelWidth = 24

// Print renders the report to the writer in a compact format.
func Print(w io.Writer, view output.ReportView) {
	fmt.Fprintf(w, "%s■ GRAPHVIEW SCHEMA%s %s[%s]%s\n",
		colorCyan, colorReset, colorFor(view.Status), view.Status, colorReset)

	if view.Failure != "" {
		fmt.Fprintf(w, "%s  %s failure: %s%s\n", colorRed, view.Failure, view.Error, colorReset)
	}

	for _, sec := range view.Sections {
		fmt.Fprintf(w, "%s─ %s (%d)%s\n", colorCyan, sec.Title, len(sec.Items), colorReset)

		for _, it := range sec.Items {
			// Widths are in terminal cells so wide runes never split.
			label := ansi.Truncate(it.Label, labelWidth-2, "...")
			dots := strings.Repeat("·", max(labelWidth-lipgloss.Width(label), 1))

			marker := fmt.Sprintf("%s✓%s", colorGreen, colorReset)
			if it.Status == output.ItemSkipped {
				marker = fmt.Sprintf("%s-%s", colorYellow, colorReset)
			}

			// Format: "  Label··········· ✓ note"
			fmt.Fprintf(w, "  %s%s%s%s %s %s\n", label, colorCyan, dots, colorReset, marker, it.Note)
		}
	}

	render := "no (container left empty)"
	if view.Renderable {
		render = "yes, request " + view.RequestID
	}
	fmt.Fprintf(w, "%s─ Summary%s: render: %s\n\n", colorCyan, colorReset, render)
}

func colorFor(status string) string {
	switch status {
	case metadata.StatusEmpty:
		return colorYellow
	case metadata.StatusFailed:
		return colorRed
	default:
		return colorGreen
	}
}

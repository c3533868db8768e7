package views

import (
	"fmt"
	"math"

	"graphview/internal/visconfig"
	"graphview/ui/tui/state"
	"graphview/ui/tui/styles"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// LegendZoneID is the bubblezone id of the i-th legend row.
func LegendZoneID(i int) string {
	return fmt.Sprintf("legend_%d", i)
}

// legendStartY is the screen row of the first legend entry, below header, tabs and heading.
const legendStartY = 9

type SchemaView struct{}

func (v SchemaView) Render(s state.AppState, props ViewProps) string {
	entries := s.Legend()

	status := s.Result.Status()
	heading := lipgloss.JoinHorizontal(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingLeft(2).Foreground(BrandColor).Render("SCHEMA "),
		ColorForStatus(status).Render("["+status+"]"),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#888")).Render(
			fmt.Sprintf("  %d labels • %d relationship types", len(s.Result.Labels), len(s.Result.RelationshipTypes))),
	)

	if len(entries) == 0 {
		msg := "No labels or relationship types."
		if s.Result.Err != nil {
			msg = fmt.Sprintf("Fetch failed (%s): %v", s.Result.Failure, s.Result.Err)
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			heading,
			CopyStyle.Render(msg),
			Footer("[1-4/Tab] Switch page • [Q] Quit"),
		)
	}

	var style visconfig.StyleConfig
	if s.Request != nil {
		style = s.Request.Style
	}

	var rows []string
	for i, e := range entries {
		dist := math.Abs(float64(i) - props.AnimCursor)
		selectionStrength := 0.0
		if dist < 1.0 {
			selectionStrength = 1.0 - dist
		}

		itemCenterY := legendStartY + i
		mouseDistY := math.Abs(float64(props.MouseY - itemCenterY))

		marker := lipgloss.NewStyle().Foreground(BaseColor).Render("│")
		if mouseDistY < 2 {
			marker = lipgloss.NewStyle().Foreground(lipgloss.Color("#aaa")).Render("│")
		}
		if selectionStrength > 0.1 || i == props.LegendCursor {
			marker = lipgloss.NewStyle().Foreground(BrandColor).Render("▌")
		}

		popOut := int(selectionStrength * 2)
		row := lipgloss.NewStyle().MarginLeft(2 + popOut)
		if i == props.LegendCursor {
			row = row.Bold(true)
		}

		var text string
		switch e.Kind {
		case state.LegendLabel:
			ns, ok := style.Labels[e.Name]
			if !ok {
				ns = visconfig.DefaultNodeStyle()
			}
			text = styles.NodeStyle(ns).Render("● :"+e.Name) +
				lipgloss.NewStyle().Foreground(lipgloss.Color("#666")).Render(
					fmt.Sprintf("  caption=%s font=%s %dpx", ns.Caption, ns.Advanced.Static.Font.Family, ns.Advanced.Static.Font.Size))
		case state.LegendRelationship:
			es, ok := style.Relationships[e.Name]
			if !ok {
				es = visconfig.DefaultEdgeStyle()
			}
			text = lipgloss.NewStyle().Foreground(styles.Edge).Render("─▶ "+e.Name) +
				lipgloss.NewStyle().Foreground(lipgloss.Color("#666")).Render(
					fmt.Sprintf("  caption=%s arrows=%s %dpx", es.Caption, es.Advanced.Static.Arrows, es.Advanced.Static.Font.Size))
		}

		rows = append(rows, zone.Mark(LegendZoneID(i), row.Render(marker+" "+text)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		heading,
		CopyStyle.Render("Labels are drawn as nodes, relationship types as directed edges."),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		Footer("\n[↑/↓] Move • [1-4/Tab] Switch page • [Q] Quit"),
	)
}

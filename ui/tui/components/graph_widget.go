package components

import (
	"fmt"
	"strings"

	"graphview/internal/database/graph"
	"graphview/internal/render"
	"graphview/internal/visconfig"
	"graphview/ui/tui/styles"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GraphExtent is the size of the square the layout targets, in chart units.
const GraphExtent = 100.0

const (
	layoutPadding = 8.0
	markerSize    = 1.5
	maxCaptions   = 12
)

// GraphWidget draws a sample graph on a braille canvas: edges as lines, nodes as small crosses.
type GraphWidget struct {
	Chart  linechart.Model
	Scene  *render.Scene
	Style  visconfig.StyleConfig
	Width  int
	Height int
}

var _ Component = (*GraphWidget)(nil)

func NewGraphWidget(width, height int) *GraphWidget {
	// width, height, minX, maxX, minY, maxY
	lc := linechart.New(width, height, 0, GraphExtent, 0, GraphExtent)
	return &GraphWidget{
		Chart:  lc,
		Scene:  &render.Scene{Positions: map[string]render.Position{}},
		Width:  width,
		Height: height,
	}
}

func (g *GraphWidget) Init() tea.Cmd {
	return nil
}

func (g *GraphWidget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return g, nil
}

// SetScene lays out sample and keeps style for the captions.
func (g *GraphWidget) SetScene(sample *graph.Sample, style visconfig.StyleConfig) *render.Scene {
	g.Scene = render.CircleLayout(sample, render.LayoutConfig{
		Width:   GraphExtent,
		Height:  GraphExtent,
		Padding: layoutPadding,
	})
	g.Style = style
	return g.Scene
}

func (g *GraphWidget) Resize(w, h int) {
	g.Width = w
	g.Height = h
	g.Chart.Resize(w, h)
}

// point flips the layout's downward Y onto the chart's upward axis.
func point(p render.Position) canvas.Float64Point {
	return canvas.Float64Point{X: p.X, Y: GraphExtent - p.Y}
}

func (g *GraphWidget) draw() {
	g.Chart.Clear()
	for _, e := range g.Scene.Visible() {
		g.Chart.DrawBrailleLine(point(g.Scene.Positions[e.Source]), point(g.Scene.Positions[e.Target]))
	}
	for _, n := range g.Scene.Nodes {
		p := point(g.Scene.Positions[n.ID])
		g.Chart.DrawBrailleLine(
			canvas.Float64Point{X: p.X - markerSize, Y: p.Y},
			canvas.Float64Point{X: p.X + markerSize, Y: p.Y},
		)
		g.Chart.DrawBrailleLine(
			canvas.Float64Point{X: p.X, Y: p.Y - markerSize},
			canvas.Float64Point{X: p.X, Y: p.Y + markerSize},
		)
	}
}

// Captions lists the drawn nodes in layout order, each colored by its first label's style.
func (g *GraphWidget) Captions() []string {
	var out []string
	for i, n := range g.Scene.Nodes {
		if i == maxCaptions {
			out = append(out, fmt.Sprintf("… %d more", len(g.Scene.Nodes)-maxCaptions))
			break
		}
		style := visconfig.DefaultNodeStyle()
		if len(n.Labels) > 0 {
			if s, ok := g.Style.Labels[n.Labels[0]]; ok {
				style = s
			}
		}
		out = append(out, styles.NodeStyle(style).Render("● "+n.Caption(style.Caption))+
			lipgloss.NewStyle().Foreground(styles.Edge).Render(" :"+strings.Join(n.Labels, ":")))
	}
	return out
}

func (g *GraphWidget) View() string {
	g.draw()

	summary := fmt.Sprintf("%d nodes • %d edges", len(g.Scene.Nodes), len(g.Scene.Visible()))
	return styles.CardStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.JoinVertical(lipgloss.Left,
				lipgloss.NewStyle().Bold(true).Render("Sample Graph"),
				g.Chart.View(),
				lipgloss.NewStyle().Foreground(styles.Edge).Render(summary),
			),
			lipgloss.NewStyle().PaddingLeft(2).Render(
				lipgloss.JoinVertical(lipgloss.Left, g.Captions()...),
			),
		),
	)
}

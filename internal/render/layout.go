package render

import (
	"math"
	"sort"

	"graphview/internal/database/graph"
)

// Position is a 2D coordinate on the canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures the canvas the layout targets.
type LayoutConfig struct {
	Width   float64
	Height  float64
	Padding float64
}

// Scene is a sample graph with a position for every node.
type Scene struct {
	Nodes     []*graph.Node
	Edges     []*graph.Edge
	Positions map[string]Position
}

// Visible returns the edges whose endpoints both have a position.
func (s *Scene) Visible() []*graph.Edge {
	var out []*graph.Edge
	for _, e := range s.Edges {
		_, okSrc := s.Positions[e.Source]
		_, okDst := s.Positions[e.Target]
		if okSrc && okDst {
			out = append(out, e)
		}
	}
	return out
}

// CircleLayout places nodes evenly on a circle, grouped by first label so that nodes
// sharing a style sit next to each other. The result depends only on the input.
func CircleLayout(sample *graph.Sample, cfg LayoutConfig) *Scene {
	scene := &Scene{Positions: make(map[string]Position)}
	if sample == nil {
		return scene
	}

	nodes := append([]*graph.Node(nil), sample.Nodes...)
	sort.SliceStable(nodes, func(i, j int) bool {
		return firstLabel(nodes[i]) < firstLabel(nodes[j])
	})
	scene.Nodes = nodes
	scene.Edges = sample.Edges

	cx, cy := cfg.Width/2, cfg.Height/2
	radius := math.Min(cfg.Width, cfg.Height)/2 - cfg.Padding
	if radius < 0 {
		radius = 0
	}

	switch len(nodes) {
	case 0:
	case 1:
		scene.Positions[nodes[0].ID] = Position{X: cx, Y: cy}
	default:
		step := 2 * math.Pi / float64(len(nodes))
		for i, n := range nodes {
			angle := float64(i)*step - math.Pi/2
			scene.Positions[n.ID] = Position{
				X: cx + radius*math.Cos(angle),
				Y: cy + radius*math.Sin(angle),
			}
		}
	}
	return scene
}

func firstLabel(n *graph.Node) string {
	if len(n.Labels) == 0 {
		return ""
	}
	return n.Labels[0]
}

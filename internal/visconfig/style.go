// Package visconfig builds the styling configuration handed to the graph widget.
// Everything here is a pure function of the label and relationship-type sequences.
package visconfig

import (
	"sort"
)

// Fixed styling values shared by every front-end.
const (
	FontFamily   = "Roboto"
	FontColor    = "black"
	NodeFontSize = 15
	EdgeFontSize = 10
	NodeColor    = "#ADD8E6"
	ArrowTo      = "to"

	// NodeCaption is the node property shown as the visible node text.
	NodeCaption = "name"
	// EdgeCaption is the relationship attribute shown as the visible edge text.
	EdgeCaption = "type"
)

// Derivation names a value the widget computes from each drawn entity.
type Derivation string

const (
	// DeriveLabels joins the node's full label list.
	DeriveLabels Derivation = "labels"
	// DeriveType uses the relationship's own type.
	DeriveType Derivation = "type"
)

// NodeFont is the static font block for nodes. Zero values are meaningful and always emitted.
type NodeFont struct {
	Size         int    `json:"size"`
	Color        string `json:"color"`
	Family       string `json:"family"`
	BorderRadius int    `json:"borderRadius"`
	Border       int    `json:"border"`
	StrokeWidth  int    `json:"strokeWidth"`
}

type EdgeFont struct {
	Size   int    `json:"size"`
	Color  string `json:"color"`
	Family string `json:"family"`
}

type NodeStatic struct {
	Font  NodeFont `json:"font"`
	Color string   `json:"color"`
}

type EdgeStatic struct {
	Font   EdgeFont `json:"font"`
	Arrows string   `json:"arrows"`
}

type NodeAdvanced struct {
	Function map[string]Derivation `json:"function"`
	Static   NodeStatic            `json:"static"`
}

type EdgeAdvanced struct {
	Function map[string]Derivation `json:"function"`
	Static   EdgeStatic            `json:"static"`
}

// NodeStyle is the per-label style record.
type NodeStyle struct {
	Caption  string       `json:"label"`
	Advanced NodeAdvanced `json:"advanced"`
}

// EdgeStyle is the per-relationship-type style record.
type EdgeStyle struct {
	Caption  string       `json:"label"`
	Advanced EdgeAdvanced `json:"advanced"`
}

// StyleConfig maps each label to a node style and each relationship type to an edge style.
type StyleConfig struct {
	Labels        map[string]NodeStyle `json:"labels"`
	Relationships map[string]EdgeStyle `json:"relationships"`
}

// DefaultNodeStyle returns the node style applied to every label.
func DefaultNodeStyle() NodeStyle {
	return NodeStyle{
		Caption: NodeCaption,
		Advanced: NodeAdvanced{
			Function: map[string]Derivation{"title": DeriveLabels},
			Static: NodeStatic{
				Font: NodeFont{
					Size:         NodeFontSize,
					Color:        FontColor,
					Family:       FontFamily,
					BorderRadius: 8,
				},
				Color: NodeColor,
			},
		},
	}
}

// DefaultEdgeStyle returns the edge style applied to every relationship type.
func DefaultEdgeStyle() EdgeStyle {
	return EdgeStyle{
		Caption: EdgeCaption,
		Advanced: EdgeAdvanced{
			Function: map[string]Derivation{"label": DeriveType},
			Static: EdgeStatic{
				Font: EdgeFont{
					Size:   EdgeFontSize,
					Color:  FontColor,
					Family: FontFamily,
				},
				Arrows: ArrowTo,
			},
		},
	}
}

// Build derives a fresh StyleConfig from the two sequences. Keys are used as given.
func Build(labels, relationshipTypes []string) StyleConfig {
	cfg := StyleConfig{
		Labels:        make(map[string]NodeStyle, len(labels)),
		Relationships: make(map[string]EdgeStyle, len(relationshipTypes)),
	}
	for _, l := range labels {
		cfg.Labels[l] = DefaultNodeStyle()
	}
	for _, t := range relationshipTypes {
		cfg.Relationships[t] = DefaultEdgeStyle()
	}
	return cfg
}

// Empty reports whether either side of the config has no entries.
func (c StyleConfig) Empty() bool {
	return len(c.Labels) == 0 || len(c.Relationships) == 0
}

// LabelKeys returns the configured labels in sorted order.
func (c StyleConfig) LabelKeys() []string {
	keys := make([]string, 0, len(c.Labels))
	for k := range c.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RelationshipKeys returns the configured relationship types in sorted order.
func (c StyleConfig) RelationshipKeys() []string {
	keys := make([]string, 0, len(c.Relationships))
	for k := range c.Relationships {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

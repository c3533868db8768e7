package state

import (
	"time"

	"graphview/internal/metadata"
	"graphview/internal/render"
	"graphview/internal/viewer"
	"graphview/internal/visconfig"
)

type Page int

const (
	PageGraph   Page = iota // drawn sample graph
	PageSchema              // labels and relationship types
	PageConfig              // StyleConfig JSON
	PageConsole             // log lines
)

// PageTitles is indexed by Page.
var PageTitles = []string{"Graph", "Schema", "Config", "Console"}

// LegendKind tells node labels and relationship types apart in the legend.
type LegendKind int

const (
	LegendLabel LegendKind = iota
	LegendRelationship
)

// LegendEntry is one row of the schema legend.
type LegendEntry struct {
	Kind LegendKind
	Name string
}

// AppState holds the current snapshot of the mounted view
type AppState struct {
	ViewState   viewer.State
	Fetched     bool // FetchCompleted has been applied
	Result      metadata.Result
	Request     *visconfig.RenderRequest
	Scene       *render.Scene
	LastUpdate  time.Time
	Err         error
	ConsoleLogs []string
	CurrentPage Page
}

// Legend lists labels then relationship types, each in server order.
func (s AppState) Legend() []LegendEntry {
	out := make([]LegendEntry, 0, len(s.Result.Labels)+len(s.Result.RelationshipTypes))
	for _, l := range s.Result.Labels {
		out = append(out, LegendEntry{Kind: LegendLabel, Name: l})
	}
	for _, t := range s.Result.RelationshipTypes {
		out = append(out, LegendEntry{Kind: LegendRelationship, Name: t})
	}
	return out
}

package output

import (
	"fmt"

	"graphview/internal/metadata"
	"graphview/internal/visconfig"
)

// Section constants to avoid hardcoded strings
const (
	SectionLabels        = "labels"
	SectionRelationships = "relationships"
)

// Item statuses: styled entries are drawn, skipped ones are not.
const (
	ItemStyled  = "OK"
	ItemSkipped = "SKIP"
)

// UI/view-model types (no printing here)
type Item struct {
	Key    string
	Label  string
	Status string
	Note   string
}

type Section struct {
	ID    string // labels/relationships
	Title string
	Items []Item
}

type ReportView struct {
	Sections   []Section
	Status     string // ok, empty, failed
	Failure    string
	Error      string
	RequestID  string
	Renderable bool
}

// BuildReport converts one fetch and the request built from it (nil when nothing was
// configured) into report sections. Entries keep server order.
func BuildReport(res metadata.Result, req *visconfig.RenderRequest) ReportView {
	view := ReportView{
		Status:     res.Status(),
		Renderable: req != nil,
	}
	if res.Failed() {
		view.Failure = res.Failure.String()
		if res.Err != nil {
			view.Error = res.Err.Error()
		}
	}

	var style visconfig.StyleConfig
	if req != nil {
		style = req.Style
		view.RequestID = req.ID
	}

	labels := Section{ID: SectionLabels, Title: "Node Labels"}
	for _, l := range res.Labels {
		it := Item{Key: l, Label: l, Status: ItemSkipped}
		if ns, ok := style.Labels[l]; ok {
			it.Status = ItemStyled
			it.Note = fmt.Sprintf("%s, caption %q", ns.Advanced.Static.Color, ns.Caption)
		}
		labels.Items = append(labels.Items, it)
	}

	rels := Section{ID: SectionRelationships, Title: "Relationship Types"}
	for _, t := range res.RelationshipTypes {
		it := Item{Key: t, Label: t, Status: ItemSkipped}
		if es, ok := style.Relationships[t]; ok {
			it.Status = ItemStyled
			it.Note = fmt.Sprintf("arrows %s, caption %q", es.Advanced.Static.Arrows, es.Caption)
		}
		rels.Items = append(rels.Items, it)
	}

	view.Sections = []Section{labels, rels}
	return view
}

func (v ReportView) SectionByID(id string) *Section {
	for i := range v.Sections {
		if v.Sections[i].ID == id {
			return &v.Sections[i]
		}
	}
	return nil
}

func (s Section) ItemByKey(key string) *Item {
	for i := range s.Items {
		if s.Items[i].Key == key {
			return &s.Items[i]
		}
	}
	return nil
}

package output

import (
	"errors"
	"testing"

	"graphview/internal/metadata"
	"graphview/internal/visconfig"
)

func TestBuildReport_Renderable(t *testing.T) {
	res := metadata.Result{
		Labels:            []string{"Person", "Movie"},
		RelationshipTypes: []string{"ACTED_IN"},
	}
	req, err := visconfig.NewRenderRequest(visconfig.Connection{}, "graph", res.Labels, res.RelationshipTypes)
	if err != nil {
		t.Fatalf("Expected a request, got: %v", err)
	}

	view := BuildReport(res, req)

	if view.Status != metadata.StatusOK || !view.Renderable {
		t.Errorf("Expected ok and renderable, got %s/%v", view.Status, view.Renderable)
	}
	if view.RequestID != req.ID {
		t.Errorf("Expected request id %s, got %s", req.ID, view.RequestID)
	}

	labels := view.SectionByID(SectionLabels)
	if labels == nil || len(labels.Items) != 2 || labels.Items[0].Key != "Person" {
		t.Fatalf("Unexpected labels section: %+v", labels)
	}
	person := labels.ItemByKey("Person")
	if person.Status != ItemStyled {
		t.Errorf("Expected Person styled, got %s", person.Status)
	}
	if person.Note != `#ADD8E6, caption "name"` {
		t.Errorf("Unexpected note: %s", person.Note)
	}

	rel := view.SectionByID(SectionRelationships).ItemByKey("ACTED_IN")
	if rel == nil || rel.Note != `arrows to, caption "type"` {
		t.Errorf("Unexpected relationship item: %+v", rel)
	}
}

func TestBuildReport_NothingToRender(t *testing.T) {
	res := metadata.Result{Labels: []string{"Person"}, RelationshipTypes: []string{}}

	view := BuildReport(res, nil)

	if view.Status != metadata.StatusEmpty || view.Renderable {
		t.Errorf("Expected empty and not renderable, got %s/%v", view.Status, view.Renderable)
	}
	if got := view.SectionByID(SectionLabels).ItemByKey("Person").Status; got != ItemSkipped {
		t.Errorf("Expected Person skipped, got %s", got)
	}
	if view.SectionByID("missing") != nil {
		t.Error("Expected nil for unknown section")
	}
}

func TestBuildReport_Failed(t *testing.T) {
	res := metadata.Result{Failure: metadata.FailureConnection, Err: errors.New("connection refused")}

	view := BuildReport(res, nil)

	if view.Status != metadata.StatusFailed {
		t.Errorf("Expected failed, got %s", view.Status)
	}
	if view.Failure != "connection" || view.Error != "connection refused" {
		t.Errorf("Unexpected failure fields: %q %q", view.Failure, view.Error)
	}
	for _, sec := range view.Sections {
		if len(sec.Items) != 0 {
			t.Errorf("Expected no items in %s", sec.ID)
		}
	}
}

package visconfig

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphview/internal/config"
)

func TestBuild_SinglePair(t *testing.T) {
	cfg := Build([]string{"Person"}, []string{"KNOWS"})

	require.Len(t, cfg.Labels, 1)
	require.Len(t, cfg.Relationships, 1)

	person, ok := cfg.Labels["Person"]
	require.True(t, ok)
	assert.Equal(t, "#ADD8E6", person.Advanced.Static.Color)
	assert.Equal(t, "name", person.Caption)
	assert.Equal(t, DeriveLabels, person.Advanced.Function["title"])
	assert.Equal(t, 15, person.Advanced.Static.Font.Size)
	assert.Equal(t, "black", person.Advanced.Static.Font.Color)
	assert.Equal(t, "Roboto", person.Advanced.Static.Font.Family)

	knows, ok := cfg.Relationships["KNOWS"]
	require.True(t, ok)
	assert.Equal(t, "to", knows.Advanced.Static.Arrows)
	assert.Equal(t, "type", knows.Caption)
	assert.Equal(t, DeriveType, knows.Advanced.Function["label"])
	assert.Equal(t, 10, knows.Advanced.Static.Font.Size)
}

func TestBuild_KeySetsMatchInput(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		types  []string
	}{
		{"one each", []string{"Person"}, []string{"KNOWS"}},
		{"several", []string{"Person", "Company", "City"}, []string{"WORKS_AT", "LIVES_IN"}},
		{"unsanitized keys", []string{"Has Space", "weird:label"}, []string{"REL-WITH-DASH"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Build(tt.labels, tt.types)

			assert.Equal(t, sorted(tt.labels), cfg.LabelKeys())
			assert.Equal(t, sorted(tt.types), cfg.RelationshipKeys())
		})
	}
}

func TestBuild_Idempotent(t *testing.T) {
	labels := []string{"Person", "Company"}
	types := []string{"WORKS_AT"}

	first := Build(labels, types)
	second := Build(labels, types)
	assert.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestBuild_EntriesDoNotShareMaps(t *testing.T) {
	cfg := Build([]string{"A", "B"}, []string{"R"})

	a := cfg.Labels["A"]
	a.Advanced.Function["title"] = "mutated"

	assert.Equal(t, DeriveLabels, cfg.Labels["B"].Advanced.Function["title"])
}

func TestStyleConfig_JSONShape(t *testing.T) {
	data, err := json.Marshal(Build([]string{"Person"}, []string{"KNOWS"}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"labels": {
			"Person": {
				"label": "name",
				"advanced": {
					"function": {"title": "labels"},
					"static": {
						"font": {"size": 15, "color": "black", "family": "Roboto", "borderRadius": 8, "border": 0, "strokeWidth": 0},
						"color": "#ADD8E6"
					}
				}
			}
		},
		"relationships": {
			"KNOWS": {
				"label": "type",
				"advanced": {
					"function": {"label": "type"},
					"static": {
						"font": {"size": 10, "color": "black", "family": "Roboto"},
						"arrows": "to"
					}
				}
			}
		}
	}`, string(data))
}

func TestNewRenderRequest(t *testing.T) {
	conn := ConnectionFrom(config.Neo4jConfig{URL: "neo4j://db:7687", User: "neo4j", Password: "pw"})

	req, err := NewRenderRequest(conn, "graph", []string{"Person"}, []string{"KNOWS"})
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "graph", req.ContainerID)
	assert.Equal(t, SampleQuery, req.InitialCypher)
	assert.Equal(t, "neo4j://db:7687", req.Connection.ServerURL)
	assert.Equal(t, []string{"Person"}, req.Style.LabelKeys())

	other, err := NewRenderRequest(conn, "graph", []string{"Person"}, []string{"KNOWS"})
	require.NoError(t, err)
	assert.NotEqual(t, req.ID, other.ID)
	assert.Equal(t, req.Style, other.Style)
}

func TestNewRenderRequest_Gating(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		types  []string
	}{
		{"no labels", nil, []string{"KNOWS"}},
		{"no types", []string{"Person", "Company"}, []string{}},
		{"nothing", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRenderRequest(Connection{}, "graph", tt.labels, tt.types)
			assert.Nil(t, req)
			assert.ErrorIs(t, err, ErrNothingToRender)
		})
	}
}

func TestEmpty(t *testing.T) {
	assert.True(t, Build(nil, []string{"KNOWS"}).Empty())
	assert.True(t, Build([]string{"Person"}, nil).Empty())
	assert.False(t, Build([]string{"Person"}, []string{"KNOWS"}).Empty())
}

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

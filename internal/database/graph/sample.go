package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Node is a graph node as shipped to front-ends.
type Node struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
}

// Edge is a directed relationship between two nodes.
type Edge struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// Sample is the subgraph returned by a visualization query.
type Sample struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

// SampleGraph runs query on a fresh read session and collects the nodes and relationships it returns.
func (c *Neo4jClient) SampleGraph(ctx context.Context, query string) (*Sample, error) {
	session := c.OpenSession(ctx)
	defer session.Close(ctx)

	return CollectSample(ctx, session, query)
}

// CollectSample runs query on r and gathers every node, relationship and path in the result.
// Entities are deduplicated by element id. Edges whose endpoints were not returned are kept;
// the front-ends draw what they can.
func CollectSample(ctx context.Context, r Runner, query string) (*Sample, error) {
	records, err := r.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("sample query failed: %w", err)
	}

	s := &Sample{Nodes: []*Node{}, Edges: []*Edge{}}
	nodes := make(map[string]struct{})
	edges := make(map[string]struct{})

	addNode := func(n neo4j.Node) {
		if _, ok := nodes[n.ElementId]; ok {
			return
		}
		nodes[n.ElementId] = struct{}{}
		s.Nodes = append(s.Nodes, &Node{ID: n.ElementId, Labels: n.Labels, Properties: n.Props})
	}
	addEdge := func(rel neo4j.Relationship) {
		if _, ok := edges[rel.ElementId]; ok {
			return
		}
		edges[rel.ElementId] = struct{}{}
		s.Edges = append(s.Edges, &Edge{
			ID:         rel.ElementId,
			Source:     rel.StartElementId,
			Target:     rel.EndElementId,
			Type:       rel.Type,
			Properties: rel.Props,
		})
	}

	var visit func(v any)
	visit = func(v any) {
		switch val := v.(type) {
		case neo4j.Node:
			addNode(val)
		case neo4j.Relationship:
			addEdge(val)
		case neo4j.Path:
			for _, n := range val.Nodes {
				addNode(n)
			}
			for _, rel := range val.Relationships {
				addEdge(rel)
			}
		case []any:
			for _, item := range val {
				visit(item)
			}
		}
	}

	for _, record := range records {
		for _, v := range record.Values {
			visit(v)
		}
	}
	return s, nil
}

// Caption picks the display text for a node: the named property when present,
// otherwise the first label.
func (n *Node) Caption(property string) string {
	if v, ok := n.Properties[property]; ok && v != nil {
		return fmt.Sprint(v)
	}
	if len(n.Labels) > 0 {
		return n.Labels[0]
	}
	return n.ID
}

package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ExecuteCypher executes a raw read-only Cypher query and returns the rows as plain maps.
func (c *Neo4jClient) ExecuteCypher(ctx context.Context, query string) ([]map[string]any, error) {
	session := c.OpenSession(ctx)
	defer session.Close(ctx)

	records, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("cypher execution failed: %w", err)
	}
	return Rows(records), nil
}

// Rows converts driver records to maps keyed by column name.
func Rows(records []*neo4j.Record) []map[string]any {
	results := make([]map[string]any, 0, len(records))
	for _, record := range records {
		row := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = convertNeo4jValue(record.Values[i])
		}
		results = append(results, row)
	}
	return results
}

// convertNeo4jValue converts Neo4j types to Go native types.
func convertNeo4jValue(val any) any {
	switch v := val.(type) {
	case neo4j.Node:
		return map[string]any{
			"labels":     v.Labels,
			"properties": v.Props,
			"id":         v.ElementId,
		}
	case neo4j.Relationship:
		return map[string]any{
			"id":         v.ElementId,
			"type":       v.Type,
			"properties": v.Props,
			"startNode":  v.StartElementId,
			"endNode":    v.EndElementId,
		}
	case neo4j.Path:
		nodes := make([]any, len(v.Nodes))
		for i, n := range v.Nodes {
			nodes[i] = convertNeo4jValue(n)
		}
		rels := make([]any, len(v.Relationships))
		for i, r := range v.Relationships {
			rels[i] = convertNeo4jValue(r)
		}
		return map[string]any{
			"nodes":         nodes,
			"relationships": rels,
		}
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = convertNeo4jValue(item)
		}
		return result
	case map[string]any:
		result := make(map[string]any)
		for k, v := range v {
			result[k] = convertNeo4jValue(v)
		}
		return result
	default:
		return v
	}
}

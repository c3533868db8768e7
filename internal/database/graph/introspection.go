package graph

import (
	"context"
	"fmt"
)

const (
	// LabelsQuery lists every node label known to the database.
	LabelsQuery = "CALL db.labels()"
	// RelationshipTypesQuery lists every relationship type known to the database.
	RelationshipTypesQuery = "CALL db.relationshipTypes()"
)

// ListLabels returns the node labels reported by the database, in server order.
func ListLabels(ctx context.Context, r Runner) ([]string, error) {
	return firstColumn(ctx, r, LabelsQuery)
}

// ListRelationshipTypes returns the relationship types reported by the database, in server order.
func ListRelationshipTypes(ctx context.Context, r Runner) ([]string, error) {
	return firstColumn(ctx, r, RelationshipTypesQuery)
}

// firstColumn runs query and collects the first value of every record as a string.
// Duplicates and nulls are dropped; order of first appearance is kept.
func firstColumn(ctx context.Context, r Runner, query string) ([]string, error) {
	records, err := r.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", query, err)
	}

	names := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if record == nil || len(record.Values) == 0 || record.Values[0] == nil {
			continue
		}
		name, ok := record.Values[0].(string)
		if !ok {
			name = fmt.Sprint(record.Values[0])
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

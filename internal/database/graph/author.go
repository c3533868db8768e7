package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saulfrancisco-ruizacevedo/gocypher"
)

// ErrEmptyCypher is returned when an authoring call gets no statement to run.
var ErrEmptyCypher = errors.New("graph: empty cypher statement")

// ResetQuery builds the statement that removes every node and relationship.
func ResetQuery() (string, map[string]any, error) {
	return gocypher.NewQueryBuilder().
		Match(gocypher.N("n", "")).
		DetachDelete("n").
		Build()
}

// CreateGraph wipes the database and then runs cypher. The two steps run in
// separate write transactions, so a failing cypher leaves the database empty.
func (c *Neo4jClient) CreateGraph(ctx context.Context, cypher string) error {
	if strings.TrimSpace(cypher) == "" {
		return ErrEmptyCypher
	}

	reset, params, err := ResetQuery()
	if err != nil {
		return fmt.Errorf("build reset query: %w", err)
	}
	if err := c.executeWrite(ctx, reset, params); err != nil {
		return fmt.Errorf("reset graph: %w", err)
	}
	if err := c.executeWrite(ctx, cypher, nil); err != nil {
		return fmt.Errorf("create graph: %w", err)
	}
	return nil
}

// UpdateGraph runs cypher against the existing data.
func (c *Neo4jClient) UpdateGraph(ctx context.Context, cypher string) error {
	if strings.TrimSpace(cypher) == "" {
		return ErrEmptyCypher
	}
	if err := c.executeWrite(ctx, cypher, nil); err != nil {
		return fmt.Errorf("update graph: %w", err)
	}
	return nil
}

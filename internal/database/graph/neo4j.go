package graph

import (
	"context"
	"fmt"

	"graphview/internal/config"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Runner executes a single read query and returns its buffered records.
type Runner interface {
	Run(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error)
}

// Session is a scoped unit of work. Callers must Close it on every exit path.
type Session interface {
	Runner
	Close(ctx context.Context) error
}

// Author replaces or extends the stored graph.
type Author interface {
	CreateGraph(ctx context.Context, cypher string) error
	UpdateGraph(ctx context.Context, cypher string) error
}

// GraphClient defines the interface for graph database operations.
type GraphClient interface {
	Author
	OpenSession(ctx context.Context) Session
	ExecuteCypher(ctx context.Context, query string) ([]map[string]any, error)
	SampleGraph(ctx context.Context, query string) (*Sample, error)
	Close(ctx context.Context) error
}

// Neo4jClient implements GraphClient for Neo4j.
type Neo4jClient struct {
	driver neo4j.DriverWithContext
	dbName string
}

// NewNeo4jClient creates a driver for cfg and verifies it can reach the server.
// ctx bounds the connectivity check; no extra timeout is applied.
func NewNeo4jClient(ctx context.Context, cfg config.Neo4jConfig) (*Neo4jClient, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URL, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to neo4j: %w", err)
	}

	return &Neo4jClient{
		driver: driver,
		dbName: cfg.Database,
	}, nil
}

func (c *Neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// OpenSession opens a read session against the configured database.
func (c *Neo4jClient) OpenSession(ctx context.Context) Session {
	return &readSession{
		session: c.driver.NewSession(ctx, neo4j.SessionConfig{
			DatabaseName: c.dbName,
			AccessMode:   neo4j.AccessModeRead,
		}),
	}
}

type readSession struct {
	session neo4j.SessionWithContext
}

// Run executes query as an auto-commit statement. Failures surface to the
// caller as-is; nothing is retried.
func (s *readSession) Run(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, error) {
	res, err := s.session.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return res.Collect(ctx)
}

func (s *readSession) Close(ctx context.Context) error {
	return s.session.Close(ctx)
}

// executeWrite runs query in a write transaction on a fresh session.
func (c *Neo4jClient) executeWrite(ctx context.Context, query string, params map[string]any) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.dbName,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	return err
}

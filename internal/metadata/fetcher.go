// Package metadata fetches the node labels and relationship types a graph database knows about.
package metadata

import (
	"context"
	"fmt"
	"log/slog"

	"graphview/internal/config"
	"graphview/internal/database/graph"
	"graphview/internal/metrics"
)

// FailureKind classifies why a fetch produced no metadata.
type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureConnection covers unreachable servers and rejected credentials.
	FailureConnection
	// FailureQuery covers introspection queries the server refused or aborted.
	FailureQuery
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureConnection:
		return "connection"
	case FailureQuery:
		return "query"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Status values reported for a Result.
const (
	StatusOK     = "ok"
	StatusEmpty  = "empty"
	StatusFailed = "failed"
)

// Result is the outcome of one fetch cycle. On failure both sequences are empty
// and Err wraps the cause.
type Result struct {
	Labels            []string
	RelationshipTypes []string
	Failure           FailureKind
	Err               error
}

// Failed reports whether the fetch hit a connection or query error.
func (r Result) Failed() bool {
	return r.Failure != FailureNone
}

// Renderable reports whether both sequences are non-empty.
func (r Result) Renderable() bool {
	return len(r.Labels) > 0 && len(r.RelationshipTypes) > 0
}

// Status summarises the result as ok, empty or failed.
func (r Result) Status() string {
	switch {
	case r.Failed():
		return StatusFailed
	case !r.Renderable():
		return StatusEmpty
	default:
		return StatusOK
	}
}

// FetchError wraps the error that ended a fetch cycle.
type FetchError struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("metadata %s failed (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Conn is a scoped database handle that can hand out sessions.
type Conn interface {
	OpenSession(ctx context.Context) graph.Session
	Close(ctx context.Context) error
}

// Connector opens a Conn for a single fetch cycle.
type Connector func(ctx context.Context) (Conn, error)

// Neo4jConnector returns a Connector that creates a fresh driver from cfg on every call.
func Neo4jConnector(cfg config.Neo4jConfig) Connector {
	return func(ctx context.Context) (Conn, error) {
		client, err := graph.NewNeo4jClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// Fetcher runs the two introspection queries.
type Fetcher struct {
	connect Connector
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher. A nil logger falls back to slog.Default().
func NewFetcher(connect Connector, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{connect: connect, logger: logger}
}

// Fetch connects, lists labels then relationship types, and releases the connection.
// Errors never escape: they are logged and reported through Result.Failure and Result.Err.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	res := f.fetch(ctx)

	outcome := res.Status()
	if res.Failed() {
		outcome = res.Failure.String()
		f.logger.Error("metadata fetch failed", "kind", res.Failure.String(), "error", res.Err)
	} else {
		f.logger.Info("metadata fetched",
			"labels", len(res.Labels),
			"relationship_types", len(res.RelationshipTypes),
			"status", outcome)
	}
	metrics.MetadataFetchesTotal.WithLabelValues(outcome).Inc()

	return res
}

func (f *Fetcher) fetch(ctx context.Context) Result {
	conn, err := f.connect(ctx)
	if err != nil {
		return failed(FailureConnection, "connect", err)
	}
	if conn == nil {
		return failed(FailureConnection, "connect", fmt.Errorf("connector returned no connection"))
	}
	defer func() {
		if cerr := conn.Close(ctx); cerr != nil {
			f.logger.Warn("closing graph connection", "error", cerr)
		}
	}()

	session := conn.OpenSession(ctx)
	defer func() {
		if cerr := session.Close(ctx); cerr != nil {
			f.logger.Warn("closing graph session", "error", cerr)
		}
	}()

	labels, err := graph.ListLabels(ctx, session)
	if err != nil {
		return failed(FailureQuery, "labels", err)
	}
	types, err := graph.ListRelationshipTypes(ctx, session)
	if err != nil {
		return failed(FailureQuery, "relationship types", err)
	}

	return Result{Labels: labels, RelationshipTypes: types}
}

func failed(kind FailureKind, op string, err error) Result {
	return Result{
		Labels:            []string{},
		RelationshipTypes: []string{},
		Failure:           kind,
		Err:               &FetchError{Kind: kind, Op: op, Err: err},
	}
}

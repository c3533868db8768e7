package visconfig

import (
	"errors"

	"github.com/google/uuid"

	"graphview/internal/config"
)

// SampleQuery is the bounded query the widget draws on first render.
const SampleQuery = "MATCH (n)-[r]->(m) RETURN n,r,m LIMIT 100"

// ErrNothingToRender is returned when either the label or relationship-type sequence is empty.
var ErrNothingToRender = errors.New("visconfig: nothing to render")

// Connection is the descriptor the widget uses to reach the database.
type Connection struct {
	ServerURL      string `json:"serverUrl"`
	ServerUser     string `json:"serverUser"`
	ServerPassword string `json:"serverPassword"`
}

// ConnectionFrom copies the credentials out of the startup configuration.
func ConnectionFrom(cfg config.Neo4jConfig) Connection {
	return Connection{
		ServerURL:      cfg.URL,
		ServerUser:     cfg.User,
		ServerPassword: cfg.Password,
	}
}

// RenderRequest is everything the widget needs for one render. It is built once per
// successful fetch and consumed once.
type RenderRequest struct {
	ID            string      `json:"id"`
	ContainerID   string      `json:"containerId"`
	Connection    Connection  `json:"neo4j"`
	InitialCypher string      `json:"initialCypher"`
	Style         StyleConfig `json:"style"`
}

// NewRenderRequest builds a request for the given sequences, or returns ErrNothingToRender
// when either is empty.
func NewRenderRequest(conn Connection, containerID string, labels, relationshipTypes []string) (*RenderRequest, error) {
	if len(labels) == 0 || len(relationshipTypes) == 0 {
		return nil, ErrNothingToRender
	}
	return &RenderRequest{
		ID:            uuid.NewString(),
		ContainerID:   containerID,
		Connection:    conn,
		InitialCypher: SampleQuery,
		Style:         Build(labels, relationshipTypes),
	}, nil
}

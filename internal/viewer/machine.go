// Package viewer drives a single mount of the graph view: fetch the schema once,
// configure the widget, render once.
package viewer

import (
	"errors"
	"fmt"

	"graphview/internal/metadata"
	"graphview/internal/visconfig"
)

// State is the lifecycle position of one mounted view.
type State int

const (
	Idle State = iota
	Fetching
	Configured
	Rendered
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Fetching:
		return "fetching"
	case Configured:
		return "configured"
	case Rendered:
		return "rendered"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrAlreadyMounted is returned by Mount on anything but a fresh machine.
var ErrAlreadyMounted = errors.New("viewer: already mounted")

// Machine tracks Idle -> Fetching -> Configured -> Rendered. Transitions only move forward;
// events that arrive in the wrong state are ignored. Not safe for concurrent use.
type Machine struct {
	state       State
	conn        visconfig.Connection
	containerID string
	result      metadata.Result
	request     *visconfig.RenderRequest
}

// NewMachine returns an Idle machine that will target containerID with conn.
func NewMachine(conn visconfig.Connection, containerID string) *Machine {
	return &Machine{conn: conn, containerID: containerID}
}

func (m *Machine) State() State {
	return m.state
}

// Result is the fetch result last applied, if any.
func (m *Machine) Result() metadata.Result {
	return m.result
}

// Request is the render request built on FetchCompleted, or nil.
func (m *Machine) Request() *visconfig.RenderRequest {
	return m.request
}

// Mount moves Idle to Fetching.
func (m *Machine) Mount() error {
	if m.state != Idle {
		return ErrAlreadyMounted
	}
	m.state = Fetching
	return nil
}

// FetchCompleted applies both sequences at once. When both are non-empty the machine
// moves to Configured and returns the request to render. Otherwise it stays in Fetching
// for good and returns false.
func (m *Machine) FetchCompleted(res metadata.Result) (*visconfig.RenderRequest, bool) {
	if m.state != Fetching {
		return nil, false
	}
	m.result = res

	req, err := visconfig.NewRenderRequest(m.conn, m.containerID, res.Labels, res.RelationshipTypes)
	if err != nil {
		return nil, false
	}
	m.request = req
	m.state = Configured
	return req, true
}

// Rendered moves Configured to Rendered. It reports whether the transition happened.
func (m *Machine) Rendered() bool {
	if m.state != Configured {
		return false
	}
	m.state = Rendered
	return true
}

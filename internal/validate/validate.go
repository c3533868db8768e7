// Package validate checks request bodies against the embedded JSON schemas.
package validate

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema names.
const (
	Cypher   = "cypher"
	Concept  = "concept"
	Update   = "update"
	Question = "question"
	Link     = "link"
)

// MaxBodyBytes caps how much of a request body is read.
const MaxBodyBytes = 1 << 20

// ErrInvalid wraps every decoding or validation failure.
var ErrInvalid = errors.New("invalid request body")

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	once    sync.Once
	schemas map[string]*jsonschema.Schema
	loadErr error
)

func load() {
	c := jsonschema.NewCompiler()
	schemas = make(map[string]*jsonschema.Schema)

	names := []string{Cypher, Concept, Update, Question, Link}
	for _, name := range names {
		data, err := schemaFS.ReadFile("schemas/" + name + ".json")
		if err != nil {
			loadErr = err
			return
		}
		if err := c.AddResource(resourceURL(name), bytes.NewReader(data)); err != nil {
			loadErr = err
			return
		}
	}
	for _, name := range names {
		s, err := c.Compile(resourceURL(name))
		if err != nil {
			loadErr = err
			return
		}
		schemas[name] = s
	}
}

func resourceURL(name string) string {
	return "file:///graphview/schemas/" + name + ".json"
}

// Decode reads a JSON body from r, validates it against the named schema and
// unmarshals it into dst.
func Decode(r io.Reader, name string, dst any) error {
	once.Do(load)
	if loadErr != nil {
		return fmt.Errorf("load schemas: %w", loadErr)
	}
	schema, ok := schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	body, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(body) > MaxBodyBytes {
		return fmt.Errorf("%w: body exceeds %d bytes", ErrInvalid, MaxBodyBytes)
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

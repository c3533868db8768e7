package mcpserver

import (
	"context"
	"errors"
	"testing"

	"graphview/internal/database/graph"
	"graphview/internal/logging"
	"graphview/internal/metadata"
	"graphview/internal/rag"
	"graphview/internal/visconfig"
)

// MockFetcher implements viewer.Fetcher for testing
type MockFetcher struct {
	Result metadata.Result
}

func (m *MockFetcher) Fetch(ctx context.Context) metadata.Result {
	return m.Result
}

// MockGraphClient implements GraphReader for testing
type MockGraphClient struct {
	CypherResult []map[string]any
	CypherErr    error
	Sample       *graph.Sample
	LastQuery    string
}

func (m *MockGraphClient) ExecuteCypher(ctx context.Context, query string) ([]map[string]any, error) {
	m.LastQuery = query
	if m.CypherErr != nil {
		return nil, m.CypherErr
	}
	return m.CypherResult, nil
}

func (m *MockGraphClient) SampleGraph(ctx context.Context, query string) (*graph.Sample, error) {
	m.LastQuery = query
	if m.CypherErr != nil {
		return nil, m.CypherErr
	}
	return m.Sample, nil
}

// MockAsker implements Asker for testing
type MockAsker struct {
	Answer *rag.Answer
	Err    error
}

func (m *MockAsker) Query(ctx context.Context, question string) (*rag.Answer, error) {
	return m.Answer, m.Err
}

// MockLinker implements Linker for testing
type MockLinker struct {
	Cypher string
	Err    error
	Calls  []string
}

func (m *MockLinker) GraphCypherFromLink(ctx context.Context, url string) (string, error) {
	m.Calls = append(m.Calls, "create "+url)
	return m.Cypher, m.Err
}

func (m *MockLinker) UpdateCypherFromLink(ctx context.Context, url string) (string, error) {
	m.Calls = append(m.Calls, "update "+url)
	return m.Cypher, m.Err
}

// MockAuthor implements graph.Author for testing
type MockAuthor struct {
	Created []string
	Updated []string
	Err     error
}

func (m *MockAuthor) CreateGraph(ctx context.Context, cypher string) error {
	m.Created = append(m.Created, cypher)
	return m.Err
}

func (m *MockAuthor) UpdateGraph(ctx context.Context, cypher string) error {
	m.Updated = append(m.Updated, cypher)
	return m.Err
}

func TestHandleListSchema(t *testing.T) {
	s := &Server{fetcher: &MockFetcher{Result: metadata.Result{
		Labels:            []string{"Person", "Movie"},
		RelationshipTypes: []string{"ACTED_IN"},
	}}}

	_, result, err := s.handleListSchema(context.Background(), nil, ListSchemaArgs{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Status != metadata.StatusOK {
		t.Errorf("Expected status ok, got %s", result.Status)
	}
	if len(result.Labels) != 2 || result.Labels[0] != "Person" {
		t.Errorf("Unexpected labels: %v", result.Labels)
	}
	if result.Failure != "" {
		t.Errorf("Expected no failure, got %s", result.Failure)
	}
}

func TestHandleListSchema_Failure(t *testing.T) {
	s := &Server{fetcher: &MockFetcher{Result: metadata.Result{
		Failure: metadata.FailureConnection,
		Err:     errors.New("connection refused"),
	}}}

	_, result, err := s.handleListSchema(context.Background(), nil, ListSchemaArgs{})
	if err != nil {
		t.Fatalf("Failures are reported in the result, got error: %v", err)
	}
	if result.Status != metadata.StatusFailed {
		t.Errorf("Expected status failed, got %s", result.Status)
	}
	if result.Failure != "connection" {
		t.Errorf("Expected failure 'connection', got '%s'", result.Failure)
	}
	if result.Labels == nil || result.RelationshipTypes == nil {
		t.Error("Expected empty, non-nil lists")
	}
}

func TestHandleStyleConfig(t *testing.T) {
	s := &Server{
		containerID: "graph",
		fetcher: &MockFetcher{Result: metadata.Result{
			Labels:            []string{"Person"},
			RelationshipTypes: []string{"KNOWS"},
		}},
	}

	_, result, err := s.handleStyleConfig(context.Background(), nil, StyleConfigArgs{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	person, ok := result.Style.Labels["Person"]
	if !ok {
		t.Fatal("Expected a style for Person")
	}
	if person.Advanced.Static.Color != visconfig.NodeColor {
		t.Errorf("Expected color %s, got %s", visconfig.NodeColor, person.Advanced.Static.Color)
	}
	if result.Style.Relationships["KNOWS"].Advanced.Static.Arrows != "to" {
		t.Error("Expected arrows 'to' for KNOWS")
	}
}

func TestHandleStyleConfig_NothingToRender(t *testing.T) {
	s := &Server{fetcher: &MockFetcher{Result: metadata.Result{
		Labels:            []string{"Person", "Company"},
		RelationshipTypes: []string{},
	}}}

	_, _, err := s.handleStyleConfig(context.Background(), nil, StyleConfigArgs{})
	if !errors.Is(err, visconfig.ErrNothingToRender) {
		t.Fatalf("Expected ErrNothingToRender, got: %v", err)
	}
}

func TestHandleSampleGraph(t *testing.T) {
	mockGraph := &MockGraphClient{Sample: &graph.Sample{
		Nodes: []*graph.Node{{ID: "n1"}, {ID: "n2"}},
		Edges: []*graph.Edge{{ID: "r1", Source: "n1", Target: "n2", Type: "KNOWS"}},
	}}
	s := &Server{graph: mockGraph}

	_, result, err := s.handleSampleGraph(context.Background(), nil, SampleGraphArgs{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.Nodes) != 2 || len(result.Edges) != 1 {
		t.Errorf("Unexpected sample: %d nodes, %d edges", len(result.Nodes), len(result.Edges))
	}
	if mockGraph.LastQuery != visconfig.SampleQuery {
		t.Errorf("Expected sample query, got %s", mockGraph.LastQuery)
	}
}

func TestHandleQueryGraph(t *testing.T) {
	mockGraph := &MockGraphClient{
		CypherResult: []map[string]any{
			{"name": "Alice", "label": "Person"},
		},
	}
	s := &Server{graph: mockGraph}

	_, result, err := s.handleQueryGraph(context.Background(), nil, QueryGraphArgs{Cypher: "MATCH (p:Person) RETURN p.name AS name"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.Data) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(result.Data))
	}
	if result.Data[0]["name"] != "Alice" {
		t.Errorf("Expected name 'Alice', got '%v'", result.Data[0]["name"])
	}
}

func TestHandleQueryGraph_Error(t *testing.T) {
	s := &Server{graph: &MockGraphClient{CypherErr: errors.New("syntax error")}}

	_, _, err := s.handleQueryGraph(context.Background(), nil, QueryGraphArgs{Cypher: "INVALID"})
	if err == nil {
		t.Fatal("Expected error for invalid cypher query")
	}
}

func TestGraphToolsWithoutDatabase(t *testing.T) {
	s := &Server{}

	if _, _, err := s.handleQueryGraph(context.Background(), nil, QueryGraphArgs{Cypher: "MATCH (n) RETURN n"}); err == nil {
		t.Error("Expected error when database is unavailable")
	}
	if _, _, err := s.handleSampleGraph(context.Background(), nil, SampleGraphArgs{}); err == nil {
		t.Error("Expected error when database is unavailable")
	}
}

func TestHandleAskGraph(t *testing.T) {
	s := &Server{asker: &MockAsker{Answer: &rag.Answer{Answer: "Alice acted in The Matrix."}}}

	_, result, err := s.handleAskGraph(context.Background(), nil, AskGraphArgs{Question: "What did Alice do?"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Answer != "Alice acted in The Matrix." {
		t.Errorf("Unexpected answer: %s", result.Answer)
	}

	s.asker = &MockAsker{Err: errors.New("quota")}
	if _, _, err := s.handleAskGraph(context.Background(), nil, AskGraphArgs{Question: "?"}); err == nil {
		t.Error("Expected error to propagate")
	}
}

func TestHandleGraphFromLink(t *testing.T) {
	linker := &MockLinker{Cypher: "CREATE (a:Concept {name: 'Attention'})"}
	author := &MockAuthor{}
	s := &Server{linker: linker, author: author, logger: logging.Discard()}

	_, result, err := s.handleGraphFromLink(context.Background(), nil, GraphFromLinkArgs{URL: "https://example.test/paper.pdf"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Cypher != linker.Cypher || result.Updated {
		t.Errorf("Unexpected result: %+v", result)
	}
	if len(author.Created) != 1 || len(author.Updated) != 0 {
		t.Errorf("Expected one create, got created=%v updated=%v", author.Created, author.Updated)
	}

	_, result, err = s.handleGraphFromLink(context.Background(), nil, GraphFromLinkArgs{URL: "https://example.test/more.pdf", Update: true})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.Updated || len(author.Updated) != 1 {
		t.Errorf("Expected an update, got %+v", result)
	}
	if linker.Calls[1] != "update https://example.test/more.pdf" {
		t.Errorf("Unexpected linker calls: %v", linker.Calls)
	}
}

func TestHandleGraphFromLink_Errors(t *testing.T) {
	linker := &MockLinker{Err: errors.New("404 Not Found")}
	author := &MockAuthor{}
	s := &Server{linker: linker, author: author, logger: logging.Discard()}

	if _, _, err := s.handleGraphFromLink(context.Background(), nil, GraphFromLinkArgs{URL: "ftp://example.test/x.pdf"}); err == nil {
		t.Error("Expected error for a non-http link")
	}
	if len(linker.Calls) != 0 {
		t.Errorf("Expected no generation for a rejected link, got %v", linker.Calls)
	}

	if _, _, err := s.handleGraphFromLink(context.Background(), nil, GraphFromLinkArgs{URL: "https://example.test/x.pdf"}); err == nil {
		t.Error("Expected generation error to propagate")
	}
	if len(author.Created) != 0 {
		t.Error("Expected nothing stored after a failed generation")
	}
}

func TestNewServer_UnreachableDatabase(t *testing.T) {
	cfg := Config{ServerName: "graphview-test", ServerVersion: "0.0.0"}
	cfg.App.View.ContainerID = "graph"

	s, err := NewServer(context.Background(), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("Expected server despite missing database, got: %v", err)
	}
	defer s.Close(context.Background())

	if s.graph != nil {
		t.Error("Expected no graph client without a database URL")
	}
	if s.asker != nil || s.linker != nil {
		t.Error("Expected LLM tools disabled without an API key")
	}
}

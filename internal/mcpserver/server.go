package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/option"

	"graphview/internal/config"
	"graphview/internal/database/graph"
	"graphview/internal/metadata"
	"graphview/internal/rag"
	"graphview/internal/viewer"
	"graphview/internal/visconfig"
)

// GraphReader is the read side of the graph client used by the tools.
type GraphReader interface {
	ExecuteCypher(ctx context.Context, query string) ([]map[string]any, error)
	SampleGraph(ctx context.Context, query string) (*graph.Sample, error)
}

// Asker answers natural-language questions about the graph.
type Asker interface {
	Query(ctx context.Context, question string) (*rag.Answer, error)
}

// Linker turns the document behind a link into Cypher.
type Linker interface {
	GraphCypherFromLink(ctx context.Context, url string) (string, error)
	UpdateCypherFromLink(ctx context.Context, url string) (string, error)
}

// Server wraps the MCP server with graphview capabilities.
type Server struct {
	mcpServer    *mcp.Server
	fetcher      viewer.Fetcher
	graph        GraphReader
	author       graph.Author
	asker        Asker
	linker       Linker
	neo4jClient  *graph.Neo4jClient
	geminiClient *genai.Client
	containerID  string
	logger       *slog.Logger
}

// Config holds configuration for the MCP server.
type Config struct {
	ServerName    string
	ServerVersion string
	App           config.Config
}

// NewServer creates a new MCP server instance. An unreachable database is logged and
// surfaces later through the tools; the Gemini client is only created when an API key is set.
func NewServer(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		fetcher:     metadata.NewFetcher(metadata.Neo4jConnector(cfg.App.Neo4j), logger),
		containerID: cfg.App.View.ContainerID,
		logger:      logger,
	}

	neo4jClient, err := graph.NewNeo4jClient(ctx, cfg.App.Neo4j)
	if err != nil {
		logger.Warn("neo4j unavailable, graph tools will fail", "error", err)
	} else {
		s.neo4jClient = neo4jClient
		s.graph = neo4jClient
	}

	if cfg.App.LLMEnabled() && s.graph != nil {
		geminiClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.App.Gemini.APIKey))
		if err != nil {
			s.Close(ctx)
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		s.geminiClient = geminiClient
		gen := rag.NewGeminiGenerator(geminiClient, cfg.App.Gemini.Model)
		logger.Info("LLM tools enabled", "model", gen.Model())
		engine := rag.NewGraphRAGEngine(s.graph, s.fetcher, gen, logger)
		s.asker = engine
		s.linker = engine
		s.author = neo4jClient
	}

	impl := &mcp.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}
	s.mcpServer = mcp.NewServer(impl, nil)
	s.registerTools()

	return s, nil
}

// ListSchemaArgs is the (empty) input for list_schema.
type ListSchemaArgs struct{}

// ListSchemaResult reports one metadata fetch.
type ListSchemaResult struct {
	Labels            []string `json:"labels" jsonschema:"node labels in server order"`
	RelationshipTypes []string `json:"relationship_types" jsonschema:"relationship types in server order"`
	Status            string   `json:"status" jsonschema:"ok, empty or failed"`
	Failure           string   `json:"failure,omitempty" jsonschema:"connection or query when status is failed"`
}

// StyleConfigArgs is the (empty) input for style_config.
type StyleConfigArgs struct{}

// StyleConfigResult wraps the visualization style.
type StyleConfigResult struct {
	Style visconfig.StyleConfig `json:"style" jsonschema:"per-label node styles and per-type edge styles"`
}

// SampleGraphArgs is the (empty) input for sample_graph.
type SampleGraphArgs struct{}

// QueryGraphArgs defines the input for query_graph tool.
type QueryGraphArgs struct {
	Cypher string `json:"cypher" jsonschema:"Cypher query to execute"`
}

// QueryGraphResult wraps graph query results.
type QueryGraphResult struct {
	Data []map[string]any `json:"data" jsonschema:"query results"`
}

// AskGraphArgs defines the input for ask_graph tool.
type AskGraphArgs struct {
	Question string `json:"question" jsonschema:"the question to ask about the graph"`
}

// GraphFromLinkArgs defines the input for graph_from_link tool.
type GraphFromLinkArgs struct {
	URL    string `json:"url" jsonschema:"http or https link to a PDF document"`
	Update bool   `json:"update,omitempty" jsonschema:"merge into the existing graph instead of replacing it"`
}

// GraphFromLinkResult reports the Cypher that was run.
type GraphFromLinkResult struct {
	Cypher  string `json:"cypher" jsonschema:"the generated Cypher"`
	Updated bool   `json:"updated" jsonschema:"true when the existing graph was kept"`
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_schema",
		Description: "List the node labels and relationship types stored in the graph database. Status is 'failed' when the database could not be reached or queried, 'empty' when either list is empty.",
	}, s.handleListSchema)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "style_config",
		Description: "Build the visualization style for the current schema: one node style per label and one edge style per relationship type. Fails when there is nothing to render.",
	}, s.handleStyleConfig)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "sample_graph",
		Description: "Return the bounded sample subgraph the viewer draws (MATCH (n)-[r]->(m) RETURN n,r,m LIMIT 100) as nodes and edges.",
	}, s.handleSampleGraph)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "query_graph",
		Description: "Execute a read-only Cypher query on the Neo4j graph database. Use list_schema first to learn the labels and relationship types.",
	}, s.handleQueryGraph)

	if s.asker != nil {
		mcp.AddTool(s.mcpServer, &mcp.Tool{
			Name:        "ask_graph",
			Description: "Ask a natural-language question about the knowledge graph. The answer is generated from the results of a Cypher query built for the question.",
		}, s.handleAskGraph)
	}

	if s.linker != nil && s.author != nil {
		mcp.AddTool(s.mcpServer, &mcp.Tool{
			Name:        "graph_from_link",
			Description: "Download the PDF at a link, summarize its main ideas and store them as a knowledge graph. By default the current graph is replaced; set update to merge into it.",
		}, s.handleGraphFromLink)
	}
}

func (s *Server) handleListSchema(ctx context.Context, _ *mcp.CallToolRequest, _ ListSchemaArgs) (*mcp.CallToolResult, ListSchemaResult, error) {
	res := s.fetcher.Fetch(ctx)

	out := ListSchemaResult{
		Labels:            res.Labels,
		RelationshipTypes: res.RelationshipTypes,
		Status:            res.Status(),
	}
	if out.Labels == nil {
		out.Labels = []string{}
	}
	if out.RelationshipTypes == nil {
		out.RelationshipTypes = []string{}
	}
	if res.Failed() {
		out.Failure = res.Failure.String()
	}
	return nil, out, nil
}

func (s *Server) handleStyleConfig(ctx context.Context, _ *mcp.CallToolRequest, _ StyleConfigArgs) (*mcp.CallToolResult, StyleConfigResult, error) {
	res := s.fetcher.Fetch(ctx)

	req, err := visconfig.NewRenderRequest(visconfig.Connection{}, s.containerID, res.Labels, res.RelationshipTypes)
	if err != nil {
		return nil, StyleConfigResult{}, fmt.Errorf("%w (schema status %s)", err, res.Status())
	}
	return nil, StyleConfigResult{Style: req.Style}, nil
}

func (s *Server) handleSampleGraph(ctx context.Context, _ *mcp.CallToolRequest, _ SampleGraphArgs) (*mcp.CallToolResult, *graph.Sample, error) {
	if s.graph == nil {
		return nil, nil, fmt.Errorf("graph database unavailable")
	}
	sample, err := s.graph.SampleGraph(ctx, visconfig.SampleQuery)
	if err != nil {
		return nil, nil, fmt.Errorf("sample query failed: %w", err)
	}
	return nil, sample, nil
}

// handleQueryGraph executes Cypher queries.
func (s *Server) handleQueryGraph(ctx context.Context, _ *mcp.CallToolRequest, args QueryGraphArgs) (*mcp.CallToolResult, QueryGraphResult, error) {
	if s.graph == nil {
		return nil, QueryGraphResult{}, fmt.Errorf("graph database unavailable")
	}
	result, err := s.graph.ExecuteCypher(ctx, args.Cypher)
	if err != nil {
		return nil, QueryGraphResult{}, fmt.Errorf("cypher query failed: %w", err)
	}
	return nil, QueryGraphResult{Data: result}, nil
}

// handleAskGraph uses GraphRAG to answer questions.
func (s *Server) handleAskGraph(ctx context.Context, _ *mcp.CallToolRequest, args AskGraphArgs) (*mcp.CallToolResult, *rag.Answer, error) {
	answer, err := s.asker.Query(ctx, args.Question)
	if err != nil {
		return nil, nil, fmt.Errorf("RAG query failed: %w", err)
	}
	return nil, answer, nil
}

// handleGraphFromLink builds or extends the graph from a linked document.
func (s *Server) handleGraphFromLink(ctx context.Context, _ *mcp.CallToolRequest, args GraphFromLinkArgs) (*mcp.CallToolResult, GraphFromLinkResult, error) {
	if !strings.HasPrefix(args.URL, "http://") && !strings.HasPrefix(args.URL, "https://") {
		return nil, GraphFromLinkResult{}, fmt.Errorf("url must be an http or https link")
	}

	generate, store := s.linker.GraphCypherFromLink, s.author.CreateGraph
	if args.Update {
		generate, store = s.linker.UpdateCypherFromLink, s.author.UpdateGraph
	}

	cypher, err := generate(ctx, args.URL)
	if err != nil {
		return nil, GraphFromLinkResult{}, fmt.Errorf("generation from link failed: %w", err)
	}
	if err := store(ctx, cypher); err != nil {
		return nil, GraphFromLinkResult{}, fmt.Errorf("storing graph failed: %w", err)
	}
	s.logger.Info("graph built from link", "url", args.URL, "update", args.Update)
	return nil, GraphFromLinkResult{Cypher: cypher, Updated: args.Update}, nil
}

// Start starts the MCP server using stdio transport.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting graphview MCP server on stdio")
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}

// Close cleans up resources.
func (s *Server) Close(ctx context.Context) error {
	if s.geminiClient != nil {
		s.geminiClient.Close()
	}
	if s.neo4jClient != nil {
		return s.neo4jClient.Close(ctx)
	}
	return nil
}

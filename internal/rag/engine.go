// Package rag turns natural language into Cypher and graph results back into answers.
package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"graphview/internal/metadata"
	"graphview/internal/visconfig"

	"github.com/google/generative-ai-go/genai"
)

// ErrEmptyInput is returned when a prompt argument is blank.
var ErrEmptyInput = errors.New("rag: empty input")

// ModelConfig defines configuration for a Gemini model.
type ModelConfig struct {
	Name        string
	Temperature float32
	TopP        float32
	TopK        int32
}

// AvailableModels defines the available Gemini models and their configurations.
var AvailableModels = map[string]ModelConfig{
	"flash": {
		Name:        "gemini-flash-latest",
		Temperature: 0.7,
		TopP:        0.95,
		TopK:        40,
	},
	"pro": {
		Name:        "gemini-pro-latest",
		Temperature: 0.7,
		TopP:        0.95,
		TopK:        40,
	},
	"flash-2": {
		Name:        "gemini-2.0-flash",
		Temperature: 0.7,
		TopP:        0.95,
		TopK:        40,
	},
	"experimental": {
		Name:        "gemini-2.0-flash-exp",
		Temperature: 0.7,
		TopP:        0.95,
		TopK:        40,
	},
}

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// GeminiGenerator implements Generator on top of a genai client.
type GeminiGenerator struct {
	client *genai.Client
	config ModelConfig
}

// NewGeminiGenerator picks the model for modelKey, falling back to "pro".
func NewGeminiGenerator(client *genai.Client, modelKey string) *GeminiGenerator {
	if modelKey == "" {
		modelKey = "pro"
	}
	cfg, ok := AvailableModels[modelKey]
	if !ok {
		cfg = AvailableModels["pro"]
	}
	return &GeminiGenerator{client: client, config: cfg}
}

// Model returns the resolved model name.
func (g *GeminiGenerator) Model() string {
	return g.config.Name
}

// Generate sends prompt to Gemini. A negative temperature keeps the model default.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	model := g.client.GenerativeModel(g.config.Name)
	model.SetTemperature(g.config.Temperature)
	if temperature >= 0 {
		model.SetTemperature(temperature)
	}
	model.SetTopP(g.config.TopP)
	model.SetTopK(g.config.TopK)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// GraphReader runs read queries for the engine.
type GraphReader interface {
	ExecuteCypher(ctx context.Context, query string) ([]map[string]any, error)
}

// SchemaSource supplies the live label and relationship-type lists.
type SchemaSource interface {
	Fetch(ctx context.Context) metadata.Result
}

// GraphRAGEngine handles retrieval augmented generation over the stored graph.
type GraphRAGEngine struct {
	graph  GraphReader
	schema SchemaSource
	llm    Generator
	docs   DocumentLoader
	logger *slog.Logger
}

// NewGraphRAGEngine wires the engine. schema may be nil, in which case prompts carry no schema.
// Linked documents are fetched with a PDFLinkLoader.
func NewGraphRAGEngine(graph GraphReader, schema SchemaSource, llm Generator, logger *slog.Logger) *GraphRAGEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &GraphRAGEngine{graph: graph, schema: schema, llm: llm, docs: NewPDFLinkLoader(nil), logger: logger}
}

// WithDocumentLoader replaces the loader used for linked documents.
func (e *GraphRAGEngine) WithDocumentLoader(l DocumentLoader) *GraphRAGEngine {
	e.docs = l
	return e
}

// Answer is a GraphRAG response with the query that produced its context.
type Answer struct {
	Answer   string           `json:"answer"`
	Cypher   string           `json:"cypher"`
	Fallback bool             `json:"fallback"`
	Rows     []map[string]any `json:"rows"`
}

// Query performs a GraphRAG search over the stored graph.
func (e *GraphRAGEngine) Query(ctx context.Context, question string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyInput
	}

	// Step 1: Generate Cypher query from the question and the live schema
	cypher, err := e.generateCypher(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to generate cypher: %w", err)
	}

	// Step 2: Execute it, falling back to the sample subgraph when it fails or finds nothing
	ans := &Answer{Cypher: cypher}
	rows, err := e.graph.ExecuteCypher(ctx, cypher)
	if err != nil || len(rows) == 0 {
		e.logger.Debug("generated query unusable, using sample query", "cypher", cypher, "error", err)
		ans.Cypher = visconfig.SampleQuery
		ans.Fallback = true
		rows, err = e.graph.ExecuteCypher(ctx, visconfig.SampleQuery)
		if err != nil {
			return nil, fmt.Errorf("failed to execute graph query: %w", err)
		}
	}
	ans.Rows = rows

	// Step 3: Synthesize answer with the graph context
	ans.Answer, err = e.synthesizeAnswer(ctx, question, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize answer: %w", err)
	}
	return ans, nil
}

// GenerateGraphCypher asks the model for Cypher that builds a knowledge graph from concept.
func (e *GraphRAGEngine) GenerateGraphCypher(ctx context.Context, concept string) (string, error) {
	if strings.TrimSpace(concept) == "" {
		return "", ErrEmptyInput
	}

	prompt := fmt.Sprintf(`Take the following paragraph and convert it into a knowledge graph with at most 10 concepts.
Don't limit the relations to just the main concept. Use Neo4j Cypher to create it.
Include hierarchy. Limit each bit of text to three words.
Give every node a "name" property holding its text.
Return ONLY Cypher that can be run in Neo4j without edits, no explanation.

Paragraph: %s`, concept)

	out, err := e.llm.Generate(ctx, prompt, 0)
	if err != nil {
		return "", fmt.Errorf("failed to generate graph cypher: %w", err)
	}
	return cleanCypherQuery(out), nil
}

// GenerateUpdateCypher asks the model for Cypher that applies update to the existing graph.
func (e *GraphRAGEngine) GenerateUpdateCypher(ctx context.Context, update string) (string, error) {
	if strings.TrimSpace(update) == "" {
		return "", ErrEmptyInput
	}

	prompt := fmt.Sprintf(`Take the update sentence below and generate Cypher that alters the concepts in an existing Neo4j knowledge graph.
%s
Assume the update intends to alter existing entities and relationships. Nodes carry their text in a "name" property.
Return ONLY the Cypher to update the graph, ready to run as a single query.

Update: %s`, e.schemaSection(ctx), update)

	out, err := e.llm.Generate(ctx, prompt, 0)
	if err != nil {
		return "", fmt.Errorf("failed to generate update cypher: %w", err)
	}
	return cleanCypherQuery(out), nil
}

// maxSummaryInput caps how much document text goes into the summary prompt.
const maxSummaryInput = 60000

// Summarize asks the model for the main ideas of a document.
func (e *GraphRAGEngine) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	if r := []rune(text); len(r) > maxSummaryInput {
		text = string(r[:maxSummaryInput])
	}

	prompt := fmt.Sprintf(`Return a list of the main ideas of the following document, one per line.
There is only program input and formatted program output. Do not address a reader.

Document:
%s`, text)

	out, err := e.llm.Generate(ctx, prompt, -1)
	if err != nil {
		return "", fmt.Errorf("failed to summarize document: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("failed to summarize document: %w", ErrEmptyInput)
	}
	return out, nil
}

// GraphCypherFromLink downloads the document at url, summarizes it and asks
// the model for Cypher that builds a knowledge graph of its main ideas.
func (e *GraphRAGEngine) GraphCypherFromLink(ctx context.Context, url string) (string, error) {
	summary, err := e.summarizeLink(ctx, url)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Convert the following text into Cypher code that creates a knowledge graph with at most five main two-word concepts as nodes.
Give every node a "name" property holding its text.
Return ONLY complete Cypher code that can be run in Neo4j without edits, no explanation.

Text: %s`, summary)

	out, err := e.llm.Generate(ctx, prompt, 0)
	if err != nil {
		return "", fmt.Errorf("failed to generate graph cypher: %w", err)
	}
	return cleanCypherQuery(out), nil
}

// UpdateCypherFromLink downloads the document at url, summarizes it and asks
// the model for Cypher that adds its main ideas to the existing graph.
func (e *GraphRAGEngine) UpdateCypherFromLink(ctx context.Context, url string) (string, error) {
	summary, err := e.summarizeLink(ctx, url)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Convert the following text into Cypher code that adds at most five main two-word concepts to an existing Neo4j knowledge graph.
%s
Connect the new nodes to existing ones with relevant, well-named relationships. Nodes carry their text in a "name" property.
Use MERGE so existing nodes are reused. Return ONLY the Cypher, ready to run as a single query.

Text: %s`, e.schemaSection(ctx), summary)

	out, err := e.llm.Generate(ctx, prompt, 0)
	if err != nil {
		return "", fmt.Errorf("failed to generate update cypher: %w", err)
	}
	return cleanCypherQuery(out), nil
}

func (e *GraphRAGEngine) summarizeLink(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", ErrEmptyInput
	}
	text, err := e.docs.Load(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", url, err)
	}
	e.logger.Debug("document loaded", "url", url, "chars", len(text))
	return e.Summarize(ctx, text)
}

// generateCypher converts a natural language question into a read query.
func (e *GraphRAGEngine) generateCypher(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(`You are a Neo4j Cypher query expert. Convert the following question into a read-only Cypher query.
%s
Nodes carry their display text in a "name" property.

Question: %s

Return ONLY the Cypher query, no explanation. Limit results to 10.`, e.schemaSection(ctx), question)

	out, err := e.llm.Generate(ctx, prompt, -1)
	if err != nil {
		return "", err
	}
	return cleanCypherQuery(out), nil
}

// schemaSection describes the live schema for prompts. Fetch failures leave it blank.
func (e *GraphRAGEngine) schemaSection(ctx context.Context) string {
	if e.schema == nil {
		return ""
	}
	res := e.schema.Fetch(ctx)
	if res.Failed() || (len(res.Labels) == 0 && len(res.RelationshipTypes) == 0) {
		return ""
	}
	return fmt.Sprintf("\nGraph Schema:\n- Node labels: %s\n- Relationship types: %s\n",
		strings.Join(res.Labels, ", "), strings.Join(res.RelationshipTypes, ", "))
}

// synthesizeAnswer generates a natural language answer from graph data.
func (e *GraphRAGEngine) synthesizeAnswer(ctx context.Context, question string, rows []map[string]any) (string, error) {
	graphJSON, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Answer the following question based on the knowledge graph results.

Question: %s

Graph Data (from Neo4j):
%s

Give a clear, concise answer grounded in the data.
If the graph data is empty or insufficient, say so clearly.`, question, string(graphJSON))

	answer, err := e.llm.Generate(ctx, prompt, -1)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return "Unable to generate response from the available data.", nil
	}
	return answer, nil
}

// cleanCypherQuery removes markdown code blocks from Cypher queries.
func cleanCypherQuery(query string) string {
	query = strings.TrimSpace(query)
	query = strings.TrimPrefix(query, "```cypher")
	query = strings.TrimPrefix(query, "```")
	query = strings.TrimSuffix(query, "```")
	return strings.TrimSpace(query)
}

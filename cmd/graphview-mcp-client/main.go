package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	flag.Parse()
	args := flag.Args()

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: graphview-mcp-client <server-command> [<args>]")
		fmt.Fprintln(os.Stderr, "Example: graphview-mcp-client ./graphview-mcp")
		os.Exit(2)
	}

	ctx := context.Background()

	// Start the server as a subprocess
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stderr = os.Stderr
	transport := &mcp.CommandTransport{Command: cmd}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "graphview-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer session.Close()

	fmt.Println("Connected to graphview MCP server!")
	fmt.Println("Available commands:")
	fmt.Println("  /tools           - List available tools")
	fmt.Println("  /schema          - List labels and relationship types")
	fmt.Println("  /style           - Show the visualization style")
	fmt.Println("  /sample          - Show the sample subgraph")
	fmt.Println("  /graph <cypher>  - Execute Cypher query")
	fmt.Println("  /link <url>      - Build the graph from a PDF link")
	fmt.Println("  /link+ <url>     - Merge a PDF link into the graph")
	fmt.Println("  /exit            - Exit the client")
	fmt.Println("  <question>       - Ask a question about the graph")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch {
		case input == "/exit":
			fmt.Println("Goodbye!")
			return

		case input == "/tools":
			listTools(ctx, session)

		case input == "/schema":
			callTool(ctx, session, "list_schema", map[string]any{})

		case input == "/style":
			callTool(ctx, session, "style_config", map[string]any{})

		case input == "/sample":
			callTool(ctx, session, "sample_graph", map[string]any{})

		case strings.HasPrefix(input, "/graph "):
			callTool(ctx, session, "query_graph", map[string]any{
				"cypher": strings.TrimPrefix(input, "/graph "),
			})

		case strings.HasPrefix(input, "/link "):
			callTool(ctx, session, "graph_from_link", map[string]any{
				"url": strings.TrimSpace(strings.TrimPrefix(input, "/link ")),
			})

		case strings.HasPrefix(input, "/link+ "):
			callTool(ctx, session, "graph_from_link", map[string]any{
				"url":    strings.TrimSpace(strings.TrimPrefix(input, "/link+ ")),
				"update": true,
			})

		case strings.HasPrefix(input, "/"):
			fmt.Printf("Unknown command %s\n\n", input)

		default:
			callTool(ctx, session, "ask_graph", map[string]any{
				"question": input,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Scanner error: %v", err)
	}
}

func listTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("Available Tools:")
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			log.Printf("Error listing tools: %v", err)
			return
		}
		fmt.Printf("  - %s: %s\n", tool.Name, tool.Description)
	}
	fmt.Println()
}

func callTool(ctx context.Context, session *mcp.ClientSession, toolName string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		log.Printf("Error calling %s: %v", toolName, err)
		return
	}

	printResult(result)
}

func printResult(result *mcp.CallToolResult) {
	if result.IsError {
		fmt.Printf("Error: ")
	} else {
		fmt.Printf("Result: ")
	}

	// Structured output is preferred; text content is the fallback.
	if result.StructuredContent != nil && !result.IsError {
		if data, err := json.MarshalIndent(result.StructuredContent, "", "  "); err == nil {
			fmt.Println(string(data))
			fmt.Println()
			return
		}
	}

	for _, content := range result.Content {
		switch v := content.(type) {
		case *mcp.TextContent:
			fmt.Println(v.Text)
		default:
			jsonData, err := json.MarshalIndent(content, "", "  ")
			if err != nil {
				fmt.Printf("%+v\n", content)
			} else {
				fmt.Println(string(jsonData))
			}
		}
	}
	fmt.Println()
}

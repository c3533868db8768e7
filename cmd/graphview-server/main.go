package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"graphview/internal/config"
	"graphview/internal/database/graph"
	"graphview/internal/logging"
	"graphview/internal/metadata"
	"graphview/internal/rag"
	"graphview/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "graphview-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("GRAPHVIEW_CONFIG"), os.LookupEnv)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := metadata.NewFetcher(metadata.Neo4jConnector(cfg.Neo4j), logger)
	opts := server.Options{
		Config:  cfg,
		Fetcher: fetcher,
		Logger:  logger,
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := graph.NewNeo4jClient(connectCtx, cfg.Neo4j)
	cancel()
	if err != nil {
		// The page still mounts: every fetch reports a connection failure and renders empty.
		logger.Warn("neo4j unavailable, graph endpoints disabled", "error", err)
	} else {
		defer client.Close(context.Background())
		opts.Graph = client

		if cfg.LLMEnabled() {
			geminiClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.APIKey))
			if err != nil {
				return fmt.Errorf("failed to create gemini client: %w", err)
			}
			defer geminiClient.Close()

			gen := rag.NewGeminiGenerator(geminiClient, cfg.Gemini.Model)
			logger.Info("LLM endpoints enabled", "model", gen.Model())
			opts.Assistant = rag.NewGraphRAGEngine(client, fetcher, gen, logger)
		}
	}

	return server.New(opts).Run(ctx)
}

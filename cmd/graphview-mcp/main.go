package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"graphview/internal/config"
	"graphview/internal/logging"
	"graphview/internal/mcpserver"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "graphview-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("GRAPHVIEW_CONFIG"), os.LookupEnv)
	if err != nil {
		return err
	}

	// stdout carries the protocol; logs stay on stderr or the configured file.
	logger, closer, err := logging.Open(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := mcpserver.NewServer(ctx, mcpserver.Config{
		ServerName:    "graphview",
		ServerVersion: version,
		App:           cfg,
	}, logger)
	if err != nil {
		return err
	}
	defer s.Close(context.Background())

	return s.Start(ctx)
}

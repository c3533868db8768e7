package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"graphview/internal/config"
	"graphview/internal/database/graph"
	"graphview/internal/logging"
	"graphview/internal/metadata"
	"graphview/internal/output"
	"graphview/internal/viewer"
	"graphview/internal/visconfig"
	"graphview/ui/console"
	"graphview/ui/tui"

	"github.com/joho/godotenv"
)

const defaultLogFile = "graphview.log"

func main() {
	report := flag.Bool("report", false, "print the schema report once and exit instead of starting the TUI")
	flag.Parse()

	if err := run(*report); err != nil {
		fmt.Printf("Error running graphview: %v\n", err)
		os.Exit(1)
	}
}

func run(report bool) error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("GRAPHVIEW_CONFIG"), os.LookupEnv)
	if err != nil {
		return err
	}
	// The alt-screen owns the terminal, so TUI logs always go to a file.
	if !report && cfg.Log.File == "" {
		cfg = cfg.WithLogFile(defaultLogFile)
	}

	logger, closer, err := logging.Open(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	fetcher := metadata.NewFetcher(metadata.Neo4jConnector(cfg.Neo4j), logger)

	if report {
		// No deadline: the fetch ends when the database answers or fails, or on Ctrl-C.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// The report is the render target: nothing to draw beyond the printed config.
		p := viewer.NewPipeline(fetcher, viewer.RendererFunc(func(context.Context, *visconfig.RenderRequest) error {
			return nil
		}), visconfig.ConnectionFrom(cfg.Neo4j), cfg.View.ContainerID, "report", logger)

		out, err := p.Run(ctx)
		if err != nil {
			return err
		}
		console.Print(os.Stdout, output.BuildReport(out.Result, out.Request))
		return nil
	}

	var sampler tui.Sampler
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := graph.NewNeo4jClient(ctx, cfg.Neo4j)
	cancel()
	if err != nil {
		logger.Warn("neo4j unavailable, sample graph disabled", "error", err)
	} else {
		defer client.Close(context.Background())
		sampler = client
	}

	return tui.Start(fetcher, sampler, cfg, logger)
}

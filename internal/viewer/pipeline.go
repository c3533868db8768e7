package viewer

import (
	"context"
	"fmt"
	"log/slog"

	"graphview/internal/metadata"
	"graphview/internal/metrics"
	"graphview/internal/visconfig"
)

// Fetcher produces the schema for one mount.
type Fetcher interface {
	Fetch(ctx context.Context) metadata.Result
}

// Renderer hands a request to the drawing widget.
type Renderer interface {
	Render(ctx context.Context, req *visconfig.RenderRequest) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, req *visconfig.RenderRequest) error

func (f RendererFunc) Render(ctx context.Context, req *visconfig.RenderRequest) error {
	return f(ctx, req)
}

// Outcome is what one pipeline run ended with.
type Outcome struct {
	State   State
	Result  metadata.Result
	Request *visconfig.RenderRequest
}

type event interface{ isEvent() }

type mounted struct{}

type fetchCompleted struct{ result metadata.Result }

type renderRequested struct{ request *visconfig.RenderRequest }

type renderDone struct{}

func (mounted) isEvent()         {}
func (fetchCompleted) isEvent()  {}
func (renderRequested) isEvent() {}
func (renderDone) isEvent()      {}

// Pipeline runs one mount on the calling goroutine.
type Pipeline struct {
	fetcher  Fetcher
	renderer Renderer
	machine  *Machine
	frontend string
	logger   *slog.Logger
}

// NewPipeline wires a fresh Machine to fetcher and renderer. frontend labels metrics and logs.
func NewPipeline(fetcher Fetcher, renderer Renderer, conn visconfig.Connection, containerID, frontend string, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		fetcher:  fetcher,
		renderer: renderer,
		machine:  NewMachine(conn, containerID),
		frontend: frontend,
		logger:   logger.With("frontend", frontend),
	}
}

// Run mounts the view and processes events until the queue drains. The returned error is
// non-nil only when the renderer failed or the pipeline was already run.
func (p *Pipeline) Run(ctx context.Context) (Outcome, error) {
	queue := []event{mounted{}}

	for len(queue) > 0 {
		ev := queue[0]
		queue = queue[1:]

		switch e := ev.(type) {
		case mounted:
			if err := p.machine.Mount(); err != nil {
				return p.outcome(), err
			}
			queue = append(queue, fetchCompleted{result: p.fetcher.Fetch(ctx)})

		case fetchCompleted:
			req, ok := p.machine.FetchCompleted(e.result)
			if !ok {
				p.logger.Info("render skipped", "status", e.result.Status(), "state", p.machine.State().String())
				metrics.RendersTotal.WithLabelValues(p.frontend, "skipped").Inc()
				continue
			}
			queue = append(queue, renderRequested{request: req})

		case renderRequested:
			if err := p.renderer.Render(ctx, e.request); err != nil {
				metrics.RendersTotal.WithLabelValues(p.frontend, "failed").Inc()
				return p.outcome(), fmt.Errorf("render %s: %w", e.request.ID, err)
			}
			queue = append(queue, renderDone{})

		case renderDone:
			p.machine.Rendered()
			metrics.RendersTotal.WithLabelValues(p.frontend, "rendered").Inc()
			p.logger.Debug("graph rendered", "request_id", p.machine.Request().ID)
		}
	}

	return p.outcome(), nil
}

func (p *Pipeline) outcome() Outcome {
	return Outcome{
		State:   p.machine.State(),
		Result:  p.machine.Result(),
		Request: p.machine.Request(),
	}
}

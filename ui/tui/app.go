package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"graphview/internal/config"
	"graphview/internal/database/graph"
	"graphview/internal/metadata"
	"graphview/internal/metrics"
	"graphview/internal/viewer"
	"graphview/internal/visconfig"
	"graphview/ui/tui/components"
	"graphview/ui/tui/state"
	"graphview/ui/tui/views"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

const (
	frontend     = "tui"
	maxLogLines  = 100
	// sampleTimeout bounds the widget's sample query only. The metadata
	// fetch runs until the database answers or fails.
	sampleTimeout = 30 * time.Second
)

// Sampler loads the subgraph the widget draws.
type Sampler interface {
	SampleGraph(ctx context.Context, query string) (*graph.Sample, error)
}

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	fetcher        viewer.Fetcher
	sampler        Sampler
	machine        *viewer.Machine
	logger         *slog.Logger
	state          state.AppState
	spinner        spinner.Model
	graph          *components.GraphWidget
	legendCursor   int
	animCursor     float64
	velocity       float64 // Physics velocity
	spring         harmonica.Spring
	consoleScrollY int
	configScrollY  int
	mouseX         int
	mouseY         int
	quitting       bool
	width          int
	height         int
}

// Messages
type AnimateMsg time.Time

// MetadataFetchedMsg carries the single fetch of one mount.
type MetadataFetchedMsg struct {
	Result metadata.Result
}

// GraphRenderedMsg reports the render step for Request.
type GraphRenderedMsg struct {
	Request *visconfig.RenderRequest
	Sample  *graph.Sample
	Err     error
}

// InitialModel builds an Idle model. sampler may be nil, in which case an empty graph is drawn.
func InitialModel(fetcher viewer.Fetcher, sampler Sampler, cfg config.Config, logger *slog.Logger) MainModel {
	if logger == nil {
		logger = slog.Default()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Increased frequency (12.0) for faster response and damping (0.9) to prevent overshoot
	spring := harmonica.NewSpring(harmonica.FPS(60), 12.0, 0.9)

	return MainModel{
		fetcher: fetcher,
		sampler: sampler,
		machine: viewer.NewMachine(visconfig.ConnectionFrom(cfg.Neo4j), cfg.View.ContainerID),
		logger:  logger.With("frontend", frontend),
		spinner: s,
		graph:   components.NewGraphWidget(60, 20),
		spring:  spring,
		state: state.AppState{
			CurrentPage: state.PageGraph,
		},
	}
}

// Init mounts the view and starts the one fetch.
func (m *MainModel) Init() tea.Cmd {
	zone.NewGlobal()

	if err := m.machine.Mount(); err != nil {
		m.logger.Warn("mount ignored", "error", err)
		return nil
	}
	m.state.ViewState = m.machine.State()
	m.log("mounted, fetching labels and relationship types")

	return tea.Batch(
		m.spinner.Tick,
		animateCmd(),
		fetchMetadataCmd(m.fetcher),
	)
}

// Commands
func animateCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

func fetchMetadataCmd(f viewer.Fetcher) tea.Cmd {
	return func() tea.Msg {
		return MetadataFetchedMsg{Result: f.Fetch(context.Background())}
	}
}

func renderGraphCmd(s Sampler, req *visconfig.RenderRequest) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return GraphRenderedMsg{Request: req, Sample: &graph.Sample{}}
		}
		ctx, cancel := context.WithTimeout(context.Background(), sampleTimeout)
		defer cancel()
		sample, err := s.SampleGraph(ctx, req.InitialCypher)
		return GraphRenderedMsg{Request: req, Sample: sample, Err: err}
	}
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case AnimateMsg:
		return m.handleAnimateMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)

	case MetadataFetchedMsg:
		return m.handleMetadataFetchedMsg(msg)

	case GraphRenderedMsg:
		return m.handleGraphRenderedMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "1", "2", "3", "4":
		m.navigateTo(state.Page(msg.Runes[0] - '1'))
		return m, nil
	case "tab":
		m.navigateTo((m.state.CurrentPage + 1) % state.Page(len(state.PageTitles)))
		return m, nil
	case "shift+tab":
		n := state.Page(len(state.PageTitles))
		m.navigateTo((m.state.CurrentPage + n - 1) % n)
		return m, nil
	}

	up := msg.String() == "up" || msg.String() == "k"
	down := msg.String() == "down" || msg.String() == "j"

	switch m.state.CurrentPage {
	case state.PageSchema:
		if up && m.legendCursor > 0 {
			m.legendCursor--
		}
		if down && m.legendCursor < len(m.state.Legend())-1 {
			m.legendCursor++
		}
	case state.PageConsole:
		if up && m.consoleScrollY > 0 {
			m.consoleScrollY--
		}
		if down {
			m.consoleScrollY++
		}
	case state.PageConfig:
		if up && m.configScrollY > 0 {
			m.configScrollY--
		}
		if down {
			m.configScrollY++
		}
	}
	return m, nil
}

func (m *MainModel) navigateTo(p state.Page) {
	if p < 0 || int(p) >= len(state.PageTitles) {
		return
	}
	m.state.CurrentPage = p
}

func (m *MainModel) handleAnimateMsg(msg AnimateMsg) (tea.Model, tea.Cmd) {
	var v float64 = m.velocity
	m.animCursor, v = m.spring.Update(m.animCursor, float64(m.legendCursor), v)
	m.velocity = v
	return m, animateCmd()
}

func (m *MainModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	newW := msg.Width*2/3 - 8
	newH := msg.Height - 16
	if newW > 10 && newH > 5 {
		m.graph.Resize(newW, newH)
	}
	return m, nil
}

func (m *MainModel) handleMetadataFetchedMsg(msg MetadataFetchedMsg) (tea.Model, tea.Cmd) {
	res := msg.Result
	m.state.Result = res
	m.state.Fetched = true

	if res.Failed() {
		m.log(fmt.Sprintf("fetch failed (%s): %v", res.Failure, res.Err))
	} else {
		m.log(fmt.Sprintf("fetched %d labels, %d relationship types", len(res.Labels), len(res.RelationshipTypes)))
	}

	req, ok := m.machine.FetchCompleted(res)
	m.state.ViewState = m.machine.State()
	if !ok {
		m.logger.Info("render skipped", "status", res.Status(), "state", m.machine.State().String())
		metrics.RendersTotal.WithLabelValues(frontend, "skipped").Inc()
		m.log("nothing to render, container left empty")
		return m, nil
	}

	m.state.Request = req
	m.log(fmt.Sprintf("configured request %s for #%s", req.ID, req.ContainerID))
	return m, renderGraphCmd(m.sampler, req)
}

func (m *MainModel) handleGraphRenderedMsg(msg GraphRenderedMsg) (tea.Model, tea.Cmd) {
	if m.machine.State() != viewer.Configured || msg.Request != m.machine.Request() {
		return m, nil
	}

	if msg.Err != nil {
		m.state.Err = fmt.Errorf("render %s: %w", msg.Request.ID, msg.Err)
		m.logger.Error("render failed", "request_id", msg.Request.ID, "error", msg.Err)
		metrics.RendersTotal.WithLabelValues(frontend, "failed").Inc()
		m.log(fmt.Sprintf("render failed: %v", msg.Err))
		return m, nil
	}

	m.state.Scene = m.graph.SetScene(msg.Sample, msg.Request.Style)
	m.machine.Rendered()
	m.state.ViewState = m.machine.State()
	m.state.LastUpdate = time.Now()
	metrics.RendersTotal.WithLabelValues(frontend, "rendered").Inc()
	m.logger.Debug("graph rendered", "request_id", msg.Request.ID)
	m.log(fmt.Sprintf("rendered %d nodes, %d edges", len(m.state.Scene.Nodes), len(m.state.Scene.Visible())))
	return m, nil
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.mouseX = msg.X
	m.mouseY = msg.Y

	if msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	for i := range state.PageTitles {
		if zone.Get(views.TabZoneID(i)).InBounds(msg) {
			m.navigateTo(state.Page(i))
			return m, nil
		}
	}
	if m.state.CurrentPage == state.PageSchema {
		for i := range m.state.Legend() {
			if zone.Get(views.LegendZoneID(i)).InBounds(msg) {
				m.legendCursor = i
				return m, nil
			}
		}
	}
	return m, nil
}

// log appends a timestamped line to the console page.
func (m *MainModel) log(line string) {
	m.state.ConsoleLogs = append(m.state.ConsoleLogs,
		fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), line))
	if len(m.state.ConsoleLogs) > maxLogLines {
		m.state.ConsoleLogs = m.state.ConsoleLogs[1:]
	}
}

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var body string
	switch m.state.CurrentPage {
	case state.PageGraph:
		graphView := ""
		if m.state.ViewState == viewer.Rendered {
			graphView = m.graph.View()
		}
		body = views.RenderGraph(m.state, m.spinner.View(), graphView, m.width)
	case state.PageSchema:
		body = views.RenderSchema(m.state, m.legendCursor, m.animCursor, m.mouseY)
	case state.PageConfig:
		body = views.RenderConfig(m.state, m.width, m.height, m.configScrollY)
	case state.PageConsole:
		body = views.RenderConsole(m.state, m.width, m.height, m.consoleScrollY)
	}

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left,
		views.RenderTabs(m.state, m.width, m.spinner.View()),
		body,
	))
}

// Start runs the program until the user quits.
func Start(fetcher viewer.Fetcher, sampler Sampler, cfg config.Config, logger *slog.Logger) error {
	m := InitialModel(fetcher, sampler, cfg, logger)
	p := tea.NewProgram(
		&m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

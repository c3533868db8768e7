package viewer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphview/internal/logging"
	"graphview/internal/metadata"
	"graphview/internal/visconfig"
)

type stubFetcher struct {
	result metadata.Result
	calls  int
}

func (f *stubFetcher) Fetch(context.Context) metadata.Result {
	f.calls++
	return f.result
}

type recordingRenderer struct {
	requests []*visconfig.RenderRequest
	err      error
}

func (r *recordingRenderer) Render(_ context.Context, req *visconfig.RenderRequest) error {
	r.requests = append(r.requests, req)
	return r.err
}

func ok(labels, types []string) metadata.Result {
	return metadata.Result{Labels: labels, RelationshipTypes: types}
}

func newPipeline(f Fetcher, r Renderer) *Pipeline {
	return NewPipeline(f, r, visconfig.Connection{ServerURL: "neo4j://db"}, "graph", "test", logging.Discard())
}

func TestMachine_HappyPath(t *testing.T) {
	m := NewMachine(visconfig.Connection{}, "graph")
	assert.Equal(t, Idle, m.State())

	require.NoError(t, m.Mount())
	assert.Equal(t, Fetching, m.State())

	req, configured := m.FetchCompleted(ok([]string{"Person"}, []string{"KNOWS"}))
	require.True(t, configured)
	require.NotNil(t, req)
	assert.Equal(t, Configured, m.State())
	assert.Equal(t, "graph", req.ContainerID)

	assert.True(t, m.Rendered())
	assert.Equal(t, Rendered, m.State())
}

func TestMachine_MountOnce(t *testing.T) {
	m := NewMachine(visconfig.Connection{}, "graph")
	require.NoError(t, m.Mount())
	assert.ErrorIs(t, m.Mount(), ErrAlreadyMounted)
}

func TestMachine_EmptySetsStayFetching(t *testing.T) {
	tests := []struct {
		name   string
		result metadata.Result
	}{
		{"no labels", ok(nil, []string{"KNOWS"})},
		{"no types", ok([]string{"Person", "Company"}, nil)},
		{"failure", metadata.Result{Failure: metadata.FailureConnection, Err: errors.New("refused")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(visconfig.Connection{}, "graph")
			require.NoError(t, m.Mount())

			req, configured := m.FetchCompleted(tt.result)
			assert.False(t, configured)
			assert.Nil(t, req)
			assert.Equal(t, Fetching, m.State())
			assert.False(t, m.Rendered())
			assert.Equal(t, Fetching, m.State())
		})
	}
}

func TestMachine_IgnoresOutOfOrderEvents(t *testing.T) {
	m := NewMachine(visconfig.Connection{}, "graph")

	_, configured := m.FetchCompleted(ok([]string{"Person"}, []string{"KNOWS"}))
	assert.False(t, configured, "fetch completion before mount is ignored")
	assert.False(t, m.Rendered())
	assert.Equal(t, Idle, m.State())

	require.NoError(t, m.Mount())
	_, configured = m.FetchCompleted(ok([]string{"Person"}, []string{"KNOWS"}))
	require.True(t, configured)
	require.True(t, m.Rendered())

	_, configured = m.FetchCompleted(ok([]string{"Other"}, []string{"REL"}))
	assert.False(t, configured, "no re-entry from Rendered")
	assert.False(t, m.Rendered())
	assert.Equal(t, Rendered, m.State())
	assert.Equal(t, []string{"Person"}, m.Request().Style.LabelKeys())
}

func TestPipeline_RendersOnce(t *testing.T) {
	fetcher := &stubFetcher{result: ok([]string{"Person"}, []string{"KNOWS"})}
	renderer := &recordingRenderer{}

	out, err := newPipeline(fetcher, renderer).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Rendered, out.State)
	assert.Equal(t, 1, fetcher.calls)
	require.Len(t, renderer.requests, 1)
	assert.Same(t, out.Request, renderer.requests[0])
	assert.Equal(t, visconfig.SampleQuery, out.Request.InitialCypher)
	assert.Equal(t, "neo4j://db", out.Request.Connection.ServerURL)
}

func TestPipeline_SkipsRenderWhenEitherSetEmpty(t *testing.T) {
	tests := []struct {
		name   string
		result metadata.Result
	}{
		{"labels empty", ok([]string{}, []string{"KNOWS"})},
		{"types empty", ok([]string{"Person", "Company"}, []string{})},
		{"labels query failed", metadata.Result{
			Labels:            []string{},
			RelationshipTypes: []string{},
			Failure:           metadata.FailureQuery,
			Err:               errors.New("boom"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &recordingRenderer{}

			out, err := newPipeline(&stubFetcher{result: tt.result}, renderer).Run(context.Background())
			require.NoError(t, err)

			assert.Empty(t, renderer.requests, "renderer must not be invoked")
			assert.Equal(t, Fetching, out.State)
			assert.Nil(t, out.Request)
			assert.Equal(t, tt.result.Failure, out.Result.Failure)
		})
	}
}

func TestPipeline_RenderErrorPropagates(t *testing.T) {
	boom := errors.New("widget exploded")
	renderer := &recordingRenderer{err: boom}

	out, err := newPipeline(&stubFetcher{result: ok([]string{"Person"}, []string{"KNOWS"})}, renderer).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Configured, out.State)
}

func TestPipeline_RunTwice(t *testing.T) {
	fetcher := &stubFetcher{result: ok([]string{"Person"}, []string{"KNOWS"})}
	p := newPipeline(fetcher, &recordingRenderer{})

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyMounted)
	assert.Equal(t, 1, fetcher.calls)
}

func TestRendererFunc(t *testing.T) {
	var got *visconfig.RenderRequest
	r := RendererFunc(func(_ context.Context, req *visconfig.RenderRequest) error {
		got = req
		return nil
	})

	out, err := newPipeline(&stubFetcher{result: ok([]string{"A"}, []string{"R"})}, r).Run(context.Background())
	require.NoError(t, err)
	assert.Same(t, out.Request, got)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "fetching", Fetching.String())
	assert.Equal(t, "configured", Configured.String())
	assert.Equal(t, "rendered", Rendered.String())
}

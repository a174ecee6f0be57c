package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/bubblecluster/bubble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestParseScenarioDefaults(t *testing.T) {
	sc, err := ParseScenario([]byte("ds: 0.05\n"))
	require.NoError(t, err)

	assert.Equal(t, 0.05, sc.DS)
	assert.Equal(t, 0.2, sc.DT)
	assert.Equal(t, uint64(1), sc.Seed)
	assert.True(t, sc.FixTopology)
	assert.Equal(t, "info", sc.LogLevel)
	assert.Equal(t, 800, sc.Image.Size)
	assert.Empty(t, sc.Commands)

	opts := sc.Options()
	assert.Equal(t, 0.05, opts.DS)
	assert.Equal(t, 1.0, opts.PressureGain)
}

func TestParseScenarioCommands(t *testing.T) {
	sc, err := ParseScenario([]byte(`
commands:
  - draw: [[0, 0], [1, 2]]
  - flip: 3
  - collapse: 4
  - split: 5
  - remove: 6
  - remove: {chain: 7, region: 2}
  - step: 10
  - reset
  - bubble: {x: 1, y: -1, radius: 0.5, segments: 12}
  - transform: {rotate: 90, dx: 1}
`))
	require.NoError(t, err)
	require.Len(t, sc.Commands, 10)

	p0, p1 := bubble.Pt(0, 0), bubble.Pt(1, 2)
	want := [][]bubble.Command{
		{bubble.DrawCommand{Point: &p0}, bubble.DrawCommand{Point: &p1}, bubble.DrawCommand{}},
		{bubble.FlipCommand{Chain: 3}},
		{bubble.CollapseCommand{Chain: 4}},
		{bubble.SplitCommand{Node: 5}},
		{bubble.RemoveCommand{Chain: 6}},
		{bubble.RemoveCommand{Chain: 7, Region: 2}},
		{bubble.StepCommand{N: 10}},
		{bubble.ResetCommand{}},
		nil,
		nil,
	}
	for i, st := range sc.Commands {
		assert.Equal(t, want[i], st.Commands, "step %d (%s)", i, st.Name)
	}
	assert.Equal(t, &BubbleSpec{X: 1, Y: -1, Radius: 0.5, Segments: 12}, sc.Commands[8].Bubble)
	assert.Equal(t, &TransformSpec{Rotate: 90, Scale: 1, DX: 1}, sc.Commands[9].Transform)
}

func TestRunTransform(t *testing.T) {
	sc, err := ParseScenario([]byte(`
commands:
  - bubble: {x: 1, y: 0, radius: 1, segments: 16}
  - transform: {rotate: 90, scale: 2, dx: 0, dy: -2}
`))
	require.NoError(t, err)
	runner := NewRunner(sc, zaptest.NewLogger(t))
	require.NoError(t, runner.Run(sc.Commands))

	c := runner.Cluster()
	require.Len(t, c.Regions(), 1)
	r := c.Regions()[0]
	// A 16-gon of radius 2.
	want := 32 * math.Sin(math.Pi/8)
	assert.InDelta(t, want, r.Area(), 1e-9)
	assert.InDelta(t, want, r.AreaTarget(), 1e-9)

	// The center (1, 0) turns to (0, 1), doubles to (0, 2) and moves to the origin.
	box, ok := c.BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, -2, box.MinX(), 1e-9)
	assert.InDelta(t, -2, box.MinY(), 1e-9)
}

func TestParseScenarioErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"negative ds", "ds: -1\n", "DS must be > 0"},
		{"log level", "log_level: loud\n", "LogLevel must be one of: debug info warn error"},
		{"image size", "image: {size: 4}\n", "Image.Size must be >= 16"},
		{"bubble radius", "commands:\n  - bubble: {x: 0, y: 0}\n", "Commands[0].Bubble.Radius must be > 0"},
		{"transform scale", "commands:\n  - transform: {scale: 0}\n", "Commands[0].Transform.Scale must be > 0"},
		{"unknown step", "commands:\n  - jump: 3\n", `unknown step "jump"`},
		{"unknown bare step", "commands:\n  - flip\n", `unknown step "flip"`},
		{"negative step", "commands:\n  - step: -2\n", "step count -2 is negative"},
		{"two keys", "commands:\n  - {flip: 1, split: 2}\n", "single key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunCut(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "cut.yaml"))
	require.NoError(t, err)

	runner := NewRunner(sc, zaptest.NewLogger(t))
	require.NoError(t, runner.Run(sc.Commands))

	c := runner.Cluster()
	require.Len(t, c.Regions(), 2)
	assert.NoError(t, c.CheckTopology())
	for _, v := range c.Nodes() {
		assert.LessOrEqual(t, v.Valence(), 3, "valence of %s", v)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out.json")
	pngPath := filepath.Join(dir, "out.png")
	svgPath := filepath.Join(dir, "out.svg")
	require.NoError(t, runner.WriteSnapshot(jsonPath))
	require.NoError(t, RenderPNG(c, pngPath, sc.Image))
	require.NoError(t, RenderSVG(c, svgPath, sc.Image))
	for _, path := range []string{jsonPath, pngPath, svgPath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), path)
	}

	svgData, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(svgData), `id="region-1"`)
	assert.Contains(t, string(svgData), `id="region-2"`)

	// The snapshot just written describes the current state.
	assert.NoError(t, runner.Check(jsonPath))
}

func TestRunRejected(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "reject.yaml"))
	require.NoError(t, err)

	runner := NewRunner(sc, zaptest.NewLogger(t))
	require.NoError(t, runner.Run(sc.Commands))
	assert.Len(t, runner.Cluster().Regions(), 1)

	sc.Strict = true
	runner = NewRunner(sc, zaptest.NewLogger(t))
	err = runner.Run(sc.Commands)
	require.Error(t, err)
	assert.ErrorIs(t, err, bubble.ErrNotFound)
}

func TestCheckMismatch(t *testing.T) {
	sc, err := ParseScenario([]byte("commands:\n  - bubble: {x: 0, y: 0, radius: 1, segments: 8}\n"))
	require.NoError(t, err)
	runner := NewRunner(sc, zaptest.NewLogger(t))
	require.NoError(t, runner.Run(sc.Commands))

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes": [], "chains": [], "regions": []}`), 0o644))
	err = runner.Check(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot mismatch")
}

func TestMeasuresTable(t *testing.T) {
	c := bubble.New(bubble.DefaultOptions())
	_, err := c.AddBubble(bubble.Pt(0, 0), 1, 32)
	require.NoError(t, err)

	out := MeasuresTable(c)
	assert.Contains(t, out, "region")
	assert.Contains(t, out, "perimeter")
	assert.Contains(t, out, "total")
	assert.Contains(t, out, "1 regions, 1 chains, 1 nodes")
}

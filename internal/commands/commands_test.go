package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/phytogl/phytogl/internal/auth"
	"github.com/phytogl/phytogl/internal/batch"
	"github.com/phytogl/phytogl/internal/cache"
	"github.com/phytogl/phytogl/internal/config"
	"github.com/phytogl/phytogl/internal/document"
	"github.com/phytogl/phytogl/internal/measure"
)

const twoBoxes = `
version: "1.0"
scene: {id: scene_boxes, name: boxes}
shapes:
  - {id: 1, geometry: left}
  - {id: 2, geometry: right}
objects:
  box: {id: box, type: Box, data: {size: [1, 1, 1]}}
  left: {id: left, type: Translated, children: [box], data: {translation: [-2, 0, 0]}}
  right: {id: right, type: Translated, children: [box], data: {translation: [2, 0, 0]}}
`

const oneBox = `
version: "1.0"
scene: {id: scene_box, name: box}
shapes:
  - {id: 7, geometry: box}
objects:
  box: {id: box, type: Box, data: {size: [1, 1, 1]}}
`

// syncBuffer lets a test read output while a command is still writing.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:     "test-secret",
		LogLevel:      "error",
		ImageWidth:    64,
		ImageHeight:   64,
		Workers:       2,
		CurveStride:   30,
		SurfaceSlices: 16,
		CachePath:     filepath.Join(t.TempDir(), "cache", "reports.db"),
	}
}

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func run(t *testing.T, app *cli.App, args ...string) (string, error) {
	t.Helper()
	var out syncBuffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"pgl"}, args...))
	return out.String(), err
}

func TestSample(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, NewApp(cfg), "sample")
	require.NoError(t, err)
	doc, err := document.Parse([]byte(out))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Shapes)

	path := filepath.Join(t.TempDir(), "sample.yaml")
	_, err = run(t, NewApp(cfg), "sample", "--yaml", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(strings.TrimSpace(string(data)), "{"))
	_, err = document.Parse(data)
	require.NoError(t, err)
}

func TestSurfaceUsesCache(t *testing.T) {
	cfg := testConfig(t)
	path := writeScene(t, twoBoxes)

	out, err := run(t, NewApp(cfg), "surface", "--json", path)
	require.NoError(t, err)
	var rep measure.SurfaceReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.InDelta(t, 48, rep.Surface, 1e-9)
	assert.True(t, rep.Complete)
	assert.Len(t, rep.Shapes, 2)

	again, err := run(t, NewApp(cfg), "surface", "--json", path)
	require.NoError(t, err)
	assert.JSONEq(t, out, again)

	c, err := cache.Open(cfg.CachePath)
	require.NoError(t, err)
	n, err := c.Len()
	require.NoError(t, err)
	require.NoError(t, c.Close())
	assert.Equal(t, 1, n)
}

func TestSurfaceTable(t *testing.T) {
	cfg := testConfig(t)
	path := writeScene(t, twoBoxes)

	out, err := run(t, NewApp(cfg), "--no-cache", "surface", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Shape")
	assert.Contains(t, out, "24.0000")
	assert.Contains(t, out, "48.0000")
	assert.NotContains(t, out, "warning")

	_, err = os.Stat(cfg.CachePath)
	assert.True(t, os.IsNotExist(err), "--no-cache leaves no cache file")
}

func TestBoundingBox(t *testing.T) {
	cfg := testConfig(t)
	path := writeScene(t, twoBoxes)

	out, err := run(t, NewApp(cfg), "bbox", "--json", path)
	require.NoError(t, err)
	var rep measure.BBoxReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.NotNil(t, rep.Box)
	assert.InDelta(t, -3, rep.Box.Min[0], 1e-9)
	assert.InDelta(t, 3, rep.Box.Max[0], 1e-9)
	assert.InDelta(t, 1, rep.Box.Max[2], 1e-9)

	out, err = run(t, NewApp(cfg), "bbox", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Scene")
	assert.Contains(t, out, "-3.0000")
}

func TestProject(t *testing.T) {
	cfg := testConfig(t)
	path := writeScene(t, twoBoxes)
	img := filepath.Join(t.TempDir(), "out.png")

	out, err := run(t, NewApp(cfg), "project", "--out", img, "--width", "120", "--height", "40", "--json", path)
	require.NoError(t, err)
	var rep batch.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 2, rep.Shapes)
	assert.ElementsMatch(t, []uint32{1, 2}, rep.VisibleShapes)
	assert.Empty(t, rep.FailedShapes)
	assert.Greater(t, rep.TotalArea, 0.0)

	f, err := os.Open(img)
	require.NoError(t, err)
	defer f.Close()
	conf, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 120, conf.Width)
	assert.Equal(t, 40, conf.Height)
}

func TestProjectThumbnailAndDepth(t *testing.T) {
	cfg := testConfig(t)
	path := writeScene(t, oneBox)
	img := filepath.Join(t.TempDir(), "depth.png")

	out, err := run(t, NewApp(cfg), "project", "--out", img, "--kind", "depth", "--thumb", "16", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 1 shapes visible")

	f, err := os.Open(img)
	require.NoError(t, err)
	defer f.Close()
	conf, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.LessOrEqual(t, conf.Width, 16)
	assert.LessOrEqual(t, conf.Height, 16)

	_, err = run(t, NewApp(cfg), "project", "--kind", "normals", path)
	assert.Error(t, err)
}

func TestCtrlPoints(t *testing.T) {
	cfg := testConfig(t)
	data, err := document.NewSampleDocument("scene_sample").YAML()
	require.NoError(t, err)
	path := writeScene(t, string(data))

	out, err := run(t, NewApp(cfg), "ctrlpoints", "--out", "-", "--view", "side", path)
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "<path")

	cmds := filepath.Join(t.TempDir(), "cmds.json")
	_, err = run(t, NewApp(cfg), "ctrlpoints", "--json", "--out", cmds, path)
	require.NoError(t, err)
	raw, err := os.ReadFile(cmds)
	require.NoError(t, err)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.NotEmpty(t, list)

	_, err = run(t, NewApp(cfg), "ctrlpoints", "--view", "diagonal", path)
	assert.Error(t, err)
}

func TestMissingOrInvalidFile(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, NewApp(cfg), "surface")
	assert.ErrorIs(t, err, errMissingFile)

	_, err = run(t, NewApp(cfg), "bbox", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeScene(t, `{"version": "9.0"}`)
	_, err = run(t, NewApp(cfg), "surface", bad)
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, NewApp(cfg), "token", "--subject", "alice", "--ttl", "1h")
	require.NoError(t, err)
	subject, err := auth.NewService(cfg.JWTSecret).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	cfg.JWTSecret = ""
	_, err = run(t, NewApp(cfg), "token")
	assert.ErrorIs(t, err, auth.ErrNoSecret)
}

func TestWatchRecomputesOnWrite(t *testing.T) {
	cfg := testConfig(t)
	path := writeScene(t, twoBoxes)

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ready := make(chan struct{})

	app := NewApp(cfg)
	app.Commands = append(app.Commands, cli.Command{
		Name: "watch-until-cancelled",
		Action: func(ctx *cli.Context) error {
			return watchFile(runCtx, ctx, path, ready)
		},
	})
	var out syncBuffer
	app.Writer = &out
	app.ErrWriter = &out

	done := make(chan error, 1)
	go func() {
		done <- app.Run([]string{"pgl", "--no-cache", "watch-until-cancelled"})
	}()

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher not ready")
	}
	assert.Contains(t, out.String(), "48.0000")
	assert.Contains(t, out.String(), "(2 shapes)")

	require.NoError(t, os.WriteFile(path, []byte(oneBox), 0644))
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "(1 shapes)")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

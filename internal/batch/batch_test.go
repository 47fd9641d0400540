package batch

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/projection"
	"github.com/phytogl/phytogl/internal/scene"
)

func row(n int) *scene.Scene {
	sc := scene.NewScene()
	for i := 0; i < n; i++ {
		box := &scene.Translated{
			Translation: geom.Vec3{3*float64(i) - 1.5*float64(n-1), 0, 0},
			Geometry:    &scene.Box{Size: geom.Vec3{1, 1, 1}},
		}
		sc.Add(scene.NewShape(box, nil, uint32(i+1)))
	}
	return sc
}

func engineFor(n int) *projection.ZBufferEngine {
	half := float64(3*n) / 2
	box := geom.NewBox(geom.Vec3{-half, -1, -1}, geom.Vec3{half, 1, 1})
	return projection.NewZBufferEngine(projection.FitOrthographic(box, 240, 80), nil)
}

func TestWorkersMatchSingleRenderer(t *testing.T) {
	sc := row(5)

	_, single, err := Project(context.Background(), sc, engineFor(5), Options{Workers: 1})
	require.NoError(t, err)
	_, multi, err := Project(context.Background(), sc, engineFor(5), Options{Workers: 4})
	require.NoError(t, err)

	assert.Equal(t, 5, multi.Shapes)
	assert.Empty(t, multi.FailedShapes)
	assert.Equal(t, []uint32{1, 2, 3, 4, 5}, multi.VisibleShapes)
	assert.Equal(t, single.VisibleShapes, multi.VisibleShapes)
	for id, area := range single.ProjectedArea {
		assert.InDelta(t, area, multi.ProjectedArea[id], 1e-12)
		assert.InDelta(t, 4, area, 0.5)
	}
	assert.InDelta(t, single.TotalArea, multi.TotalArea, 1e-12)
}

func TestFailedShapesAreReported(t *testing.T) {
	sc := row(2)
	sc.Add(scene.NewShape(&scene.NurbsCurve{}, nil, 9))
	sc.Add(scene.NewShape(&scene.Group{Children: []scene.Geometry{nil}}, nil, 8))

	res, rep, err := Project(context.Background(), sc, engineFor(2), Options{Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, []uint32{8, 9}, rep.FailedShapes)
	assert.Equal(t, []uint32{1, 2}, res.VisibleShapes())
}

func TestProgressEvents(t *testing.T) {
	var (
		mu     sync.Mutex
		events []Event
	)
	opts := Options{Workers: 2, Progress: func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	}}

	_, _, err := Project(context.Background(), row(4), engineFor(4), opts)
	require.NoError(t, err)
	require.Len(t, events, 4)
	seen := map[int]bool{}
	for _, ev := range events {
		assert.Equal(t, 4, ev.Total)
		assert.True(t, ev.OK)
		seen[ev.Done] = true
	}
	assert.Len(t, seen, 4)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Project(ctx, row(3), engineFor(3), Options{Workers: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmptyScene(t *testing.T) {
	res, rep, err := Project(context.Background(), scene.NewScene(), engineFor(1), Options{})
	require.NoError(t, err)
	assert.Zero(t, rep.Shapes)
	assert.Empty(t, res.VisibleShapes())
}

func TestFitEngineFramesScene(t *testing.T) {
	sc := row(3)
	eng := FitEngine(sc, 300, 100, nil)
	res, rep, err := Project(context.Background(), sc, eng, Options{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, rep.VisibleShapes)
	for id := uint32(1); id <= 3; id++ {
		assert.InDelta(t, 4, res.ProjectedArea(id), 0.5)
	}
}

package ctrlpoint

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phytogl/phytogl/internal/discretize"
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

func strips(rec *Recorder) [][]geom.Vec3 {
	var out [][]geom.Vec3
	for _, s := range rec.Strips() {
		out = append(out, s.Points)
	}
	return out
}

func newRenderer() (*Renderer, *Recorder) {
	rec := NewRecorder()
	return NewRenderer(rec, discretize.New()), rec
}

func TestCurveDrawsControlPointsInOrder(t *testing.T) {
	r, rec := newRenderer()
	curve := &scene.BezierCurve{CtrlPoints: []geom.Vec4{{0, 0, 0, 1}, {1, 1, 0, 0.5}, {2, 0, 1, 2}, {3, 1, 1, 1}}}

	assert.True(t, curve.Apply(r, scene.NewState()))
	assert.Equal(t, [][]geom.Vec3{{{0, 0, 0}, {1, 1, 0}, {2, 0, 1}, {3, 1, 1}}}, strips(rec))
}

func TestCurve2DDrawsAtZeroHeight(t *testing.T) {
	r, rec := newRenderer()
	curve := &scene.NurbsCurve2D{CtrlPoints: []geom.Vec3{{0, 1, 1}, {2, 3, 1}}}

	assert.True(t, curve.Apply(r, scene.NewState()))
	assert.Equal(t, [][]geom.Vec3{{{0, 1, 0}, {2, 3, 0}}}, strips(rec))
}

func patchMatrix(rows, cols int) *geom.Point4Matrix {
	grid := make([][]geom.Vec4, rows)
	for i := range grid {
		grid[i] = make([]geom.Vec4, cols)
		for j := range grid[i] {
			grid[i][j] = geom.Vec4{float64(i), float64(j), float64(i * j), 1}
		}
	}
	return geom.MustPoint4Matrix(grid)
}

func TestPatchDrawsRowsThenColumns(t *testing.T) {
	r, rec := newRenderer()
	patch := &scene.BezierPatch{CtrlPoints: patchMatrix(3, 4)}

	assert.True(t, patch.Apply(r, scene.NewState()))
	got := strips(rec)
	require.Len(t, got, 3+4)
	for i := 0; i < 3; i++ {
		assert.Len(t, got[i], 4)
		assert.Equal(t, geom.Vec3{float64(i), 3, float64(i * 3)}, got[i][3])
	}
	for j := 0; j < 4; j++ {
		assert.Len(t, got[3+j], 3)
		assert.Equal(t, geom.Vec3{2, float64(j), float64(2 * j)}, got[3+j][2])
	}
}

func TestExtrudedHullLoopsAreClosed(t *testing.T) {
	r, rec := newRenderer()
	hull := &scene.ExtrudedHull{
		Vertical:   &scene.Polyline2D{Points: []geom.Vec2{{0, 0}, {1, 1}, {0, 2}}},
		Horizontal: &scene.Polyline2D{Points: []geom.Vec2{{1, 0}, {0, 1}, {-1, 0}}},
	}

	assert.True(t, hull.Apply(r, scene.NewState()))
	got := strips(rec)
	require.Len(t, got, 2)
	assert.Equal(t, []geom.Vec3{{1, 0, 0}, {0, 1, 0}, {-1, 0, 0}, {1, 0, 0}}, got[0])
	assert.Equal(t, []geom.Vec3{{0, 0, 0}, {1, 0, 1}, {0, 0, 2}, {0, 0, 0}}, got[1])
}

func TestExtrudedHullSkipsUndiscretizableProfile(t *testing.T) {
	r, rec := newRenderer()
	hull := &scene.ExtrudedHull{
		Vertical:   &scene.Polyline2D{Points: []geom.Vec2{{0, 0}}},
		Horizontal: &scene.Polyline2D{Points: []geom.Vec2{{1, 0}, {0, 1}}},
	}

	assert.True(t, hull.Apply(r, scene.NewState()))
	assert.Len(t, strips(rec), 1)
}

func TestTaperedCurveMatchesTaperedControlPoints(t *testing.T) {
	r, rec := newRenderer()
	ctrl := []geom.Vec4{{1, 1, 0, 1}, {1, 1, 0.5, 2}, {1, 1, 1, 1}}
	tapered := &scene.Tapered{BaseRadius: 1, TopRadius: 0.5, Primitive: &scene.BezierCurve{CtrlPoints: ctrl}}

	assert.True(t, tapered.Apply(r, scene.NewState()))
	want := make([]geom.Vec3, len(ctrl))
	for i, p := range geom.TransformPoints4(tapered.Taper(), ctrl) {
		want[i] = p.Vec3()
	}
	assert.Equal(t, [][]geom.Vec3{want}, strips(rec))
	assert.Equal(t, geom.Vec3{0.5, 0.5, 1}, want[2])
}

func TestTaperedPatchAndHull(t *testing.T) {
	r, rec := newRenderer()
	patch := &scene.Tapered{BaseRadius: 1, TopRadius: 0, Primitive: &scene.NurbsPatch{CtrlPoints: patchMatrix(2, 2)}}
	assert.True(t, patch.Apply(r, scene.NewState()))
	assert.Len(t, strips(rec), 4)

	rec.Reset()
	hull := &scene.Tapered{BaseRadius: 1, TopRadius: 0, Primitive: &scene.ExtrudedHull{
		Vertical:   &scene.Polyline2D{Points: []geom.Vec2{{1, 0}, {1, 1}}},
		Horizontal: &scene.Polyline2D{Points: []geom.Vec2{{1, 0}, {0, 1}}},
	}}
	assert.True(t, hull.Apply(r, scene.NewState()))
	got := strips(rec)
	require.Len(t, got, 2)
	assert.Equal(t, []geom.Vec3{{1, 0, 0}, {0, 1, 0}, {1, 0, 0}}, got[0])
	assert.Equal(t, []geom.Vec3{{1, 0, 0}, {0, 0, 1}, {1, 0, 0}}, got[1])
}

func TestTaperedUnsupportedPrimitiveFails(t *testing.T) {
	r, rec := newRenderer()
	tapered := &scene.Tapered{BaseRadius: 1, TopRadius: 2, Primitive: &scene.Sphere{Radius: 1}}

	assert.False(t, tapered.Apply(r, scene.NewState()))
	assert.Empty(t, rec.Commands)
}

func TestTransformWrappersArePaired(t *testing.T) {
	r, rec := newRenderer()
	curve := &scene.BezierCurve{CtrlPoints: []geom.Vec4{{0, 0, 0, 1}, {1, 0, 0, 1}}}
	node := &scene.Translated{
		Translation: geom.Vec3{0, 0, 2},
		Geometry:    &scene.Scaled{Scale: geom.Vec3{2, 2, 2}, Geometry: curve},
	}

	assert.True(t, node.Apply(r, scene.NewState()))
	ops := make([]string, len(rec.Commands))
	for i, c := range rec.Commands {
		ops[i] = c.Op
	}
	assert.Equal(t, []string{"push", "mult", "push", "mult", "strip", "pop", "pop"}, ops)
	assert.Equal(t, 0, rec.Depth())
	assert.Equal(t, []geom.Vec3{{0, 0, 2}, {2, 0, 2}}, rec.Strips()[0].Points)

	failing := &scene.AxisRotated{Axis: geom.Vec3{0, 0, 1}, Geometry: &scene.Tapered{Primitive: &scene.Box{}}}
	assert.False(t, failing.Apply(r, scene.NewState()))
	assert.Equal(t, 0, rec.Depth())
}

func TestGroupAttemptsEveryChild(t *testing.T) {
	r, rec := newRenderer()
	curve := &scene.BezierCurve{CtrlPoints: []geom.Vec4{{0, 0, 0, 1}, {1, 0, 0, 1}}}
	group := &scene.Group{Children: []scene.Geometry{
		&scene.Tapered{Primitive: &scene.Sphere{}},
		curve,
	}}

	assert.False(t, group.Apply(r, scene.NewState()))
	assert.Len(t, rec.Strips(), 1)
}

func TestIFSDrawsEveryInstance(t *testing.T) {
	r, rec := newRenderer()
	ifs := &scene.IFS{
		Depth:    1,
		Transfos: []geom.Mat4{geom.Identity(), geom.Translation(geom.Vec3{5, 0, 0})},
		Geometry: &scene.Polyline{Points: []geom.Vec3{{0, 0, 0}, {1, 0, 0}}},
	}

	assert.True(t, ifs.Apply(r, scene.NewState()))
	require.Len(t, rec.Strips(), 2)
	assert.Equal(t, geom.Vec3{5, 0, 0}, rec.Strips()[1].Points[0])
	assert.Equal(t, 0, rec.Depth())
}

func TestInline(t *testing.T) {
	r, rec := newRenderer()
	inner := scene.NewScene(scene.NewShape(&scene.Polyline{Points: []geom.Vec3{{0, 0, 0}, {1, 0, 0}}}, nil, 1))

	plain := scene.NewInline(inner)
	assert.True(t, plain.Apply(r, scene.NewState()))
	assert.Equal(t, "strip", rec.Commands[0].Op)

	rec.Reset()
	moved := scene.NewInline(inner)
	moved.Translation = geom.Vec3{0, 1, 0}
	assert.True(t, moved.Apply(r, scene.NewState()))
	assert.Equal(t, geom.Vec3{1, 1, 0}, rec.Strips()[0].Points[1])
	assert.Equal(t, 0, rec.Depth())

	assert.False(t, (&scene.Inline{}).Apply(r, scene.NewState()))
}

func TestNonParametricNodesDrawNothing(t *testing.T) {
	r, rec := newRenderer()
	for _, n := range []scene.Node{
		&scene.Sphere{Radius: 1},
		&scene.Box{Size: geom.Vec3{1, 1, 1}},
		&scene.TriangleSet{},
		&scene.PointSet{},
		scene.NewMaterial(scene.White),
		&scene.Text{},
	} {
		assert.True(t, n.Apply(r, scene.NewState()), "%T", n)
	}
	assert.Empty(t, rec.Commands)
}

func TestSceneUsesRedAppearance(t *testing.T) {
	r, rec := newRenderer()
	green := scene.NewMaterial(scene.Color3{0, 255, 0})
	sc := scene.NewScene(scene.NewShape(&scene.BezierCurve{CtrlPoints: []geom.Vec4{{0, 0, 0, 1}, {0, 0, 1, 1}}}, green, 3))

	assert.True(t, sc.Apply(r))
	require.NotEmpty(t, rec.Commands)
	assert.Equal(t, DrawCommand{Op: "appearance", Color: "#ff0000"}, rec.Commands[0])
	assert.Equal(t, "#ff0000", rec.Strips()[0].Color)

	js, err := DrawCommandsToJSON(rec.Commands)
	require.NoError(t, err)
	var decoded []DrawCommand
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.Equal(t, "strip", decoded[1].Op)
}

func TestSVGPainter(t *testing.T) {
	p := NewSVGPainter(ViewTop)
	r := NewRenderer(p, discretize.New())
	sc := scene.NewScene(scene.NewShape(&scene.Polyline{Points: []geom.Vec3{{0, 0, 0}, {1, 2, 0}}}, nil, 1))
	require.True(t, sc.Apply(r))

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `d="M 0.000000 0.000000 L 1.000000 2.000000"`)
	assert.Contains(t, out, `stroke="#ff0000"`)

	_, err := ParseView("diagonal")
	assert.Error(t, err)
	v, err := ParseView("Side")
	require.NoError(t, err)
	assert.Equal(t, ViewSide, v)
}

package discretize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

func assertVec3(t *testing.T, want, got geom.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func polyline(t *testing.T, d *Discretizer, n scene.Node) []geom.Vec3 {
	t.Helper()
	require.True(t, d.Discretize(n))
	pl, ok := d.Result().(*scene.Polyline)
	require.True(t, ok, "result is %T", d.Result())
	return pl.Points
}

func area(t *testing.T, n scene.Node, opts ...Option) float64 {
	t.Helper()
	tess := NewTesselator(opts...)
	require.True(t, tess.Discretize(n))
	ts, ok := tess.Result().(*scene.TriangleSet)
	require.True(t, ok, "result is %T", tess.Result())
	return Area(ts)
}

func TestBezierCurveSamples(t *testing.T) {
	d := New()
	pts := polyline(t, d, &scene.BezierCurve{
		CtrlPoints: []geom.Vec4{{0, 0, 0, 1}, {1, 0, 0, 1}},
		Stride:     4,
	})
	require.Len(t, pts, 5)
	for i, p := range pts {
		assertVec3(t, geom.Vec3{float64(i) / 4, 0, 0}, p, 1e-12)
	}

	pts = polyline(t, d, &scene.BezierCurve{CtrlPoints: []geom.Vec4{{0, 0, 0, 1}, {1, 1, 1, 1}}})
	assert.Len(t, pts, scene.DefaultStride+1)
}

func TestRationalBezierQuarterCircle(t *testing.T) {
	d := New()
	pts := polyline(t, d, &scene.BezierCurve{
		CtrlPoints: []geom.Vec4{{1, 0, 0, 1}, {1, 1, 0, math.Sqrt2 / 2}, {0, 1, 0, 1}},
		Stride:     10,
	})
	for _, p := range pts {
		assert.InDelta(t, 1.0, p.Len(), 1e-9)
	}
	assertVec3(t, geom.Vec3{0, 1, 0}, pts[len(pts)-1], 1e-12)
}

func TestBezierCurve2DLiesInPlane(t *testing.T) {
	d := New()
	pts := polyline(t, d, &scene.BezierCurve2D{
		CtrlPoints: []geom.Vec3{{0, 0, 1}, {1, 2, 1}, {2, 0, 1}},
		Stride:     2,
	})
	require.Len(t, pts, 3)
	assertVec3(t, geom.Vec3{1, 1, 0}, pts[1], 1e-12)
}

func TestNurbsCurve(t *testing.T) {
	d := New()
	linear, err := scene.NewNurbsCurve([]geom.Vec4{{0, 0, 0, 1}, {1, 0, 0, 1}, {1, 1, 0, 1}}, 1, nil, 4)
	require.NoError(t, err)
	pts := polyline(t, d, linear)
	want := []geom.Vec3{{0, 0, 0}, {0.5, 0, 0}, {1, 0, 0}, {1, 0.5, 0}, {1, 1, 0}}
	require.Len(t, pts, len(want))
	for i := range want {
		assertVec3(t, want[i], pts[i], 1e-12)
	}

	quad, err := scene.NewNurbsCurve([]geom.Vec4{{0, 0, 0, 1}, {1, 2, 0, 1}, {2, 2, 0, 1}, {3, 0, 0, 1}}, 2, nil, 8)
	require.NoError(t, err)
	pts = polyline(t, d, quad)
	assertVec3(t, geom.Vec3{0, 0, 0}, pts[0], 1e-12)
	assertVec3(t, geom.Vec3{3, 0, 0}, pts[len(pts)-1], 1e-12)

	assert.False(t, d.Discretize(&scene.NurbsCurve{CtrlPoints: quad.CtrlPoints, Degree: 2}))
	assert.Nil(t, d.Result())
}

func TestExplicitModels(t *testing.T) {
	d := New()
	pts := polyline(t, d, &scene.Polyline2D{Points: []geom.Vec2{{1, 2}, {3, 4}}})
	assert.Equal(t, []geom.Vec3{{1, 2, 0}, {3, 4, 0}}, pts)

	require.True(t, d.Discretize(&scene.PointSet2D{Points: []geom.Vec2{{1, 1}}}))
	assert.Equal(t, []geom.Vec3{{1, 1, 0}}, d.Result().(*scene.PointSet).Points)

	ps := &scene.PointSet{Points: []geom.Vec3{{1, 2, 3}}}
	require.True(t, d.Discretize(ps))
	assert.Same(t, ps, d.Result())

	assert.False(t, d.Discretize(&scene.Polyline{Points: []geom.Vec3{{0, 0, 0}}}))
}

func TestNodesWithoutModel(t *testing.T) {
	d := New()
	for _, n := range []scene.Node{
		&scene.Group{Children: []scene.Geometry{&scene.Sphere{Radius: 1}}},
		scene.NewInline(scene.NewScene()),
		scene.NewMaterial(scene.Red),
		&scene.Texture2D{},
		&scene.Text{String: "leaf"},
		&scene.Font{},
		&scene.ScreenProjected{Geometry: &scene.Sphere{Radius: 1}},
		nil,
	} {
		assert.False(t, d.Discretize(n), "%T", n)
		assert.Nil(t, d.Result())
	}
}

func TestBezierPatchGrid(t *testing.T) {
	d := New()
	d.ComputeTexCoord(true)
	patch, err := scene.NewBezierPatch(geom.MustPoint4Matrix([][]geom.Vec4{
		{{0, 0, 0, 1}, {0, 1, 0, 1}},
		{{1, 0, 0, 1}, {1, 1, 0, 1}},
	}), 2, 2)
	require.NoError(t, err)
	require.True(t, d.Discretize(patch))
	qs := d.Result().(*scene.QuadSet)
	assert.Len(t, qs.Points, 9)
	assert.Len(t, qs.Indices, 4)
	assert.Len(t, qs.TexCoords, 9)
	assertVec3(t, geom.Vec3{0.5, 0.5, 0}, qs.Points[4], 1e-12)
	assert.InDelta(t, 1.0, area(t, patch), 1e-9)
}

func TestNurbsPatchInterpolatesCorners(t *testing.T) {
	m := geom.MustPoint4Matrix([][]geom.Vec4{
		{{0, 0, 0, 1}, {0, 1, 1, 1}, {0, 2, 0, 1}},
		{{1, 0, 1, 1}, {1, 1, 2, 1}, {1, 2, 1, 1}},
		{{2, 0, 0, 1}, {2, 1, 1, 1}, {2, 2, 0, 1}},
	})
	patch, err := scene.NewNurbsPatch(m, 2, 2, nil, nil, 4, 4)
	require.NoError(t, err)
	d := New()
	require.True(t, d.Discretize(patch))
	qs := d.Result().(*scene.QuadSet)
	assert.Len(t, qs.Points, 25)
	assertVec3(t, geom.Vec3{0, 0, 0}, qs.Points[0], 1e-12)
	assertVec3(t, geom.Vec3{2, 2, 0}, qs.Points[24], 1e-12)
}

func TestSolidAreas(t *testing.T) {
	fine := []Option{WithSlices(64), WithStacks(32)}
	tests := []struct {
		name  string
		node  scene.Node
		want  float64
		delta float64
	}{
		{"sphere", &scene.Sphere{Radius: 1}, 4 * math.Pi, 0.03},
		{"cylinder side", &scene.Cylinder{Radius: 1, Height: 1}, 2 * math.Pi, 0.01},
		{"closed cylinder", &scene.Cylinder{Radius: 1, Height: 1, Solid: true}, 4 * math.Pi, 0.02},
		{"disc", &scene.Disc{Radius: 1}, math.Pi, 0.01},
		{"box", &scene.Box{Size: geom.Vec3{1, 1, 1}}, 24, 1e-9},
		{"cone side", &scene.Cone{Radius: 1, Height: 1}, math.Pi * math.Sqrt2, 0.01},
		{"frustum", &scene.Frustum{Radius: 1, Height: 1, Taper: 1}, 2 * math.Pi, 0.01},
		{"asymmetric hull", &scene.AsymmetricHull{
			NegXRadius: 1, PosXRadius: 1, NegYRadius: 1, PosYRadius: 1,
			Bottom: geom.Vec3{0, 0, -1}, Top: geom.Vec3{0, 0, 1},
		}, 4 * math.Pi, 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, area(t, tt.node, fine...), tt.delta)
		})
	}
}

func TestInvalidSolids(t *testing.T) {
	d := New()
	for _, n := range []scene.Node{
		&scene.Sphere{},
		&scene.Cylinder{Radius: 1},
		&scene.Cone{Height: 1},
		&scene.Box{},
		&scene.Disc{Radius: -1},
		&scene.AsymmetricHull{},
		&scene.ElevationGrid{Heights: [][]float64{{0, 1}, {0}}},
	} {
		assert.False(t, d.Discretize(n), "%T", n)
	}
}

func TestParaboloidProfile(t *testing.T) {
	d := New(WithSlices(8), WithStacks(4))
	require.True(t, d.Discretize(&scene.Paraboloid{Radius: 2, Height: 1, Shape: 2}))
	qs := d.Result().(*scene.QuadSet)
	cols := 9
	assertVec3(t, geom.Vec3{2, 0, 0}, qs.Points[0], 1e-12)
	assert.InDelta(t, 2*math.Sqrt(0.5), qs.Points[2*cols][0], 1e-12)
	assertVec3(t, geom.Vec3{0, 0, 1}, qs.Points[4*cols], 1e-12)
}

func TestElevationGrid(t *testing.T) {
	d := New()
	require.True(t, d.Discretize(&scene.ElevationGrid{
		Heights:  [][]float64{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}},
		XSpacing: 1,
		YSpacing: 2,
	}))
	qs := d.Result().(*scene.QuadSet)
	assert.Len(t, qs.Indices, 4)
	assertVec3(t, geom.Vec3{1, 2, 1}, qs.Points[4], 1e-12)
}

func TestRevolutionAndSwung(t *testing.T) {
	profile := &scene.Polyline2D{Points: []geom.Vec2{{1, 0}, {1, 1}}}
	assert.InDelta(t, 2*math.Pi, area(t, &scene.Revolution{Profile: profile, Slices: 64}), 0.01)

	swung, err := scene.NewSwung([]scene.Curve2D{profile, profile}, []float64{0, math.Pi}, 64, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Pi, area(t, swung), 0.01)

	wide := &scene.Polyline2D{Points: []geom.Vec2{{2, 0}, {2, 1}}}
	blended, err := scene.NewSwung([]scene.Curve2D{profile, wide}, []float64{0, math.Pi}, 4, 0)
	require.NoError(t, err)
	d := New()
	require.True(t, d.Discretize(blended))
	qs := d.Result().(*scene.QuadSet)
	assertVec3(t, geom.Vec3{1, 0, 0}, qs.Points[0], 1e-12)
	assertVec3(t, geom.Vec3{0, 1.5, 0}, qs.Points[1], 1e-12)
	assertVec3(t, geom.Vec3{-2, 0, 0}, qs.Points[2], 1e-12)

	mismatched, err := scene.NewSwung([]scene.Curve2D{profile, &scene.Polyline2D{Points: []geom.Vec2{{1, 0}, {1, 1}, {1, 2}}}}, []float64{0, 1}, 4, 0)
	require.NoError(t, err)
	assert.False(t, d.Discretize(mismatched))
}

func TestExtrusion(t *testing.T) {
	square := &scene.Polyline2D{Points: []geom.Vec2{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}, {-0.5, -0.5}}}
	axis := &scene.Polyline{Points: []geom.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 0, 2}}}
	assert.InDelta(t, 8.0, area(t, &scene.Extrusion{Axis: axis, CrossSection: square}), 1e-9)
	assert.InDelta(t, 10.0, area(t, &scene.Extrusion{Axis: axis, CrossSection: square, Solid: true}), 1e-9)
	assert.InDelta(t, 16.0, area(t, &scene.Extrusion{Axis: axis, CrossSection: square, Scale: []geom.Vec2{{2, 2}}}), 1e-9)
}

func TestExtrudedHull(t *testing.T) {
	hull := &scene.ExtrudedHull{
		Vertical:   &scene.Polyline2D{Points: []geom.Vec2{{-1, 0}, {1, 0}, {1, 2}, {-1, 2}, {-1, 0}}},
		Horizontal: &scene.Polyline2D{Points: []geom.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}},
	}
	assert.InDelta(t, 16.0, area(t, hull), 1e-9)
}

func TestTransformedAndTapered(t *testing.T) {
	d := New()
	moved := &scene.Translated{Translation: geom.Vec3{0, 0, 5}, Geometry: &scene.Box{Size: geom.Vec3{1, 1, 1}}}
	require.True(t, d.Discretize(moved))
	var b geom.Box
	for _, p := range d.Result().(*scene.QuadSet).Points {
		b = b.Extend(p)
	}
	assertVec3(t, geom.Vec3{-1, -1, 4}, b.Min, 1e-12)

	tapered := &scene.Tapered{BaseRadius: 1, TopRadius: 0.5, Primitive: &scene.Cylinder{Radius: 1, Height: 1, Slices: 4}}
	require.True(t, d.Discretize(tapered))
	qs := d.Result().(*scene.QuadSet)
	assertVec3(t, geom.Vec3{0.5, 0, 1}, qs.Points[5], 1e-12)

	assert.False(t, d.Discretize(&scene.Scaled{Scale: geom.Vec3{1, 1, 1}}))
}

func TestIFSMergesInstances(t *testing.T) {
	d := New()
	ifs := &scene.IFS{
		Depth:    1,
		Transfos: []geom.Mat4{geom.Identity(), geom.Translation(geom.Vec3{3, 0, 0}), geom.Translation(geom.Vec3{6, 0, 0})},
		Geometry: &scene.Box{Size: geom.Vec3{1, 1, 1}},
	}
	require.True(t, d.Discretize(ifs))
	fs := d.Result().(*scene.FaceSet)
	assert.Len(t, fs.Points, 24)
	assert.Len(t, fs.Indices, 18)
	assert.InDelta(t, 72.0, area(t, ifs), 1e-9)
}

func TestTriangulate(t *testing.T) {
	fs := &scene.FaceSet{
		Points:  []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0.5, 1.5, 0}, {0, 1, 0}},
		Indices: [][]int{{0, 1, 2, 3, 4}},
	}
	ts := Triangulate(fs).(*scene.TriangleSet)
	assert.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}, ts.Indices)

	pl := &scene.Polyline{}
	assert.Same(t, pl, Triangulate(pl))
}

func TestAmapSymbol(t *testing.T) {
	mesh := &scene.FaceSet{Points: []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, Indices: [][]int{{0, 1, 2}}}
	d := New()
	require.True(t, d.Discretize(&scene.AmapSymbol{FileName: "leaf.smb", Mesh: mesh}))
	assert.Same(t, mesh, d.Result())
	assert.False(t, d.Discretize(&scene.AmapSymbol{FileName: "missing.smb"}))
}

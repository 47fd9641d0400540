package projection

import (
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

type fakeCamera struct {
	stack  *geom.MatrixStack
	pushes int
	pops   int
}

func newFakeCamera() *fakeCamera { return &fakeCamera{stack: geom.NewMatrixStack()} }

func (c *fakeCamera) PushModelTransformation() { c.pushes++; c.stack.Push() }
func (c *fakeCamera) PopModelTransformation()  { c.pops++; c.stack.Pop() }
func (c *fakeCamera) TransformModel(m geom.Mat4) {
	c.stack.Mult(m)
}
func (c *fakeCamera) TranslateModel(v geom.Vec3) { c.stack.Mult(geom.Translation(v)) }
func (c *fakeCamera) ScaleModel(v geom.Vec3)     { c.stack.Mult(geom.Scaling(v)) }
func (c *fakeCamera) ModelMatrix() geom.Mat4     { return c.stack.Top() }
func (c *fakeCamera) Project(p geom.Vec3) (geom.Vec3, bool) {
	return geom.TransformPoint(c.stack.Top(), p), true
}

type call struct {
	kind       string
	id         uint32
	material   *scene.Material
	appearance scene.Appearance
	model      geom.Mat4
	threadID   int
	points     int
	geometry   scene.Geometry
}

type fakeEngine struct {
	cam        *fakeCamera
	calls      []call
	defaultMat *scene.Material
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{cam: newFakeCamera(), defaultMat: scene.DefaultMaterial}
}

func (e *fakeEngine) ProcessPointSet(ps *scene.PointSet, mat *scene.Material, id uint32, cam Camera, threadID int) {
	e.calls = append(e.calls, call{kind: "points", id: id, material: mat, model: cam.ModelMatrix(), threadID: threadID, points: len(ps.Points), geometry: ps})
}

func (e *fakeEngine) ProcessPolyline(pl *scene.Polyline, mat *scene.Material, id uint32, cam Camera, threadID int) {
	e.calls = append(e.calls, call{kind: "polyline", id: id, material: mat, model: cam.ModelMatrix(), threadID: threadID, points: len(pl.Points), geometry: pl})
}

func (e *fakeEngine) ProcessTriangleSet(ts *scene.TriangleSet, app scene.Appearance, id uint32, cam Camera, threadID int) {
	e.calls = append(e.calls, call{kind: "triangles", id: id, appearance: app, model: cam.ModelMatrix(), threadID: threadID, points: len(ts.Points), geometry: ts})
}

func (e *fakeEngine) Camera() Camera                   { return e.cam }
func (e *fakeEngine) DefaultMaterial() *scene.Material { return e.defaultMat }

// stubDiscretizer returns a fixed model, or fails for the nodes in fail.
type stubDiscretizer struct {
	result   scene.Geometry
	fail     func(scene.Node) bool
	texCoord []bool
	calls    int
	current  scene.Geometry
}

func (d *stubDiscretizer) ComputeTexCoord(enabled bool) { d.texCoord = append(d.texCoord, enabled) }

func (d *stubDiscretizer) Discretize(n scene.Node) bool {
	d.calls++
	d.current = nil
	if d.fail != nil && d.fail(n) {
		return false
	}
	d.current = d.result
	return true
}

func (d *stubDiscretizer) Result() scene.Geometry { return d.current }

func segment() *scene.Polyline {
	return &scene.Polyline{Points: []geom.Vec3{{0, 0, 0}, {1, 0, 0}}}
}

func triangle() *scene.TriangleSet {
	return &scene.TriangleSet{Points: []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, Indices: [][3]int{{0, 1, 2}}}
}

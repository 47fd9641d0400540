// Package measure computes world-space measures of scenes: surface areas
// and bounding boxes.
package measure

import (
	"github.com/phytogl/phytogl/internal/discretize"
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/projection"
	"github.com/phytogl/phytogl/internal/scene"
)

// Sink receives the explicit primitives of a traversal with the model
// matrix they were produced under.
type Sink interface {
	Triangles(id uint32, ts *scene.TriangleSet, model geom.Mat4)
	Polyline(id uint32, pl *scene.Polyline, model geom.Mat4)
	Points(id uint32, ps *scene.PointSet, model geom.Mat4)
}

// Walker reduces a scene to triangle sets, polylines and point sets and
// feeds them to a Sink. It traverses like the projection renderer, with a
// private matrix stack in place of a camera.
type Walker struct {
	stack    *geom.MatrixStack
	sink     Sink
	renderer *projection.Renderer
}

// NewWalker returns a walker discretizing with opts.
func NewWalker(sink Sink, opts ...discretize.Option) *Walker {
	w := &Walker{stack: geom.NewMatrixStack(), sink: sink}
	w.renderer = projection.NewRenderer(w, discretize.NewTesselator(opts...), discretize.New(opts...), 0)
	return w
}

// Action returns the action to apply to nodes.
func (w *Walker) Action() scene.Action { return w.renderer }

// Walk applies the walker to every shape of sc.
func (w *Walker) Walk(sc *scene.Scene) bool { return sc.Apply(w.renderer) }

// WalkGeometry applies the walker to a bare geometry, reported under NOID.
func (w *Walker) WalkGeometry(g scene.Geometry) bool {
	if g == nil {
		return false
	}
	return g.Apply(w.renderer, scene.NewState())
}

// Depth returns the number of pushed model transformations.
func (w *Walker) Depth() int { return w.stack.Depth() }

// Engine side.

func (w *Walker) ProcessPointSet(ps *scene.PointSet, _ *scene.Material, id uint32, cam projection.Camera, _ int) {
	w.sink.Points(id, ps, cam.ModelMatrix())
}

func (w *Walker) ProcessPolyline(pl *scene.Polyline, _ *scene.Material, id uint32, cam projection.Camera, _ int) {
	w.sink.Polyline(id, pl, cam.ModelMatrix())
}

func (w *Walker) ProcessTriangleSet(ts *scene.TriangleSet, _ scene.Appearance, id uint32, cam projection.Camera, _ int) {
	w.sink.Triangles(id, ts, cam.ModelMatrix())
}

func (w *Walker) Camera() projection.Camera        { return w }
func (w *Walker) DefaultMaterial() *scene.Material { return scene.DefaultMaterial }

// Camera side.

func (w *Walker) PushModelTransformation()   { w.stack.Push() }
func (w *Walker) PopModelTransformation()    { w.stack.Pop() }
func (w *Walker) TransformModel(m geom.Mat4) { w.stack.Mult(m) }
func (w *Walker) TranslateModel(v geom.Vec3) { w.stack.Mult(geom.Translation(v)) }
func (w *Walker) ScaleModel(v geom.Vec3)     { w.stack.Mult(geom.Scaling(v)) }
func (w *Walker) ModelMatrix() geom.Mat4     { return w.stack.Top() }

// Project returns p in world space; every point is visible.
func (w *Walker) Project(p geom.Vec3) (geom.Vec3, bool) {
	return geom.TransformPoint(w.stack.Top(), p), true
}

var (
	_ projection.Engine = (*Walker)(nil)
	_ projection.Camera = (*Walker)(nil)
)

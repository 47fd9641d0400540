package measure

import (
	"github.com/phytogl/phytogl/internal/discretize"
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// BBoxComputer accumulates the world-space bounding box of the discretized
// geometry of a scene.
type BBoxComputer struct {
	walker *Walker
	box    geom.Box
	shapes map[uint32]geom.Box
}

// NewBBoxComputer returns a computer discretizing with opts.
func NewBBoxComputer(opts ...discretize.Option) *BBoxComputer {
	b := &BBoxComputer{shapes: make(map[uint32]geom.Box)}
	b.walker = NewWalker(b, opts...)
	return b
}

// Clear resets the box to empty.
func (b *BBoxComputer) Clear() {
	b.box = geom.Box{}
	b.shapes = make(map[uint32]geom.Box)
}

// Process extends the box with every shape of sc.
func (b *BBoxComputer) Process(sc *scene.Scene) bool { return b.walker.Walk(sc) }

// ProcessGeometry extends the box with g.
func (b *BBoxComputer) ProcessGeometry(g scene.Geometry) bool { return b.walker.WalkGeometry(g) }

// BoundingBox returns the box of everything processed since the last Clear.
func (b *BBoxComputer) BoundingBox() geom.Box { return b.box }

// ShapeBoxes returns the box of each shape id.
func (b *BBoxComputer) ShapeBoxes() map[uint32]geom.Box {
	out := make(map[uint32]geom.Box, len(b.shapes))
	for id, box := range b.shapes {
		out[id] = box
	}
	return out
}

func (b *BBoxComputer) extend(id uint32, points []geom.Vec3, model geom.Mat4) {
	box := b.shapes[id]
	for _, p := range points {
		box = box.Extend(geom.TransformPoint(model, p))
	}
	if box.IsEmpty() {
		return
	}
	b.shapes[id] = box
	b.box = b.box.Union(box)
}

func (b *BBoxComputer) Triangles(id uint32, ts *scene.TriangleSet, model geom.Mat4) {
	b.extend(id, ts.Points, model)
}

func (b *BBoxComputer) Polyline(id uint32, pl *scene.Polyline, model geom.Mat4) {
	b.extend(id, pl.Points, model)
}

func (b *BBoxComputer) Points(id uint32, ps *scene.PointSet, model geom.Mat4) {
	b.extend(id, ps.Points, model)
}

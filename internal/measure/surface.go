package measure

import (
	"github.com/phytogl/phytogl/internal/discretize"
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// SurfComputer sums the world-space area of the triangles of a scene.
// Curves and points have no area but their shapes are still listed.
// Results accumulate over Process calls until Clear.
type SurfComputer struct {
	walker   *Walker
	total    float64
	surfaces map[uint32]float64
}

// NewSurfComputer returns a computer discretizing with opts.
func NewSurfComputer(opts ...discretize.Option) *SurfComputer {
	s := &SurfComputer{surfaces: make(map[uint32]float64)}
	s.walker = NewWalker(s, opts...)
	return s
}

// Clear drops the accumulated surfaces.
func (s *SurfComputer) Clear() {
	s.total = 0
	s.surfaces = make(map[uint32]float64)
}

// Process adds the surface of every shape of sc. It reports false when a
// shape could not be discretized; the other shapes are still measured.
func (s *SurfComputer) Process(sc *scene.Scene) bool { return s.walker.Walk(sc) }

// ProcessGeometry adds the surface of g under NOID.
func (s *SurfComputer) ProcessGeometry(g scene.Geometry) bool { return s.walker.WalkGeometry(g) }

// Surface returns the total area.
func (s *SurfComputer) Surface() float64 { return s.total }

// ShapeSurfaces returns the area per shape id.
func (s *SurfComputer) ShapeSurfaces() map[uint32]float64 {
	out := make(map[uint32]float64, len(s.surfaces))
	for id, a := range s.surfaces {
		out[id] = a
	}
	return out
}

func (s *SurfComputer) Triangles(id uint32, ts *scene.TriangleSet, model geom.Mat4) {
	area := 0.0
	for i := range ts.Indices {
		a, b, c := ts.Triangle(i)
		area += geom.TriangleArea(geom.TransformPoint(model, a), geom.TransformPoint(model, b), geom.TransformPoint(model, c))
	}
	s.total += area
	s.surfaces[id] += area
}

func (s *SurfComputer) Polyline(id uint32, _ *scene.Polyline, _ geom.Mat4) { s.surfaces[id] += 0 }
func (s *SurfComputer) Points(id uint32, _ *scene.PointSet, _ geom.Mat4)   { s.surfaces[id] += 0 }

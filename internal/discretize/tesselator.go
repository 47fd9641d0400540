package discretize

import (
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// Tesselator is a Discretizer whose surface results are triangle sets.
// Curves and point sets are returned as the discretizer produced them.
type Tesselator struct {
	disc   *Discretizer
	result scene.Geometry
}

// NewTesselator returns a tesselator over its own discretizer.
func NewTesselator(opts ...Option) *Tesselator {
	return &Tesselator{disc: New(opts...)}
}

func (t *Tesselator) ComputeTexCoord(enabled bool) { t.disc.ComputeTexCoord(enabled) }

// Discretize computes the explicit model of n and triangulates it.
func (t *Tesselator) Discretize(n scene.Node) bool {
	t.result = nil
	if !t.disc.Discretize(n) {
		return false
	}
	t.result = Triangulate(t.disc.Result())
	return t.result != nil
}

// Result returns the model computed by the last successful Discretize.
func (t *Tesselator) Result() scene.Geometry { return t.result }

// Triangulate converts quads and polygons into triangles. Polygons are
// split as fans around their first vertex.
func Triangulate(g scene.Geometry) scene.Geometry {
	switch m := g.(type) {
	case *scene.QuadSet:
		ts := &scene.TriangleSet{Points: m.Points, TexCoords: m.TexCoords, Solid: m.Solid}
		ts.Indices = make([][3]int, 0, 2*len(m.Indices))
		for _, q := range m.Indices {
			ts.Indices = append(ts.Indices, [3]int{q[0], q[1], q[2]}, [3]int{q[0], q[2], q[3]})
		}
		return ts
	case *scene.FaceSet:
		ts := &scene.TriangleSet{Points: m.Points, Solid: m.Solid}
		if len(m.TexCoords) == len(m.Points) {
			ts.TexCoords = m.TexCoords
		}
		for _, f := range m.Indices {
			for k := 1; k+1 < len(f); k++ {
				ts.Indices = append(ts.Indices, [3]int{f[0], f[k], f[k+1]})
			}
		}
		return ts
	}
	return g
}

// Area returns the total area of the triangles of ts.
func Area(ts *scene.TriangleSet) float64 {
	area := 0.0
	for i := range ts.Indices {
		a, b, c := ts.Triangle(i)
		area += geom.TriangleArea(a, b, c)
	}
	return area
}

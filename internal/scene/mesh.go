package scene

import (
	"fmt"

	"github.com/phytogl/phytogl/internal/geom"
)

// FaceSet is a mesh of arbitrary polygons.
type FaceSet struct {
	Points    []geom.Vec3
	Indices   [][]int
	TexCoords []geom.Vec2
	Solid     bool
}

func (f *FaceSet) PointList() []geom.Vec3         { return f.Points }
func (f *FaceSet) Apply(a Action, st *State) bool { return a.ProcessFaceSet(st, f) }
func (*FaceSet) geometry()                        {}

// QuadSet is a mesh of quadrilaterals. Texture coordinates, when present,
// are given per point.
type QuadSet struct {
	Points    []geom.Vec3
	Indices   [][4]int
	TexCoords []geom.Vec2
	Solid     bool
}

func (q *QuadSet) PointList() []geom.Vec3         { return q.Points }
func (q *QuadSet) Apply(a Action, st *State) bool { return a.ProcessQuadSet(st, q) }
func (*QuadSet) geometry()                        {}

// TriangleSet is a triangle mesh. Texture coordinates, when present, are
// given per point.
type TriangleSet struct {
	Points    []geom.Vec3
	Indices   [][3]int
	TexCoords []geom.Vec2
	Solid     bool
}

// NewFaceSet checks every index against the point list.
func NewFaceSet(points []geom.Vec3, indices [][]int) (*FaceSet, error) {
	for i, face := range indices {
		if err := checkIndices("face", i, face, len(points)); err != nil {
			return nil, err
		}
	}
	return &FaceSet{Points: points, Indices: indices}, nil
}

// NewQuadSet checks every index against the point list.
func NewQuadSet(points []geom.Vec3, indices [][4]int) (*QuadSet, error) {
	for i, quad := range indices {
		if err := checkIndices("quad", i, quad[:], len(points)); err != nil {
			return nil, err
		}
	}
	return &QuadSet{Points: points, Indices: indices}, nil
}

func checkIndices(kind string, i int, idx []int, n int) error {
	for _, k := range idx {
		if k < 0 || k >= n {
			return fmt.Errorf("%s %d references point %d of %d: %w", kind, i, k, n, ErrInvalidGeometry)
		}
	}
	return nil
}

// NewTriangleSet checks every index against the point list.
func NewTriangleSet(points []geom.Vec3, indices [][3]int) (*TriangleSet, error) {
	for i, tri := range indices {
		if err := checkIndices("triangle", i, tri[:], len(points)); err != nil {
			return nil, err
		}
	}
	return &TriangleSet{Points: points, Indices: indices}, nil
}

// Triangle returns the corners of triangle i.
func (t *TriangleSet) Triangle(i int) (a, b, c geom.Vec3) {
	idx := t.Indices[i]
	return t.Points[idx[0]], t.Points[idx[1]], t.Points[idx[2]]
}

// HasTexCoords reports whether every point has a texture coordinate.
func (t *TriangleSet) HasTexCoords() bool {
	return len(t.TexCoords) > 0 && len(t.TexCoords) == len(t.Points)
}

func (t *TriangleSet) PointList() []geom.Vec3         { return t.Points }
func (t *TriangleSet) Apply(a Action, st *State) bool { return a.ProcessTriangleSet(st, t) }
func (*TriangleSet) geometry()                        {}

// PointSet is a cloud of 3D points.
type PointSet struct {
	Points []geom.Vec3
	Colors []Color4
	Width  int
}

func (p *PointSet) PointList() []geom.Vec3         { return p.Points }
func (p *PointSet) Apply(a Action, st *State) bool { return a.ProcessPointSet(st, p) }
func (*PointSet) geometry()                        {}

// PointSet2D is a cloud of planar points.
type PointSet2D struct {
	Points []geom.Vec2
}

func (p *PointSet2D) Apply(a Action, st *State) bool { return a.ProcessPointSet2D(st, p) }
func (*PointSet2D) geometry()                        {}

// AmapSymbol is a mesh loaded from a symbol library file.
type AmapSymbol struct {
	FileName string
	Mesh     *FaceSet
}

func (s *AmapSymbol) Apply(a Action, st *State) bool { return a.ProcessAmapSymbol(st, s) }
func (*AmapSymbol) geometry()                        {}

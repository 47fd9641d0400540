package discretize

import (
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

func lift(points []geom.Vec2) []geom.Vec3 {
	out := make([]geom.Vec3, len(points))
	for i, p := range points {
		out[i] = geom.Lift2(p)
	}
	return out
}

func pointsOf(g scene.Geometry) ([]geom.Vec3, bool) {
	if m, ok := g.(scene.ExplicitModel); ok {
		return m.PointList(), true
	}
	return nil, false
}

// grid builds a QuadSet of rows x cols points; point(i, j) gives the point
// of row i, column j.
func grid(rows, cols int, texCoord bool, point func(i, j int) geom.Vec3) *scene.QuadSet {
	qs := &scene.QuadSet{Points: make([]geom.Vec3, 0, rows*cols)}
	if texCoord {
		qs.TexCoords = make([]geom.Vec2, 0, rows*cols)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			qs.Points = append(qs.Points, point(i, j))
			if texCoord {
				qs.TexCoords = append(qs.TexCoords, geom.Vec2{float64(j) / float64(cols-1), float64(i) / float64(rows-1)})
			}
		}
	}
	for i := 0; i+1 < rows; i++ {
		for j := 0; j+1 < cols; j++ {
			a := i*cols + j
			qs.Indices = append(qs.Indices, [4]int{a, a + cols, a + cols + 1, a + 1})
		}
	}
	return qs
}

// faceSet converts a QuadSet so that caps can be appended to it.
func faceSet(qs *scene.QuadSet) *scene.FaceSet {
	fs := &scene.FaceSet{Points: qs.Points, TexCoords: qs.TexCoords, Solid: qs.Solid}
	fs.Indices = make([][]int, len(qs.Indices))
	for i, q := range qs.Indices {
		fs.Indices[i] = []int{q[0], q[1], q[2], q[3]}
	}
	return fs
}

// ring returns the indices of the first n points of row i of a grid with cols columns.
func ring(i, cols, n int, reverse bool) []int {
	out := make([]int, n)
	for j := range out {
		k := j
		if reverse {
			k = n - 1 - j
		}
		out[j] = i*cols + k
	}
	return out
}

func transformPoints(points []geom.Vec3, t geom.Transformation3D) []geom.Vec3 {
	return geom.TransformPoints(t, points)
}

// transformGeometry returns a copy of an explicit model with t applied to its points.
func transformGeometry(g scene.Geometry, t geom.Transformation3D) scene.Geometry {
	switch m := g.(type) {
	case *scene.Polyline:
		return &scene.Polyline{Points: transformPoints(m.Points, t), Colors: m.Colors, Width: m.Width}
	case *scene.PointSet:
		return &scene.PointSet{Points: transformPoints(m.Points, t), Colors: m.Colors, Width: m.Width}
	case *scene.QuadSet:
		return &scene.QuadSet{Points: transformPoints(m.Points, t), Indices: m.Indices, TexCoords: m.TexCoords, Solid: m.Solid}
	case *scene.FaceSet:
		return &scene.FaceSet{Points: transformPoints(m.Points, t), Indices: m.Indices, TexCoords: m.TexCoords, Solid: m.Solid}
	case *scene.TriangleSet:
		return &scene.TriangleSet{Points: transformPoints(m.Points, t), Indices: m.Indices, TexCoords: m.TexCoords, Solid: m.Solid}
	}
	return nil
}

// merge joins models of one kind. Meshes merge into a FaceSet, point sets
// into a PointSet; polylines cannot be joined into one curve.
func merge(parts []scene.Geometry) scene.Geometry {
	if len(parts) == 0 {
		return nil
	}
	if len(parts) == 1 {
		return parts[0]
	}
	switch parts[0].(type) {
	case *scene.PointSet:
		out := &scene.PointSet{}
		for _, p := range parts {
			ps, ok := p.(*scene.PointSet)
			if !ok {
				return nil
			}
			out.Points = append(out.Points, ps.Points...)
		}
		return out
	case *scene.QuadSet, *scene.FaceSet, *scene.TriangleSet:
		out := &scene.FaceSet{}
		for _, p := range parts {
			if !appendFaces(out, p) {
				return nil
			}
		}
		return out
	}
	return nil
}

func appendFaces(dst *scene.FaceSet, g scene.Geometry) bool {
	offset := len(dst.Points)
	shift := func(idx ...int) []int {
		out := make([]int, len(idx))
		for i, k := range idx {
			out[i] = k + offset
		}
		return out
	}
	switch m := g.(type) {
	case *scene.QuadSet:
		dst.Points = append(dst.Points, m.Points...)
		for _, q := range m.Indices {
			dst.Indices = append(dst.Indices, shift(q[:]...))
		}
	case *scene.FaceSet:
		dst.Points = append(dst.Points, m.Points...)
		for _, f := range m.Indices {
			dst.Indices = append(dst.Indices, shift(f...))
		}
	case *scene.TriangleSet:
		dst.Points = append(dst.Points, m.Points...)
		for _, t := range m.Indices {
			dst.Indices = append(dst.Indices, shift(t[:]...))
		}
	default:
		return false
	}
	return true
}

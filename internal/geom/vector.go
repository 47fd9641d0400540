// Package geom holds the vector and matrix math shared by the scene graph and
// its actions. Vectors and matrices are the mathgl float64 types; this package
// adds the point containers and transformations the scene graph needs.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type (
	Vec2 = mgl64.Vec2
	Vec3 = mgl64.Vec3
	Vec4 = mgl64.Vec4
	Mat4 = mgl64.Mat4
)

// Epsilon is the tolerance used for geometric comparisons.
const Epsilon = 1e-10

// XYZ builds a 3 component vector.
func XYZ(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// XYZW builds a homogeneous control point.
func XYZW(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Homogenize returns the weighted form (x*w, y*w, z*w) of a control point.
// Control points store cartesian coordinates next to their weight.
func Homogenize(p Vec4) Vec3 {
	return Vec3{p[0] * p[3], p[1] * p[3], p[2] * p[3]}
}

// Dehomogenize divides a weighted sum by its accumulated weight.
// A vanishing weight returns the sum unchanged.
func Dehomogenize(sum Vec3, weight float64) Vec3 {
	if math.Abs(weight) < Epsilon {
		return sum
	}
	return sum.Mul(1 / weight)
}

// Lift2 places a planar point in the XY plane.
func Lift2(p Vec2) Vec3 {
	return Vec3{p[0], p[1], 0}
}

// SwapYZ places a planar point in the XZ plane: (x, y) becomes (x, 0, y).
func SwapYZ(p Vec3) Vec3 {
	return Vec3{p[0], 0, p[1]}
}

// TriangleArea returns the area of the triangle (a, b, c).
func TriangleArea(a, b, c Vec3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Len() / 2
}

// ClosedLoop returns a copy of points with the first point appended at the end.
func ClosedLoop(points []Vec3) []Vec3 {
	if len(points) == 0 {
		return nil
	}
	out := make([]Vec3, len(points), len(points)+1)
	copy(out, points)
	return append(out, points[0])
}

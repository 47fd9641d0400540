package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Identity returns the identity matrix.
func Identity() Mat4 {
	return mgl64.Ident4()
}

// Translation returns a translation matrix.
func Translation(v Vec3) Mat4 {
	return mgl64.Translate3D(v[0], v[1], v[2])
}

// Scaling returns a scale matrix.
func Scaling(v Vec3) Mat4 {
	return mgl64.Scale3D(v[0], v[1], v[2])
}

// AxisRotation returns a rotation of angle radians around axis.
// A degenerate axis yields the identity.
func AxisRotation(axis Vec3, angle float64) Mat4 {
	if axis.Len() < Epsilon {
		return Identity()
	}
	return mgl64.HomogRotate3D(angle, axis.Normalize())
}

// EulerRotation composes Rz(azimuth) * Ry(elevation) * Rx(roll), angles in radians.
func EulerRotation(azimuth, elevation, roll float64) Mat4 {
	return mgl64.HomogRotate3DZ(azimuth).
		Mul4(mgl64.HomogRotate3DY(elevation)).
		Mul4(mgl64.HomogRotate3DX(roll))
}

// Orientation returns the basis change whose x axis is primary and whose
// y axis is secondary made orthogonal to primary.
func Orientation(primary, secondary Vec3) Mat4 {
	if primary.Len() < Epsilon {
		return Identity()
	}
	x := primary.Normalize()
	z := x.Cross(secondary)
	if z.Len() < Epsilon {
		return Identity()
	}
	z = z.Normalize()
	y := z.Cross(x)
	return mgl64.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), Vec4{0, 0, 0, 1})
}

// TransformPoint applies m to a point (w = 1) and divides by the resulting weight.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	return mgl64.TransformCoordinate(p, m)
}

// TransformBox transforms the eight corners of b and returns their bounding box.
func TransformBox(m Mat4, b Box) Box {
	if b.IsEmpty() {
		return b
	}
	var out Box
	for i := 0; i < 8; i++ {
		corner := Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		out = out.Extend(TransformPoint(m, corner))
	}
	return out
}

// IsIdentity checks if m is the identity matrix (within epsilon).
func IsIdentity(m Mat4) bool {
	return m.ApproxEqualThreshold(mgl64.Ident4(), 1e-10)
}

// IsDefault reports whether v equals def component-wise (within epsilon).
func IsDefault(v, def Vec3) bool {
	return math.Abs(v[0]-def[0]) < Epsilon &&
		math.Abs(v[1]-def[1]) < Epsilon &&
		math.Abs(v[2]-def[2]) < Epsilon
}

// Rotation2D returns the planar rotation of angle radians.
func Rotation2D(angle float64) mgl64.Mat2 {
	return mgl64.Rotate2D(angle)
}

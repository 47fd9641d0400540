package geom

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxInstances bounds the number of instances an IT may expand to.
const MaxInstances = 1 << 16

var ErrTooManyInstances = errors.New("geom: iterated transformation has too many instances")

// Transformation3D maps points of space. Weighted control points are
// (x, y, z, w) with cartesian x, y, z; transformations keep the weight.
type Transformation3D interface {
	Transform(p Vec3) Vec3
	Transform4(p Vec4) Vec4
}

// Matrix4Transformation is a transformation expressed by a single matrix.
type Matrix4Transformation interface {
	Transformation3D
	Matrix() Mat4
}

// MatrixTransformation applies a 4x4 matrix.
type MatrixTransformation struct {
	M Mat4
}

// NewMatrixTransformation wraps m.
func NewMatrixTransformation(m Mat4) MatrixTransformation {
	return MatrixTransformation{M: m}
}

func (t MatrixTransformation) Matrix() Mat4 { return t.M }

func (t MatrixTransformation) Transform(p Vec3) Vec3 {
	return TransformPoint(t.M, p)
}

// Transform4 transforms the cartesian part of a weighted point and keeps the weight.
func (t MatrixTransformation) Transform4(p Vec4) Vec4 {
	return TransformPoint(t.M, p.Vec3()).Vec4(p[3])
}

// Taper scales x and y by a radius interpolated linearly along z, from Base
// at z = 0 to Top at z = 1.
type Taper struct {
	Base float64
	Top  float64
}

func (t Taper) factor(z float64) float64 {
	return t.Base + (t.Top-t.Base)*z
}

func (t Taper) Transform(p Vec3) Vec3 {
	k := t.factor(p[2])
	return Vec3{p[0] * k, p[1] * k, p[2]}
}

// Transform4 tapers the cartesian part of a weighted point and keeps the weight.
func (t Taper) Transform4(p Vec4) Vec4 {
	k := t.factor(p[2])
	return Vec4{p[0] * k, p[1] * k, p[2], p[3]}
}

// IT is an iterated function system: every composition of Depth matrices
// taken from Transfos is one instance.
type IT struct {
	Transfos []Mat4
	Depth    int
}

// Instances returns len(Transfos)^Depth, a depth below 1 counting as 1. It
// reports ErrTooManyInstances for a negative depth or a count above
// MaxInstances.
func (it IT) Instances() (int, error) {
	if it.Depth < 0 || it.Depth > MaxInstances {
		return 0, fmt.Errorf("%w: depth %d", ErrTooManyInstances, it.Depth)
	}
	if len(it.Transfos) == 0 {
		return 0, nil
	}
	n := 1
	for level := 0; level < max(it.Depth, 1); level++ {
		n *= len(it.Transfos)
		if n > MaxInstances {
			return 0, fmt.Errorf("%w: %d matrices at depth %d", ErrTooManyInstances, len(it.Transfos), it.Depth)
		}
	}
	return n, nil
}

// AllTransfo returns the len(Transfos)^Depth instance matrices in
// lexicographic order of the composition. It returns nil when Instances
// fails.
func (it IT) AllTransfo() []Mat4 {
	if n, err := it.Instances(); err != nil || n == 0 {
		return nil
	}
	result := []Mat4{mgl64.Ident4()}
	for level := 0; level < max(it.Depth, 1); level++ {
		next := make([]Mat4, 0, len(result)*len(it.Transfos))
		for _, m := range result {
			for _, t := range it.Transfos {
				next = append(next, m.Mul4(t))
			}
		}
		result = next
	}
	return result
}

// TransformPoints returns t applied to every point.
func TransformPoints(t Transformation3D, points []Vec3) []Vec3 {
	out := make([]Vec3, len(points))
	for i, p := range points {
		out[i] = t.Transform(p)
	}
	return out
}

// TransformPoints4 returns t applied to every weighted point.
func TransformPoints4(t Transformation3D, points []Vec4) []Vec4 {
	out := make([]Vec4, len(points))
	for i, p := range points {
		out[i] = t.Transform4(p)
	}
	return out
}

// TransformMatrix4 returns t applied to every point of m.
func TransformMatrix4(t Transformation3D, m *Point4Matrix) *Point4Matrix {
	return m.Map(t.Transform4)
}

package scene

import (
	"errors"
	"fmt"

	"github.com/phytogl/phytogl/internal/geom"
)

// ErrInvalidGeometry is returned by constructors given inconsistent data.
var ErrInvalidGeometry = errors.New("scene: invalid geometry")

// DefaultStride is the number of segments used to sample a curve when the
// curve does not say otherwise.
const DefaultStride = 30

// BezierCurve is a rational Bezier curve. Control points are cartesian
// coordinates with a weight in the fourth component.
type BezierCurve struct {
	CtrlPoints []geom.Vec4
	Stride     int
}

// NewBezierCurve checks that the curve has at least two control points.
func NewBezierCurve(points []geom.Vec4, stride int) (*BezierCurve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("bezier curve with %d control points: %w", len(points), ErrInvalidGeometry)
	}
	return &BezierCurve{CtrlPoints: points, Stride: stride}, nil
}

func (c *BezierCurve) Degree() int                    { return len(c.CtrlPoints) - 1 }
func (c *BezierCurve) CtrlPointList() []geom.Vec4     { return c.CtrlPoints }
func (c *BezierCurve) Apply(a Action, st *State) bool { return a.ProcessBezierCurve(st, c) }
func (*BezierCurve) geometry()                        {}
func (*BezierCurve) lineic()                          {}

// NurbsCurve is a rational B-spline curve.
type NurbsCurve struct {
	CtrlPoints []geom.Vec4
	Degree     int
	Knots      []float64
	Stride     int
}

// NewNurbsCurve checks the knot vector against the control points. A nil
// knot vector is replaced by the clamped uniform one.
func NewNurbsCurve(points []geom.Vec4, degree int, knots []float64, stride int) (*NurbsCurve, error) {
	knots, err := checkKnots(len(points), degree, knots)
	if err != nil {
		return nil, fmt.Errorf("nurbs curve: %w", err)
	}
	return &NurbsCurve{CtrlPoints: points, Degree: degree, Knots: knots, Stride: stride}, nil
}

func (c *NurbsCurve) CtrlPointList() []geom.Vec4     { return c.CtrlPoints }
func (c *NurbsCurve) Apply(a Action, st *State) bool { return a.ProcessNurbsCurve(st, c) }
func (*NurbsCurve) geometry()                        {}
func (*NurbsCurve) lineic()                          {}

// Polyline is a 3D curve given by its vertices.
type Polyline struct {
	Points []geom.Vec3
	Colors []Color4
	Width  int
}

func (p *Polyline) PointList() []geom.Vec3         { return p.Points }
func (p *Polyline) Apply(a Action, st *State) bool { return a.ProcessPolyline(st, p) }
func (*Polyline) geometry()                        {}
func (*Polyline) lineic()                          {}

// BezierCurve2D is a planar rational Bezier curve; control points are (x, y, w).
type BezierCurve2D struct {
	CtrlPoints []geom.Vec3
	Stride     int
}

// NewBezierCurve2D checks that the curve has at least two control points.
func NewBezierCurve2D(points []geom.Vec3, stride int) (*BezierCurve2D, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("bezier curve 2D with %d control points: %w", len(points), ErrInvalidGeometry)
	}
	return &BezierCurve2D{CtrlPoints: points, Stride: stride}, nil
}

func (c *BezierCurve2D) CtrlPointList2D() []geom.Vec3   { return c.CtrlPoints }
func (c *BezierCurve2D) Apply(a Action, st *State) bool { return a.ProcessBezierCurve2D(st, c) }
func (*BezierCurve2D) geometry()                        {}
func (*BezierCurve2D) curve2D()                         {}

// NurbsCurve2D is a planar rational B-spline curve; control points are (x, y, w).
type NurbsCurve2D struct {
	CtrlPoints []geom.Vec3
	Degree     int
	Knots      []float64
	Stride     int
}

// NewNurbsCurve2D checks the knot vector against the control points.
func NewNurbsCurve2D(points []geom.Vec3, degree int, knots []float64, stride int) (*NurbsCurve2D, error) {
	knots, err := checkKnots(len(points), degree, knots)
	if err != nil {
		return nil, fmt.Errorf("nurbs curve 2D: %w", err)
	}
	return &NurbsCurve2D{CtrlPoints: points, Degree: degree, Knots: knots, Stride: stride}, nil
}

func (c *NurbsCurve2D) CtrlPointList2D() []geom.Vec3   { return c.CtrlPoints }
func (c *NurbsCurve2D) Apply(a Action, st *State) bool { return a.ProcessNurbsCurve2D(st, c) }
func (*NurbsCurve2D) geometry()                        {}
func (*NurbsCurve2D) curve2D()                         {}

// Polyline2D is a planar curve given by its vertices.
type Polyline2D struct {
	Points []geom.Vec2
}

func (p *Polyline2D) Apply(a Action, st *State) bool { return a.ProcessPolyline2D(st, p) }
func (*Polyline2D) geometry()                        {}
func (*Polyline2D) curve2D()                         {}

// UniformKnots returns the clamped uniform knot vector over [0, 1] for n
// control points of the given degree.
func UniformKnots(n, degree int) []float64 {
	size := n + degree + 1
	knots := make([]float64, size)
	inner := n - degree
	for i := range knots {
		switch {
		case i <= degree:
			knots[i] = 0
		case i >= n:
			knots[i] = 1
		default:
			knots[i] = float64(i-degree) / float64(inner)
		}
	}
	return knots
}

func checkKnots(n, degree int, knots []float64) ([]float64, error) {
	if degree < 1 || n < degree+1 {
		return nil, fmt.Errorf("degree %d with %d control points: %w", degree, n, ErrInvalidGeometry)
	}
	if knots == nil {
		return UniformKnots(n, degree), nil
	}
	if len(knots) != n+degree+1 {
		return nil, fmt.Errorf("%d knots for %d control points of degree %d: %w", len(knots), n, degree, ErrInvalidGeometry)
	}
	for i := 1; i < len(knots); i++ {
		if knots[i] < knots[i-1] {
			return nil, fmt.Errorf("decreasing knot at %d: %w", i, ErrInvalidGeometry)
		}
	}
	return knots, nil
}

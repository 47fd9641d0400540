package scene

import (
	"fmt"

	"github.com/phytogl/phytogl/internal/geom"
)

// BezierPatch is a rational tensor-product Bezier surface. Rows follow u,
// columns follow v.
type BezierPatch struct {
	CtrlPoints *geom.Point4Matrix
	UStride    int
	VStride    int
}

// NewBezierPatch checks that the grid has at least 2x2 control points.
func NewBezierPatch(points *geom.Point4Matrix, ustride, vstride int) (*BezierPatch, error) {
	if points == nil || points.Rows() < 2 || points.Cols() < 2 {
		return nil, fmt.Errorf("bezier patch needs a 2x2 control grid: %w", ErrInvalidGeometry)
	}
	return &BezierPatch{CtrlPoints: points, UStride: ustride, VStride: vstride}, nil
}

func (p *BezierPatch) CtrlPointMatrix() *geom.Point4Matrix { return p.CtrlPoints }
func (p *BezierPatch) Apply(a Action, st *State) bool      { return a.ProcessBezierPatch(st, p) }
func (*BezierPatch) geometry()                             {}

// NurbsPatch is a rational tensor-product B-spline surface.
type NurbsPatch struct {
	CtrlPoints *geom.Point4Matrix
	UDegree    int
	VDegree    int
	UKnots     []float64
	VKnots     []float64
	UStride    int
	VStride    int
}

// NewNurbsPatch checks both knot vectors; nil knots become clamped uniform ones.
func NewNurbsPatch(points *geom.Point4Matrix, udeg, vdeg int, uknots, vknots []float64, ustride, vstride int) (*NurbsPatch, error) {
	if points == nil {
		return nil, fmt.Errorf("nurbs patch without control points: %w", ErrInvalidGeometry)
	}
	uk, err := checkKnots(points.Rows(), udeg, uknots)
	if err != nil {
		return nil, fmt.Errorf("nurbs patch u: %w", err)
	}
	vk, err := checkKnots(points.Cols(), vdeg, vknots)
	if err != nil {
		return nil, fmt.Errorf("nurbs patch v: %w", err)
	}
	return &NurbsPatch{CtrlPoints: points, UDegree: udeg, VDegree: vdeg, UKnots: uk, VKnots: vk, UStride: ustride, VStride: vstride}, nil
}

func (p *NurbsPatch) CtrlPointMatrix() *geom.Point4Matrix { return p.CtrlPoints }
func (p *NurbsPatch) Apply(a Action, st *State) bool      { return a.ProcessNurbsPatch(st, p) }
func (*NurbsPatch) geometry()                             {}

// ElevationGrid is a height field sampled on a regular XY grid.
type ElevationGrid struct {
	Heights  [][]float64
	XSpacing float64
	YSpacing float64
}

func (g *ElevationGrid) Apply(a Action, st *State) bool { return a.ProcessElevationGrid(st, g) }
func (*ElevationGrid) geometry()                        {}

// Revolution is the surface swept by a planar profile turning around Z.
// The profile's x is the radius and its y the height.
type Revolution struct {
	Profile Curve2D
	Slices  int
}

func (r *Revolution) Apply(a Action, st *State) bool { return a.ProcessRevolution(st, r) }
func (*Revolution) geometry()                        {}

// Swung revolves a family of profiles, each attached to an angle, blending
// between them as it turns.
type Swung struct {
	Profiles []Curve2D
	Angles   []float64
	Slices   int
	Stride   int
}

// NewSwung checks that there is one angle per profile.
func NewSwung(profiles []Curve2D, angles []float64, slices, stride int) (*Swung, error) {
	if len(profiles) == 0 || len(profiles) != len(angles) {
		return nil, fmt.Errorf("swung with %d profiles and %d angles: %w", len(profiles), len(angles), ErrInvalidGeometry)
	}
	return &Swung{Profiles: profiles, Angles: angles, Slices: slices, Stride: stride}, nil
}

func (s *Swung) Apply(a Action, st *State) bool { return a.ProcessSwung(st, s) }
func (*Swung) geometry()                        {}

// Extrusion sweeps a cross-section along an axis curve. Scale and
// Orientation, when set, are interpolated along the axis.
type Extrusion struct {
	Axis         LineicModel
	CrossSection Curve2D
	Scale        []geom.Vec2
	Orientation  []float64
	Solid        bool
}

func (e *Extrusion) Apply(a Action, st *State) bool { return a.ProcessExtrusion(st, e) }
func (*Extrusion) geometry()                        {}

// ExtrudedHull is a closed hull defined by a vertical silhouette in the XZ
// plane and a horizontal section in the XY plane.
type ExtrudedHull struct {
	Vertical   Curve2D
	Horizontal Curve2D
}

func (h *ExtrudedHull) Apply(a Action, st *State) bool { return a.ProcessExtrudedHull(st, h) }
func (*ExtrudedHull) geometry()                        {}

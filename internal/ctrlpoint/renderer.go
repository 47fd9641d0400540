// Package ctrlpoint draws the control polygons of parametric geometry:
// the control points of curves and patches, the profiles of hulls, and the
// polygons of explicit curves. Everything else draws nothing.
package ctrlpoint

import (
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// DefaultAppearance is the solid red material every control polygon is drawn with.
var DefaultAppearance = scene.NewMaterial(scene.Red)

// Discretizer computes explicit models of planar curves.
type Discretizer interface {
	ComputeTexCoord(enabled bool)
	Discretize(n scene.Node) bool
	Result() scene.Geometry
}

// Renderer is the control-point drawing action.
type Renderer struct {
	painter Painter
	disc    Discretizer
}

var _ scene.Action = (*Renderer)(nil)

// NewRenderer returns a renderer drawing through p. The discretizer is used
// for the profiles of extruded hulls.
func NewRenderer(p Painter, disc Discretizer) *Renderer {
	return &Renderer{painter: p, disc: disc}
}

func (r *Renderer) BeginProcess() bool {
	r.painter.SetAppearance(DefaultAppearance)
	return true
}

func (r *Renderer) EndProcess() bool { return true }

// ProcessShape ignores the shape's appearance.
func (r *Renderer) ProcessShape(st *scene.State, n *scene.Shape) bool {
	if !n.IsValid() {
		return false
	}
	child := st.Derive()
	child.ShapeID = n.ID
	return n.Geometry.Apply(r, child)
}

func (r *Renderer) strip(points []geom.Vec3) {
	r.painter.LineStrip(points)
}

func (r *Renderer) strip4(points []geom.Vec4) {
	out := make([]geom.Vec3, len(points))
	for i, p := range points {
		out[i] = p.Vec3()
	}
	r.strip(out)
}

// grid draws every row of m, then every column.
func (r *Renderer) grid(m *geom.Point4Matrix) {
	for i := 0; i < m.Rows(); i++ {
		r.strip4(m.Row(i))
	}
	for j := 0; j < m.Cols(); j++ {
		r.strip4(m.Col(j))
	}
}

// push multiplies the painter's matrix by m until the returned func runs.
func (r *Renderer) push(m geom.Mat4) func() {
	r.painter.PushMatrix()
	r.painter.MultMatrix(m)
	return r.painter.PopMatrix
}

// Curves.

func (r *Renderer) curve(c scene.ParametricCurve) bool {
	r.strip4(c.CtrlPointList())
	return true
}

func (r *Renderer) curve2D(c scene.ParametricCurve2D) bool {
	pts := c.CtrlPointList2D()
	out := make([]geom.Vec3, len(pts))
	for i, p := range pts {
		out[i] = geom.Vec3{p[0], p[1], 0}
	}
	r.strip(out)
	return true
}

func (r *Renderer) ProcessBezierCurve(_ *scene.State, n *scene.BezierCurve) bool { return r.curve(n) }
func (r *Renderer) ProcessNurbsCurve(_ *scene.State, n *scene.NurbsCurve) bool   { return r.curve(n) }

func (r *Renderer) ProcessBezierCurve2D(_ *scene.State, n *scene.BezierCurve2D) bool {
	return r.curve2D(n)
}

func (r *Renderer) ProcessNurbsCurve2D(_ *scene.State, n *scene.NurbsCurve2D) bool {
	return r.curve2D(n)
}

func (r *Renderer) ProcessPolyline(_ *scene.State, n *scene.Polyline) bool {
	r.strip(n.Points)
	return true
}

func (r *Renderer) ProcessPolyline2D(_ *scene.State, n *scene.Polyline2D) bool {
	out := make([]geom.Vec3, len(n.Points))
	for i, p := range n.Points {
		out[i] = geom.Lift2(p)
	}
	r.strip(out)
	return true
}

// Surfaces.

func (r *Renderer) ProcessBezierPatch(_ *scene.State, n *scene.BezierPatch) bool {
	r.grid(n.CtrlPoints)
	return true
}

func (r *Renderer) ProcessNurbsPatch(_ *scene.State, n *scene.NurbsPatch) bool {
	r.grid(n.CtrlPoints)
	return true
}

// profile discretizes a planar curve and returns a copy of its points.
func (r *Renderer) profile(c scene.Curve2D) ([]geom.Vec3, bool) {
	if c == nil || r.disc == nil {
		return nil, false
	}
	r.disc.ComputeTexCoord(false)
	if !r.disc.Discretize(c) {
		return nil, false
	}
	m, ok := r.disc.Result().(scene.ExplicitModel)
	if !ok || len(m.PointList()) == 0 {
		return nil, false
	}
	return append([]geom.Vec3(nil), m.PointList()...), true
}

// ProcessExtrudedHull draws the horizontal profile as a closed loop in the
// XY plane and the vertical one as a closed loop in the XZ plane. A profile
// that cannot be discretized is skipped.
func (r *Renderer) ProcessExtrudedHull(_ *scene.State, n *scene.ExtrudedHull) bool {
	r.horizontalLoop(n)
	if pts, ok := r.profile(n.Vertical); ok {
		r.strip(geom.ClosedLoop(swap(pts)))
	}
	return true
}

func (r *Renderer) horizontalLoop(n *scene.ExtrudedHull) {
	if pts, ok := r.profile(n.Horizontal); ok {
		for i := range pts {
			pts[i][2] = 0
		}
		r.strip(geom.ClosedLoop(pts))
	}
}

func swap(points []geom.Vec3) []geom.Vec3 {
	for i, p := range points {
		points[i] = geom.SwapYZ(p)
	}
	return points
}

// ProcessExtrusion draws the control polygon of the axis.
func (r *Renderer) ProcessExtrusion(st *scene.State, n *scene.Extrusion) bool {
	if n.Axis == nil {
		return false
	}
	return n.Axis.Apply(r, st)
}

// ProcessTapered draws the tapered control polygon of curves, patches and
// extruded hulls. Other primitives are not drawn and fail.
func (r *Renderer) ProcessTapered(_ *scene.State, n *scene.Tapered) bool {
	taper := n.Taper()
	switch p := n.Primitive.(type) {
	case scene.ParametricCurve:
		r.strip4(geom.TransformPoints4(taper, p.CtrlPointList()))
	case scene.ParametricPatch:
		r.grid(geom.TransformMatrix4(taper, p.CtrlPointMatrix()))
	case *scene.ExtrudedHull:
		r.horizontalLoop(p)
		if pts, ok := r.profile(p.Vertical); ok {
			r.strip(geom.TransformPoints(taper, geom.ClosedLoop(swap(pts))))
		}
	default:
		return false
	}
	return true
}

// Transformed.

func (r *Renderer) transformed(st *scene.State, n scene.Matrix4Transformed) bool {
	if n.Child() == nil {
		return false
	}
	defer r.push(n.Matrix())()
	return n.Child().Apply(r, st)
}

func (r *Renderer) ProcessTranslated(st *scene.State, n *scene.Translated) bool {
	return r.transformed(st, n)
}

func (r *Renderer) ProcessScaled(st *scene.State, n *scene.Scaled) bool {
	return r.transformed(st, n)
}

func (r *Renderer) ProcessAxisRotated(st *scene.State, n *scene.AxisRotated) bool {
	return r.transformed(st, n)
}

func (r *Renderer) ProcessEulerRotated(st *scene.State, n *scene.EulerRotated) bool {
	return r.transformed(st, n)
}

func (r *Renderer) ProcessOriented(st *scene.State, n *scene.Oriented) bool {
	return r.transformed(st, n)
}

func (r *Renderer) ProcessIFS(st *scene.State, n *scene.IFS) bool {
	if n.Geometry == nil {
		return false
	}
	ok := true
	for _, m := range n.Transformation().AllTransfo() {
		if !r.instance(st, n.Geometry, m) {
			ok = false
		}
	}
	return ok
}

func (r *Renderer) instance(st *scene.State, g scene.Geometry, m geom.Mat4) bool {
	defer r.push(m)()
	return g.Apply(r, st)
}

// Composites.

func (r *Renderer) ProcessGroup(st *scene.State, n *scene.Group) bool {
	ok := true
	for _, c := range n.Children {
		if c == nil || !c.Apply(r, st) {
			ok = false
		}
	}
	return ok
}

func (r *Renderer) ProcessInline(st *scene.State, n *scene.Inline) bool {
	if n.Scene == nil {
		return false
	}
	if !n.IsTranslationToDefault() || !n.IsScaleToDefault() {
		defer r.push(geom.Translation(n.Translation).Mul4(geom.Scaling(n.Scale)))()
	}
	return n.Scene.ApplyShapes(r, st)
}

// Nodes without a control polygon.

func (r *Renderer) ProcessScreenProjected(*scene.State, *scene.ScreenProjected) bool { return true }
func (r *Renderer) ProcessMaterial(*scene.State, *scene.Material) bool               { return true }
func (r *Renderer) ProcessImageTexture(*scene.State, *scene.ImageTexture) bool       { return true }
func (r *Renderer) ProcessTexture2D(*scene.State, *scene.Texture2D) bool             { return true }
func (r *Renderer) ProcessTexture2DTransformation(*scene.State, *scene.Texture2DTransformation) bool {
	return true
}
func (r *Renderer) ProcessMonoSpectral(*scene.State, *scene.MonoSpectral) bool     { return true }
func (r *Renderer) ProcessMultiSpectral(*scene.State, *scene.MultiSpectral) bool   { return true }
func (r *Renderer) ProcessElevationGrid(*scene.State, *scene.ElevationGrid) bool   { return true }
func (r *Renderer) ProcessRevolution(*scene.State, *scene.Revolution) bool         { return true }
func (r *Renderer) ProcessSwung(*scene.State, *scene.Swung) bool                   { return true }
func (r *Renderer) ProcessSphere(*scene.State, *scene.Sphere) bool                 { return true }
func (r *Renderer) ProcessCone(*scene.State, *scene.Cone) bool                     { return true }
func (r *Renderer) ProcessCylinder(*scene.State, *scene.Cylinder) bool             { return true }
func (r *Renderer) ProcessFrustum(*scene.State, *scene.Frustum) bool               { return true }
func (r *Renderer) ProcessParaboloid(*scene.State, *scene.Paraboloid) bool         { return true }
func (r *Renderer) ProcessBox(*scene.State, *scene.Box) bool                       { return true }
func (r *Renderer) ProcessDisc(*scene.State, *scene.Disc) bool                     { return true }
func (r *Renderer) ProcessAsymmetricHull(*scene.State, *scene.AsymmetricHull) bool { return true }
func (r *Renderer) ProcessFaceSet(*scene.State, *scene.FaceSet) bool               { return true }
func (r *Renderer) ProcessQuadSet(*scene.State, *scene.QuadSet) bool               { return true }
func (r *Renderer) ProcessTriangleSet(*scene.State, *scene.TriangleSet) bool       { return true }
func (r *Renderer) ProcessPointSet(*scene.State, *scene.PointSet) bool             { return true }
func (r *Renderer) ProcessPointSet2D(*scene.State, *scene.PointSet2D) bool         { return true }
func (r *Renderer) ProcessAmapSymbol(*scene.State, *scene.AmapSymbol) bool         { return true }
func (r *Renderer) ProcessText(*scene.State, *scene.Text) bool                     { return true }
func (r *Renderer) ProcessFont(*scene.State, *scene.Font) bool                     { return true }

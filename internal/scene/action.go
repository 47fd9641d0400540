package scene

import "math"

// NOID is the id of a shape that was never given one.
const NOID uint32 = math.MaxUint32

// State is the ambient state of one traversal. It is threaded through every
// handler call: a Shape hands its geometry a derived copy, so the appearance
// and id it records never leak to sibling shapes.
type State struct {
	Appearance Appearance
	ShapeID    uint32
}

// NewState returns the state a traversal starts from.
func NewState() *State {
	return &State{ShapeID: NOID}
}

// Derive returns a copy of s for a nested scope.
func (s *State) Derive() *State {
	if s == nil {
		return NewState()
	}
	c := *s
	return &c
}

// Textured reports whether the current appearance is a texture.
func (s *State) Textured() bool {
	return s != nil && s.Appearance != nil && s.Appearance.IsTexture()
}

// Action is a traversal behaviour with one handler per node variant.
// Handlers return false when the node could not be processed. The set of
// variants is closed: a new node type adds a method here, and every action
// stops compiling until it handles it.
type Action interface {
	BeginProcess() bool
	EndProcess() bool

	ProcessShape(st *State, n *Shape) bool

	// Appearance.
	ProcessMaterial(st *State, n *Material) bool
	ProcessImageTexture(st *State, n *ImageTexture) bool
	ProcessTexture2D(st *State, n *Texture2D) bool
	ProcessTexture2DTransformation(st *State, n *Texture2DTransformation) bool
	ProcessMonoSpectral(st *State, n *MonoSpectral) bool
	ProcessMultiSpectral(st *State, n *MultiSpectral) bool

	// Composites.
	ProcessGroup(st *State, n *Group) bool
	ProcessInline(st *State, n *Inline) bool
	ProcessScreenProjected(st *State, n *ScreenProjected) bool

	// Curves.
	ProcessBezierCurve(st *State, n *BezierCurve) bool
	ProcessNurbsCurve(st *State, n *NurbsCurve) bool
	ProcessPolyline(st *State, n *Polyline) bool
	ProcessBezierCurve2D(st *State, n *BezierCurve2D) bool
	ProcessNurbsCurve2D(st *State, n *NurbsCurve2D) bool
	ProcessPolyline2D(st *State, n *Polyline2D) bool

	// Surfaces.
	ProcessBezierPatch(st *State, n *BezierPatch) bool
	ProcessNurbsPatch(st *State, n *NurbsPatch) bool
	ProcessElevationGrid(st *State, n *ElevationGrid) bool
	ProcessRevolution(st *State, n *Revolution) bool
	ProcessSwung(st *State, n *Swung) bool
	ProcessExtrusion(st *State, n *Extrusion) bool
	ProcessExtrudedHull(st *State, n *ExtrudedHull) bool

	// Solids.
	ProcessSphere(st *State, n *Sphere) bool
	ProcessCone(st *State, n *Cone) bool
	ProcessCylinder(st *State, n *Cylinder) bool
	ProcessFrustum(st *State, n *Frustum) bool
	ProcessParaboloid(st *State, n *Paraboloid) bool
	ProcessBox(st *State, n *Box) bool
	ProcessDisc(st *State, n *Disc) bool
	ProcessAsymmetricHull(st *State, n *AsymmetricHull) bool

	// Explicit models.
	ProcessFaceSet(st *State, n *FaceSet) bool
	ProcessQuadSet(st *State, n *QuadSet) bool
	ProcessTriangleSet(st *State, n *TriangleSet) bool
	ProcessPointSet(st *State, n *PointSet) bool
	ProcessPointSet2D(st *State, n *PointSet2D) bool
	ProcessAmapSymbol(st *State, n *AmapSymbol) bool

	// Transformed.
	ProcessTranslated(st *State, n *Translated) bool
	ProcessScaled(st *State, n *Scaled) bool
	ProcessAxisRotated(st *State, n *AxisRotated) bool
	ProcessEulerRotated(st *State, n *EulerRotated) bool
	ProcessOriented(st *State, n *Oriented) bool
	ProcessTapered(st *State, n *Tapered) bool
	ProcessIFS(st *State, n *IFS) bool

	// Text.
	ProcessText(st *State, n *Text) bool
	ProcessFont(st *State, n *Font) bool
}

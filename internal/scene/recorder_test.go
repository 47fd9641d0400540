package scene

type recorder struct {
	visited []string
	states  []*State
	fail    map[string]bool
	began   int
	ended   int
}

var _ Action = (*recorder)(nil)

func (r *recorder) BeginProcess() bool { r.began++; return true }
func (r *recorder) EndProcess() bool   { r.ended++; return true }

func (r *recorder) visit(name string, st *State) bool {
	r.visited = append(r.visited, name)
	r.states = append(r.states, st)
	return !r.fail[name]
}

func (r *recorder) ProcessShape(st *State, n *Shape) bool                                     { return r.visit("Shape", st) }
func (r *recorder) ProcessMaterial(st *State, n *Material) bool                               { return r.visit("Material", st) }
func (r *recorder) ProcessImageTexture(st *State, n *ImageTexture) bool                       { return r.visit("ImageTexture", st) }
func (r *recorder) ProcessTexture2D(st *State, n *Texture2D) bool                             { return r.visit("Texture2D", st) }
func (r *recorder) ProcessTexture2DTransformation(st *State, n *Texture2DTransformation) bool { return r.visit("Texture2DTransformation", st) }
func (r *recorder) ProcessMonoSpectral(st *State, n *MonoSpectral) bool                       { return r.visit("MonoSpectral", st) }
func (r *recorder) ProcessMultiSpectral(st *State, n *MultiSpectral) bool                     { return r.visit("MultiSpectral", st) }
func (r *recorder) ProcessGroup(st *State, n *Group) bool                                     { return r.visit("Group", st) }
func (r *recorder) ProcessInline(st *State, n *Inline) bool                                   { return r.visit("Inline", st) }
func (r *recorder) ProcessScreenProjected(st *State, n *ScreenProjected) bool                 { return r.visit("ScreenProjected", st) }
func (r *recorder) ProcessBezierCurve(st *State, n *BezierCurve) bool                         { return r.visit("BezierCurve", st) }
func (r *recorder) ProcessNurbsCurve(st *State, n *NurbsCurve) bool                           { return r.visit("NurbsCurve", st) }
func (r *recorder) ProcessPolyline(st *State, n *Polyline) bool                               { return r.visit("Polyline", st) }
func (r *recorder) ProcessBezierCurve2D(st *State, n *BezierCurve2D) bool                     { return r.visit("BezierCurve2D", st) }
func (r *recorder) ProcessNurbsCurve2D(st *State, n *NurbsCurve2D) bool                       { return r.visit("NurbsCurve2D", st) }
func (r *recorder) ProcessPolyline2D(st *State, n *Polyline2D) bool                           { return r.visit("Polyline2D", st) }
func (r *recorder) ProcessBezierPatch(st *State, n *BezierPatch) bool                         { return r.visit("BezierPatch", st) }
func (r *recorder) ProcessNurbsPatch(st *State, n *NurbsPatch) bool                           { return r.visit("NurbsPatch", st) }
func (r *recorder) ProcessElevationGrid(st *State, n *ElevationGrid) bool                     { return r.visit("ElevationGrid", st) }
func (r *recorder) ProcessRevolution(st *State, n *Revolution) bool                           { return r.visit("Revolution", st) }
func (r *recorder) ProcessSwung(st *State, n *Swung) bool                                     { return r.visit("Swung", st) }
func (r *recorder) ProcessExtrusion(st *State, n *Extrusion) bool                             { return r.visit("Extrusion", st) }
func (r *recorder) ProcessExtrudedHull(st *State, n *ExtrudedHull) bool                       { return r.visit("ExtrudedHull", st) }
func (r *recorder) ProcessSphere(st *State, n *Sphere) bool                                   { return r.visit("Sphere", st) }
func (r *recorder) ProcessCone(st *State, n *Cone) bool                                       { return r.visit("Cone", st) }
func (r *recorder) ProcessCylinder(st *State, n *Cylinder) bool                               { return r.visit("Cylinder", st) }
func (r *recorder) ProcessFrustum(st *State, n *Frustum) bool                                 { return r.visit("Frustum", st) }
func (r *recorder) ProcessParaboloid(st *State, n *Paraboloid) bool                           { return r.visit("Paraboloid", st) }
func (r *recorder) ProcessBox(st *State, n *Box) bool                                         { return r.visit("Box", st) }
func (r *recorder) ProcessDisc(st *State, n *Disc) bool                                       { return r.visit("Disc", st) }
func (r *recorder) ProcessAsymmetricHull(st *State, n *AsymmetricHull) bool                   { return r.visit("AsymmetricHull", st) }
func (r *recorder) ProcessFaceSet(st *State, n *FaceSet) bool                                 { return r.visit("FaceSet", st) }
func (r *recorder) ProcessQuadSet(st *State, n *QuadSet) bool                                 { return r.visit("QuadSet", st) }
func (r *recorder) ProcessTriangleSet(st *State, n *TriangleSet) bool                         { return r.visit("TriangleSet", st) }
func (r *recorder) ProcessPointSet(st *State, n *PointSet) bool                               { return r.visit("PointSet", st) }
func (r *recorder) ProcessPointSet2D(st *State, n *PointSet2D) bool                           { return r.visit("PointSet2D", st) }
func (r *recorder) ProcessAmapSymbol(st *State, n *AmapSymbol) bool                           { return r.visit("AmapSymbol", st) }
func (r *recorder) ProcessTranslated(st *State, n *Translated) bool                           { return r.visit("Translated", st) }
func (r *recorder) ProcessScaled(st *State, n *Scaled) bool                                   { return r.visit("Scaled", st) }
func (r *recorder) ProcessAxisRotated(st *State, n *AxisRotated) bool                         { return r.visit("AxisRotated", st) }
func (r *recorder) ProcessEulerRotated(st *State, n *EulerRotated) bool                       { return r.visit("EulerRotated", st) }
func (r *recorder) ProcessOriented(st *State, n *Oriented) bool                               { return r.visit("Oriented", st) }
func (r *recorder) ProcessTapered(st *State, n *Tapered) bool                                 { return r.visit("Tapered", st) }
func (r *recorder) ProcessIFS(st *State, n *IFS) bool                                         { return r.visit("IFS", st) }
func (r *recorder) ProcessText(st *State, n *Text) bool                                       { return r.visit("Text", st) }
func (r *recorder) ProcessFont(st *State, n *Font) bool                                       { return r.visit("Font", st) }

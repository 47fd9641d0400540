package projection

import (
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// Discretizer computes the explicit model of a node. Result is owned by
// the discretizer and valid until the next call.
type Discretizer interface {
	ComputeTexCoord(enabled bool)
	Discretize(n scene.Node) bool
	Result() scene.Geometry
}

// Engine receives the explicit primitives of a pass. Calls carry the
// thread id of the renderer so an engine can keep per-thread buffers.
type Engine interface {
	ProcessPointSet(ps *scene.PointSet, mat *scene.Material, id uint32, cam Camera, threadID int)
	ProcessPolyline(pl *scene.Polyline, mat *scene.Material, id uint32, cam Camera, threadID int)
	ProcessTriangleSet(ts *scene.TriangleSet, app scene.Appearance, id uint32, cam Camera, threadID int)
	Camera() Camera
	DefaultMaterial() *scene.Material
}

// Renderer reduces every node to point sets, polylines and triangle sets
// and hands them to an Engine. A Renderer is single-threaded.
type Renderer struct {
	engine   Engine
	camera   Camera
	tess     Discretizer
	disc     Discretizer
	threadID int
}

var _ scene.Action = (*Renderer)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithCamera renders through cam instead of the engine's camera.
func WithCamera(cam Camera) Option {
	return func(r *Renderer) { r.camera = cam }
}

// NewRenderer returns a renderer for one pass. Curves go through disc,
// surfaces through tess.
func NewRenderer(engine Engine, tess, disc Discretizer, threadID int, opts ...Option) *Renderer {
	r := &Renderer{engine: engine, tess: tess, disc: disc, threadID: threadID}
	for _, opt := range opts {
		opt(r)
	}
	if r.camera == nil {
		r.camera = engine.Camera()
	}
	return r
}

// Camera returns the camera the renderer projects with.
func (r *Renderer) Camera() Camera { return r.camera }

func (r *Renderer) BeginProcess() bool { return true }
func (r *Renderer) EndProcess() bool   { return true }

// process runs d on n and applies the explicit model it produces.
func (r *Renderer) process(d Discretizer, st *scene.State, n scene.Node) bool {
	d.ComputeTexCoord(st.Textured())
	if !d.Discretize(n) {
		return false
	}
	res := d.Result()
	if res == nil {
		return false
	}
	return res.Apply(r, st)
}

func (r *Renderer) discretized(st *scene.State, n scene.Node) bool { return r.process(r.disc, st, n) }
func (r *Renderer) tesselated(st *scene.State, n scene.Node) bool  { return r.process(r.tess, st, n) }

// pushModel saves the model transformation until the returned func runs.
func (r *Renderer) pushModel() func() {
	r.camera.PushModelTransformation()
	return r.camera.PopModelTransformation
}

func (r *Renderer) transformed(st *scene.State, n scene.Matrix4Transformed) bool {
	if n.Child() == nil {
		return false
	}
	defer r.pushModel()()
	r.camera.TransformModel(n.Matrix())
	return n.Child().Apply(r, st)
}

// ProcessShape renders the geometry under the shape's id and appearance.
func (r *Renderer) ProcessShape(st *scene.State, n *scene.Shape) bool {
	if !n.IsValid() {
		return false
	}
	child := st.Derive()
	child.ShapeID = n.ID
	child.Appearance = n.Appearance
	// Shapes built by NewShape already carry scene.DefaultMaterial.
	if child.Appearance == nil {
		child.Appearance = r.engine.DefaultMaterial()
	}
	return n.Geometry.Apply(r, child)
}

func (r *Renderer) ProcessGroup(st *scene.State, n *scene.Group) bool {
	ok := true
	for _, c := range n.Children {
		if c == nil || !c.Apply(r, st) {
			ok = false
		}
	}
	return ok
}

// ProcessInline renders every shape of the embedded scene, each under its
// own id and state. One failing shape does not stop the others.
func (r *Renderer) ProcessInline(st *scene.State, n *scene.Inline) bool {
	if n.Scene == nil {
		return false
	}
	if !n.IsTranslationToDefault() || !n.IsScaleToDefault() {
		defer r.pushModel()()
		r.camera.TranslateModel(n.Translation)
		r.camera.ScaleModel(n.Scale)
	}
	return n.Scene.ApplyShapes(r, st)
}

// ProcessIFS renders the geometry once per instance matrix.
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
	defer r.pushModel()()
	r.camera.TransformModel(m)
	return g.Apply(r, st)
}

// material returns the material lines and points are drawn with: the
// current one, or the engine default under a texture or a radiative appearance.
func (r *Renderer) material(st *scene.State) *scene.Material {
	if m, ok := st.Appearance.(*scene.Material); ok && m != nil {
		return m
	}
	return r.engine.DefaultMaterial()
}

func (r *Renderer) ProcessPointSet(st *scene.State, n *scene.PointSet) bool {
	r.engine.ProcessPointSet(n, r.material(st), st.ShapeID, r.camera, r.threadID)
	return true
}

func (r *Renderer) ProcessPolyline(st *scene.State, n *scene.Polyline) bool {
	r.engine.ProcessPolyline(n, r.material(st), st.ShapeID, r.camera, r.threadID)
	return true
}

func (r *Renderer) ProcessTriangleSet(st *scene.State, n *scene.TriangleSet) bool {
	r.engine.ProcessTriangleSet(n, st.Appearance, st.ShapeID, r.camera, r.threadID)
	return true
}

// Appearance.

func (r *Renderer) ProcessMaterial(st *scene.State, n *scene.Material) bool {
	st.Appearance = n
	return true
}

func (r *Renderer) ProcessTexture2D(st *scene.State, n *scene.Texture2D) bool {
	st.Appearance = n
	return true
}

func (r *Renderer) ProcessImageTexture(*scene.State, *scene.ImageTexture) bool { return true }
func (r *Renderer) ProcessTexture2DTransformation(*scene.State, *scene.Texture2DTransformation) bool {
	return true
}
func (r *Renderer) ProcessMonoSpectral(*scene.State, *scene.MonoSpectral) bool       { return true }
func (r *Renderer) ProcessMultiSpectral(*scene.State, *scene.MultiSpectral) bool     { return true }
func (r *Renderer) ProcessScreenProjected(*scene.State, *scene.ScreenProjected) bool { return true }
func (r *Renderer) ProcessText(*scene.State, *scene.Text) bool                       { return true }
func (r *Renderer) ProcessFont(*scene.State, *scene.Font) bool                       { return true }

// Curves are discretized.

func (r *Renderer) ProcessBezierCurve(st *scene.State, n *scene.BezierCurve) bool {
	return r.discretized(st, n)
}

func (r *Renderer) ProcessNurbsCurve(st *scene.State, n *scene.NurbsCurve) bool {
	return r.discretized(st, n)
}

func (r *Renderer) ProcessBezierCurve2D(st *scene.State, n *scene.BezierCurve2D) bool {
	return r.discretized(st, n)
}

func (r *Renderer) ProcessNurbsCurve2D(st *scene.State, n *scene.NurbsCurve2D) bool {
	return r.discretized(st, n)
}

func (r *Renderer) ProcessPointSet2D(st *scene.State, n *scene.PointSet2D) bool {
	return r.discretized(st, n)
}

func (r *Renderer) ProcessPolyline2D(st *scene.State, n *scene.Polyline2D) bool {
	return r.discretized(st, n)
}

func (r *Renderer) ProcessTapered(st *scene.State, n *scene.Tapered) bool {
	return r.discretized(st, n)
}

// Surfaces and solids are tesselated.

func (r *Renderer) ProcessAmapSymbol(st *scene.State, n *scene.AmapSymbol) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessAsymmetricHull(st *scene.State, n *scene.AsymmetricHull) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessBezierPatch(st *scene.State, n *scene.BezierPatch) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessNurbsPatch(st *scene.State, n *scene.NurbsPatch) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessBox(st *scene.State, n *scene.Box) bool { return r.tesselated(st, n) }
func (r *Renderer) ProcessCone(st *scene.State, n *scene.Cone) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessCylinder(st *scene.State, n *scene.Cylinder) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessDisc(st *scene.State, n *scene.Disc) bool { return r.tesselated(st, n) }

func (r *Renderer) ProcessElevationGrid(st *scene.State, n *scene.ElevationGrid) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessExtrudedHull(st *scene.State, n *scene.ExtrudedHull) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessExtrusion(st *scene.State, n *scene.Extrusion) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessFaceSet(st *scene.State, n *scene.FaceSet) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessFrustum(st *scene.State, n *scene.Frustum) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessParaboloid(st *scene.State, n *scene.Paraboloid) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessQuadSet(st *scene.State, n *scene.QuadSet) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessRevolution(st *scene.State, n *scene.Revolution) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessSphere(st *scene.State, n *scene.Sphere) bool {
	return r.tesselated(st, n)
}

func (r *Renderer) ProcessSwung(st *scene.State, n *scene.Swung) bool {
	return r.tesselated(st, n)
}

// Transformed nodes multiply the model matrix for the scope of their child.

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

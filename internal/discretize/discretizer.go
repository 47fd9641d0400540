// Package discretize turns scene-graph primitives into explicit models:
// curves become polylines, surfaces and solids become meshes.
package discretize

import (
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// Options holds the default resolutions used when a node does not set its own.
type Options struct {
	Stride int
	Slices int
	Stacks int
}

// DefaultOptions returns the default resolutions.
func DefaultOptions() Options {
	return Options{Stride: scene.DefaultStride, Slices: scene.DefaultSlices, Stacks: scene.DefaultStacks}
}

// Option configures a Discretizer.
type Option func(*Options)

// WithStride sets the default number of segments of a curve.
func WithStride(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Stride = n
		}
	}
}

// WithSlices sets the default number of angular subdivisions.
func WithSlices(n int) Option {
	return func(o *Options) {
		if n > 2 {
			o.Slices = n
		}
	}
}

// WithStacks sets the default number of vertical subdivisions.
func WithStacks(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Stacks = n
		}
	}
}

// Discretizer computes the explicit model of a node. It is an Action over
// the scene graph; Result holds the model of the last successful call and
// stays valid until the next one. A Discretizer is not safe for concurrent use.
type Discretizer struct {
	opts     Options
	texCoord bool
	result   scene.Geometry
}

var _ scene.Action = (*Discretizer)(nil)

// New returns a discretizer.
func New(opts ...Option) *Discretizer {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Discretizer{opts: o}
}

// ComputeTexCoord toggles texture coordinate generation for surfaces.
func (d *Discretizer) ComputeTexCoord(enabled bool) { d.texCoord = enabled }

// Discretize computes the explicit model of n. It reports false when n has
// no explicit model or its data is unusable.
func (d *Discretizer) Discretize(n scene.Node) bool {
	d.result = nil
	if n == nil {
		return false
	}
	if !n.Apply(d, scene.NewState()) || d.result == nil {
		d.result = nil
		return false
	}
	return true
}

// Result returns the model computed by the last successful Discretize.
func (d *Discretizer) Result() scene.Geometry { return d.result }

// Points discretizes n and returns the points of the resulting model.
func (d *Discretizer) Points(n scene.Node) ([]geom.Vec3, bool) {
	if !d.Discretize(n) {
		return nil, false
	}
	return pointsOf(d.result)
}

func (d *Discretizer) set(g scene.Geometry) bool {
	d.result = g
	return g != nil
}

func (d *Discretizer) stride(n int) int {
	if n > 0 {
		return n
	}
	return d.opts.Stride
}

func (d *Discretizer) slices(n int) int {
	if n > 2 {
		return n
	}
	return d.opts.Slices
}

func (d *Discretizer) stacks(n int) int {
	if n > 0 {
		return n
	}
	return d.opts.Stacks
}

func (d *Discretizer) BeginProcess() bool { return true }
func (d *Discretizer) EndProcess() bool   { return true }

func (d *Discretizer) ProcessShape(st *scene.State, n *scene.Shape) bool {
	if !n.IsValid() {
		return false
	}
	return n.Geometry.Apply(d, st)
}

// Nodes without an explicit model.

func (d *Discretizer) ProcessMaterial(*scene.State, *scene.Material) bool         { return false }
func (d *Discretizer) ProcessImageTexture(*scene.State, *scene.ImageTexture) bool { return false }
func (d *Discretizer) ProcessTexture2D(*scene.State, *scene.Texture2D) bool       { return false }
func (d *Discretizer) ProcessTexture2DTransformation(*scene.State, *scene.Texture2DTransformation) bool {
	return false
}
func (d *Discretizer) ProcessMonoSpectral(*scene.State, *scene.MonoSpectral) bool   { return false }
func (d *Discretizer) ProcessMultiSpectral(*scene.State, *scene.MultiSpectral) bool { return false }
func (d *Discretizer) ProcessGroup(*scene.State, *scene.Group) bool                 { return false }
func (d *Discretizer) ProcessInline(*scene.State, *scene.Inline) bool               { return false }
func (d *Discretizer) ProcessScreenProjected(*scene.State, *scene.ScreenProjected) bool {
	return false
}
func (d *Discretizer) ProcessText(*scene.State, *scene.Text) bool { return false }
func (d *Discretizer) ProcessFont(*scene.State, *scene.Font) bool { return false }

// Explicit models.

func (d *Discretizer) ProcessPolyline(_ *scene.State, n *scene.Polyline) bool {
	if len(n.Points) < 2 {
		return false
	}
	return d.set(n)
}

func (d *Discretizer) ProcessPolyline2D(_ *scene.State, n *scene.Polyline2D) bool {
	if len(n.Points) < 2 {
		return false
	}
	return d.set(&scene.Polyline{Points: lift(n.Points)})
}

func (d *Discretizer) ProcessPointSet(_ *scene.State, n *scene.PointSet) bool {
	if len(n.Points) == 0 {
		return false
	}
	return d.set(n)
}

func (d *Discretizer) ProcessPointSet2D(_ *scene.State, n *scene.PointSet2D) bool {
	if len(n.Points) == 0 {
		return false
	}
	return d.set(&scene.PointSet{Points: lift(n.Points)})
}

func (d *Discretizer) ProcessFaceSet(_ *scene.State, n *scene.FaceSet) bool {
	if len(n.Points) == 0 || len(n.Indices) == 0 {
		return false
	}
	return d.set(n)
}

func (d *Discretizer) ProcessQuadSet(_ *scene.State, n *scene.QuadSet) bool {
	if len(n.Points) == 0 || len(n.Indices) == 0 {
		return false
	}
	return d.set(n)
}

func (d *Discretizer) ProcessTriangleSet(_ *scene.State, n *scene.TriangleSet) bool {
	if len(n.Points) == 0 || len(n.Indices) == 0 {
		return false
	}
	return d.set(n)
}

func (d *Discretizer) ProcessAmapSymbol(_ *scene.State, n *scene.AmapSymbol) bool {
	if n.Mesh == nil {
		return false
	}
	return d.ProcessFaceSet(nil, n.Mesh)
}

// Transformed nodes discretize their child and move the produced points.

func (d *Discretizer) transformed(st *scene.State, n scene.Matrix4Transformed) bool {
	child := n.Child()
	if child == nil || !child.Apply(d, st) {
		return false
	}
	return d.set(transformGeometry(d.result, geom.NewMatrixTransformation(n.Matrix())))
}

func (d *Discretizer) ProcessTranslated(st *scene.State, n *scene.Translated) bool {
	return d.transformed(st, n)
}

func (d *Discretizer) ProcessScaled(st *scene.State, n *scene.Scaled) bool {
	return d.transformed(st, n)
}

func (d *Discretizer) ProcessAxisRotated(st *scene.State, n *scene.AxisRotated) bool {
	return d.transformed(st, n)
}

func (d *Discretizer) ProcessEulerRotated(st *scene.State, n *scene.EulerRotated) bool {
	return d.transformed(st, n)
}

func (d *Discretizer) ProcessOriented(st *scene.State, n *scene.Oriented) bool {
	return d.transformed(st, n)
}

func (d *Discretizer) ProcessTapered(st *scene.State, n *scene.Tapered) bool {
	if n.Primitive == nil || !n.Primitive.Apply(d, st) {
		return false
	}
	return d.set(transformGeometry(d.result, n.Taper()))
}

// ProcessIFS merges every instance of the child into one model.
func (d *Discretizer) ProcessIFS(st *scene.State, n *scene.IFS) bool {
	if n.Geometry == nil || !n.Geometry.Apply(d, st) {
		return false
	}
	base := d.result
	var parts []scene.Geometry
	for _, m := range n.Transformation().AllTransfo() {
		parts = append(parts, transformGeometry(base, geom.NewMatrixTransformation(m)))
	}
	return d.set(merge(parts))
}

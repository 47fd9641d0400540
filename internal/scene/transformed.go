package scene

import "github.com/phytogl/phytogl/internal/geom"

// Translated moves its geometry.
type Translated struct {
	Translation geom.Vec3
	Geometry    Geometry
}

func (t *Translated) Matrix() geom.Mat4              { return geom.Translation(t.Translation) }
func (t *Translated) Child() Geometry                { return t.Geometry }
func (t *Translated) Apply(a Action, st *State) bool { return a.ProcessTranslated(st, t) }
func (*Translated) geometry()                        {}

// Scaled scales its geometry around the origin.
type Scaled struct {
	Scale    geom.Vec3
	Geometry Geometry
}

func (s *Scaled) Matrix() geom.Mat4              { return geom.Scaling(s.Scale) }
func (s *Scaled) Child() Geometry                { return s.Geometry }
func (s *Scaled) Apply(a Action, st *State) bool { return a.ProcessScaled(st, s) }
func (*Scaled) geometry()                        {}

// AxisRotated rotates its geometry by Angle radians around Axis.
type AxisRotated struct {
	Axis     geom.Vec3
	Angle    float64
	Geometry Geometry
}

func (r *AxisRotated) Matrix() geom.Mat4              { return geom.AxisRotation(r.Axis, r.Angle) }
func (r *AxisRotated) Child() Geometry                { return r.Geometry }
func (r *AxisRotated) Apply(a Action, st *State) bool { return a.ProcessAxisRotated(st, r) }
func (*AxisRotated) geometry()                        {}

// EulerRotated rotates its geometry by azimuth, elevation and roll, in radians.
type EulerRotated struct {
	Azimuth   float64
	Elevation float64
	Roll      float64
	Geometry  Geometry
}

func (r *EulerRotated) Matrix() geom.Mat4 {
	return geom.EulerRotation(r.Azimuth, r.Elevation, r.Roll)
}
func (r *EulerRotated) Child() Geometry                { return r.Geometry }
func (r *EulerRotated) Apply(a Action, st *State) bool { return a.ProcessEulerRotated(st, r) }
func (*EulerRotated) geometry()                        {}

// Oriented maps the x and y axes onto Primary and Secondary.
type Oriented struct {
	Primary   geom.Vec3
	Secondary geom.Vec3
	Geometry  Geometry
}

func (o *Oriented) Matrix() geom.Mat4              { return geom.Orientation(o.Primary, o.Secondary) }
func (o *Oriented) Child() Geometry                { return o.Geometry }
func (o *Oriented) Apply(a Action, st *State) bool { return a.ProcessOriented(st, o) }
func (*Oriented) geometry()                        {}

// Tapered deforms a primitive with a taper along Z.
type Tapered struct {
	BaseRadius float64
	TopRadius  float64
	Primitive  Geometry
}

// Taper returns the deformation applied to the primitive.
func (t *Tapered) Taper() geom.Taper {
	return geom.Taper{Base: t.BaseRadius, Top: t.TopRadius}
}

func (t *Tapered) Apply(a Action, st *State) bool { return a.ProcessTapered(st, t) }
func (*Tapered) geometry()                        {}

// IFS instantiates its geometry once per composition of Depth transformations.
type IFS struct {
	Depth    int
	Transfos []geom.Mat4
	Geometry Geometry
}

// Transformation returns the iterated function system of the node.
func (f *IFS) Transformation() geom.IT {
	return geom.IT{Transfos: f.Transfos, Depth: f.Depth}
}

func (f *IFS) Apply(a Action, st *State) bool { return a.ProcessIFS(st, f) }
func (*IFS) geometry()                        {}

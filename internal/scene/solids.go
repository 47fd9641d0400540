package scene

import "github.com/phytogl/phytogl/internal/geom"

const (
	DefaultSlices = 16
	DefaultStacks = 8
)

// Sphere is centered on the origin.
type Sphere struct {
	Radius float64
	Slices int
	Stacks int
}

func (s *Sphere) Apply(a Action, st *State) bool { return a.ProcessSphere(st, s) }
func (*Sphere) geometry()                        {}

// Cone has its base on the XY plane and its apex at (0, 0, Height).
type Cone struct {
	Radius float64
	Height float64
	Solid  bool
	Slices int
}

func (c *Cone) Apply(a Action, st *State) bool { return a.ProcessCone(st, c) }
func (*Cone) geometry()                        {}

// Cylinder stands on the XY plane along Z.
type Cylinder struct {
	Radius float64
	Height float64
	Solid  bool
	Slices int
}

func (c *Cylinder) Apply(a Action, st *State) bool { return a.ProcessCylinder(st, c) }
func (*Cylinder) geometry()                        {}

// Frustum is a truncated cone; the top radius is Radius * Taper.
type Frustum struct {
	Radius float64
	Height float64
	Taper  float64
	Solid  bool
	Slices int
}

func (f *Frustum) Apply(a Action, st *State) bool { return a.ProcessFrustum(st, f) }
func (*Frustum) geometry()                        {}

// Paraboloid follows z = Height * (1 - (r/Radius)^Shape); Shape defaults to 2.
type Paraboloid struct {
	Radius float64
	Height float64
	Shape  float64
	Solid  bool
	Slices int
	Stacks int
}

func (p *Paraboloid) Apply(a Action, st *State) bool { return a.ProcessParaboloid(st, p) }
func (*Paraboloid) geometry()                        {}

// Box is centered on the origin; Size holds the half extents.
type Box struct {
	Size geom.Vec3
}

func (b *Box) Apply(a Action, st *State) bool { return a.ProcessBox(st, b) }
func (*Box) geometry()                        {}

// Disc lies in the XY plane.
type Disc struct {
	Radius float64
	Slices int
}

func (d *Disc) Apply(a Action, st *State) bool { return a.ProcessDisc(st, d) }
func (*Disc) geometry()                        {}

// AsymmetricHull is a crown envelope built from four radii, each at its own
// height, joined to a bottom and a top point by curves whose roundness is
// controlled by BottomShape and TopShape.
type AsymmetricHull struct {
	NegXRadius, PosXRadius float64
	NegYRadius, PosYRadius float64
	NegXHeight, PosXHeight float64
	NegYHeight, PosYHeight float64
	Bottom, Top            geom.Vec3
	BottomShape, TopShape  float64
	Slices, Stacks         int
}

func (h *AsymmetricHull) Apply(a Action, st *State) bool { return a.ProcessAsymmetricHull(st, h) }
func (*AsymmetricHull) geometry()                        {}

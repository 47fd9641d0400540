package scene

import (
	"fmt"

	"github.com/phytogl/phytogl/internal/geom"
)

// Color3 is an 8-bit RGB color.
type Color3 [3]uint8

// Color4 is an 8-bit RGBA color; A is opacity.
type Color4 [4]uint8

var (
	Black = Color3{0, 0, 0}
	White = Color3{255, 255, 255}
	Red   = Color3{255, 0, 0}
)

// Hex returns the color as #rrggbb.
func (c Color3) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// Scale multiplies every channel by k, clamped to 255.
func (c Color3) Scale(k float64) Color3 {
	var out Color3
	for i, v := range c {
		out[i] = clampChannel(float64(v) * k)
	}
	return out
}

// RGB drops the alpha channel.
func (c Color4) RGB() Color3 {
	return Color3{c[0], c[1], c[2]}
}

func clampChannel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}

// Material is a phong-like appearance.
type Material struct {
	Ambient      Color3
	Diffuse      float64
	Specular     Color3
	Emission     Color3
	Shininess    float64
	Transparency float64
}

// NewMaterial returns a material with the usual defaults and the given ambient color.
func NewMaterial(ambient Color3) *Material {
	return &Material{
		Ambient:   ambient,
		Diffuse:   2,
		Specular:  Color3{40, 40, 40},
		Emission:  Black,
		Shininess: 1,
	}
}

// DefaultMaterial is the shared appearance of shapes that have none.
var DefaultMaterial = NewMaterial(Color3{80, 80, 80})

// DiffuseColor returns the ambient color scaled by the diffuse factor.
func (m *Material) DiffuseColor() Color3 {
	return m.Ambient.Scale(m.Diffuse)
}

func (m *Material) Apply(a Action, st *State) bool { return a.ProcessMaterial(st, m) }
func (m *Material) IsTexture() bool                { return false }
func (*Material) appearance()                      {}

// ImageTexture references an image file used by textures.
type ImageTexture struct {
	Filename   string
	RepeatS    bool
	RepeatT    bool
	Mipmapping bool
}

func (t *ImageTexture) Apply(a Action, st *State) bool { return a.ProcessImageTexture(st, t) }

// Texture2DTransformation maps texture coordinates before lookup.
type Texture2DTransformation struct {
	Scale          geom.Vec2
	Translation    geom.Vec2
	RotationCenter geom.Vec2
	RotationAngle  float64
}

// Transform applies scale, rotation around RotationCenter and translation to uv.
func (t *Texture2DTransformation) Transform(uv geom.Vec2) geom.Vec2 {
	if t == nil {
		return uv
	}
	scale := t.Scale
	if scale == (geom.Vec2{}) {
		scale = geom.Vec2{1, 1}
	}
	p := geom.Vec2{uv[0] * scale[0], uv[1] * scale[1]}
	if t.RotationAngle != 0 {
		p = p.Sub(t.RotationCenter)
		r := geom.Rotation2D(t.RotationAngle)
		p = r.Mul2x1(p).Add(t.RotationCenter)
	}
	return p.Add(t.Translation)
}

func (t *Texture2DTransformation) Apply(a Action, st *State) bool {
	return a.ProcessTexture2DTransformation(st, t)
}

// Texture2D is an image appearance. BaseColor is used where no image is available.
type Texture2D struct {
	Image          *ImageTexture
	Transformation *Texture2DTransformation
	BaseColor      Color4
}

func (t *Texture2D) Apply(a Action, st *State) bool { return a.ProcessTexture2D(st, t) }
func (t *Texture2D) IsTexture() bool                { return true }
func (*Texture2D) appearance()                      {}

// MonoSpectral is a radiative appearance with single-band optical properties.
type MonoSpectral struct {
	Reflectance   float64
	Transmittance float64
}

func (m *MonoSpectral) Apply(a Action, st *State) bool { return a.ProcessMonoSpectral(st, m) }
func (m *MonoSpectral) IsTexture() bool                { return false }
func (*MonoSpectral) appearance()                      {}

// MultiSpectral is a radiative appearance with per-band optical properties.
type MultiSpectral struct {
	Reflectance   []float64
	Transmittance []float64
	Filter        geom.Vec3
}

func (m *MultiSpectral) Apply(a Action, st *State) bool { return a.ProcessMultiSpectral(st, m) }
func (m *MultiSpectral) IsTexture() bool                { return false }
func (*MultiSpectral) appearance()                      {}

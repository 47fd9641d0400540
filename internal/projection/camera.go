// Package projection renders scenes into per-pixel depth, id and color
// buffers through a camera, the basis of visibility and projected-area
// measures.
package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/phytogl/phytogl/internal/geom"
)

// Camera owns the model transformation stack of a pass and projects points
// to the screen.
type Camera interface {
	PushModelTransformation()
	PopModelTransformation()
	TransformModel(m geom.Mat4)
	TranslateModel(v geom.Vec3)
	ScaleModel(v geom.Vec3)
	ModelMatrix() geom.Mat4
	// Project maps a model-space point to (x, y) pixel coordinates and a
	// depth in [0, 1]. It reports false for points outside the view volume.
	Project(p geom.Vec3) (geom.Vec3, bool)
}

// ProjectionCamera is a Camera with a view and a projection matrix. It is
// not safe for concurrent use; give each worker a Clone.
type ProjectionCamera struct {
	model       *geom.MatrixStack
	view        geom.Mat4
	projection  geom.Mat4
	width       int
	height      int
	perspective bool
	pixelArea   float64
}

var _ Camera = (*ProjectionCamera)(nil)

// NewOrthographicCamera returns a camera projecting the box [left, right] x
// [bottom, top] x [-near, -far] of view space onto width x height pixels.
func NewOrthographicCamera(left, right, bottom, top, near, far float64, width, height int) *ProjectionCamera {
	return &ProjectionCamera{
		model:      geom.NewMatrixStack(),
		view:       geom.Identity(),
		projection: mgl64.Ortho(left, right, bottom, top, near, far),
		width:      width,
		height:     height,
		pixelArea:  (right - left) / float64(width) * (top - bottom) / float64(height),
	}
}

// NewPerspectiveCamera returns a camera with a vertical field of view of fovy radians.
func NewPerspectiveCamera(fovy, near, far float64, width, height int) *ProjectionCamera {
	return &ProjectionCamera{
		model:       geom.NewMatrixStack(),
		view:        geom.Identity(),
		projection:  mgl64.Perspective(fovy, float64(width)/float64(height), near, far),
		width:       width,
		height:      height,
		perspective: true,
	}
}

// FitOrthographic returns an orthographic camera looking at b along -Y
// (x to the right, z up), framed with a small margin and keeping the aspect
// ratio of the image.
func FitOrthographic(b geom.Box, width, height int) *ProjectionCamera {
	if b.IsEmpty() {
		b = geom.NewBox(geom.Vec3{-1, -1, -1}, geom.Vec3{1, 1, 1})
	}
	c, size := b.Center(), b.Size()
	halfW, halfH := size[0]/2, size[2]/2
	aspect := float64(width) / float64(height)
	if halfW < halfH*aspect {
		halfW = halfH * aspect
	} else {
		halfH = halfW / aspect
	}
	halfW, halfH = math.Max(halfW*1.05, geom.Epsilon), math.Max(halfH*1.05, geom.Epsilon)
	depth := size.Len() + 1
	cam := NewOrthographicCamera(-halfW, halfW, -halfH, halfH, 0, 2*depth, width, height)
	cam.LookAt(c.Sub(geom.Vec3{0, depth, 0}), c, geom.Vec3{0, 0, 1})
	return cam
}

// LookAt places the camera at eye, looking at center.
func (c *ProjectionCamera) LookAt(eye, center, up geom.Vec3) {
	c.view = mgl64.LookAtV(eye, center, up)
}

func (c *ProjectionCamera) PushModelTransformation()   { c.model.Push() }
func (c *ProjectionCamera) PopModelTransformation()    { c.model.Pop() }
func (c *ProjectionCamera) TransformModel(m geom.Mat4) { c.model.Mult(m) }
func (c *ProjectionCamera) TranslateModel(v geom.Vec3) { c.model.Mult(geom.Translation(v)) }
func (c *ProjectionCamera) ScaleModel(v geom.Vec3)     { c.model.Mult(geom.Scaling(v)) }
func (c *ProjectionCamera) ModelMatrix() geom.Mat4     { return c.model.Top() }

// Depth returns the number of pushed model transformations.
func (c *ProjectionCamera) Depth() int { return c.model.Depth() }

func (c *ProjectionCamera) Project(p geom.Vec3) (geom.Vec3, bool) {
	clip := c.projection.Mul4(c.view).Mul4(c.model.Top()).Mul4x1(p.Vec4(1))
	if clip[3] <= geom.Epsilon {
		return geom.Vec3{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	if ndc[2] < -1 || ndc[2] > 1 {
		return geom.Vec3{}, false
	}
	return geom.Vec3{
		(ndc[0] + 1) / 2 * float64(c.width),
		(1 - ndc[1]) / 2 * float64(c.height),
		(ndc[2] + 1) / 2,
	}, true
}

// Size returns the image size in pixels.
func (c *ProjectionCamera) Size() (width, height int) { return c.width, c.height }

// PixelArea returns the world area covered by one pixel of an orthographic
// camera, and 0 for a perspective one.
func (c *ProjectionCamera) PixelArea() float64 {
	if c.perspective {
		return 0
	}
	return c.pixelArea
}

// Clone returns an independent copy with the same matrices.
func (c *ProjectionCamera) Clone() *ProjectionCamera {
	cp := *c
	cp.model = c.model.Clone()
	return &cp
}

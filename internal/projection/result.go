package projection

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/phytogl/phytogl/internal/scene"
)

// Result is the merged output of a projection.
type Result struct {
	*buffer
	// PixelArea is the world area of one pixel, 0 for perspective cameras.
	PixelArea float64
}

// Size returns the image size in pixels.
func (r *Result) Size() (width, height int) { return r.width, r.height }

// IDAt returns the id of the shape visible at pixel (x, y), or NOID.
func (r *Result) IDAt(x, y int) uint32 {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return scene.NOID
	}
	return r.ids[y*r.width+x]
}

// DepthAt returns the depth at pixel (x, y), +Inf where nothing was drawn.
func (r *Result) DepthAt(x, y int) float64 {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return math.Inf(1)
	}
	return r.depth[y*r.width+x]
}

// PixelCounts returns the number of visible pixels per shape id.
func (r *Result) PixelCounts() map[uint32]int {
	counts := make(map[uint32]int)
	for i, id := range r.ids {
		if !math.IsInf(r.depth[i], 1) {
			counts[id]++
		}
	}
	return counts
}

// VisibleShapes returns the sorted ids of the shapes with at least one visible pixel.
func (r *Result) VisibleShapes() []uint32 {
	counts := r.PixelCounts()
	ids := make([]uint32, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ProjectedArea returns the visible area of shape id: in world units for
// orthographic cameras, in pixels otherwise.
func (r *Result) ProjectedArea(id uint32) float64 {
	n := 0
	for i, v := range r.ids {
		if v == id && !math.IsInf(r.depth[i], 1) {
			n++
		}
	}
	return r.area(n)
}

// TotalArea returns the visible area of the whole scene.
func (r *Result) TotalArea() float64 {
	n := 0
	for _, z := range r.depth {
		if !math.IsInf(z, 1) {
			n++
		}
	}
	return r.area(n)
}

func (r *Result) area(pixels int) float64 {
	if r.PixelArea == 0 {
		return float64(pixels)
	}
	return float64(pixels) * r.PixelArea
}

// Image returns the color buffer over a white background.
func (r *Result) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for i, c := range r.colors {
		if math.IsInf(r.depth[i], 1) {
			c = color.RGBA{255, 255, 255, 255}
		}
		img.SetRGBA(i%r.width, i/r.width, c)
	}
	return img
}

// DepthImage returns the depth buffer as a gray image, near points dark.
func (r *Result) DepthImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.width, r.height))
	for i, z := range r.depth {
		v := uint8(255)
		if !math.IsInf(z, 1) {
			v = uint8(math.Min(math.Max(z, 0), 1) * 254)
		}
		img.SetGray(i%r.width, i/r.width, color.Gray{Y: v})
	}
	return img
}

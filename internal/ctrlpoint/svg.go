package ctrlpoint

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/phytogl/phytogl/internal/geom"
)

// View selects the axis an SVG drawing looks along.
type View int

const (
	ViewFront View = iota // along -Y: x right, z up
	ViewSide              // along -X: y right, z up
	ViewTop               // along -Z: x right, y up
)

// ParseView maps "front", "side" and "top" to a View.
func ParseView(s string) (View, error) {
	switch strings.ToLower(s) {
	case "", "front":
		return ViewFront, nil
	case "side":
		return ViewSide, nil
	case "top":
		return ViewTop, nil
	}
	return ViewFront, fmt.Errorf("unknown view %q", s)
}

func (v View) project(p geom.Vec3) (float64, float64) {
	switch v {
	case ViewSide:
		return p[1], p[2]
	case ViewTop:
		return p[0], p[1]
	default:
		return p[0], p[2]
	}
}

// Plane maps world points to 2D drawing coordinates of the view.
func (v View) Plane(points []geom.Vec3) [][2]float64 {
	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i][0], out[i][1] = v.project(p)
	}
	return out
}

// SVGPainter records control polygons and writes them as an orthographic SVG.
type SVGPainter struct {
	*Recorder
	View        View
	StrokeWidth float64
}

// NewSVGPainter returns an empty SVG painter.
func NewSVGPainter(view View) *SVGPainter {
	return &SVGPainter{Recorder: NewRecorder(), View: view}
}

// Render writes the drawing, framed on the recorded strips.
func (p *SVGPainter) Render(out io.Writer) error {
	var bounds geom.Box
	for _, s := range p.Strips() {
		for _, pt := range s.Points {
			x, y := p.View.project(pt)
			bounds = bounds.Extend(geom.Vec3{x, y, 0})
		}
	}
	if bounds.IsEmpty() {
		bounds = geom.NewBox(geom.Vec3{-1, -1, 0}, geom.Vec3{1, 1, 0})
	}
	size := bounds.Size()
	margin := 0.05 * max(size[0], size[1], geom.Epsilon)
	width := p.StrokeWidth
	if width <= 0 {
		width = margin / 5
	}

	canvas := svg.New(out)
	canvas.Startpercent(100, 100, fmt.Sprintf(`viewBox="%f %f %f %f"`,
		bounds.Min[0]-margin, -bounds.Max[1]-margin, size[0]+2*margin, size[1]+2*margin))
	canvas.Gtransform("scale(1,-1)")
	for _, s := range p.Strips() {
		if len(s.Points) == 0 {
			continue
		}
		canvas.Path(p.path(s.Points),
			fmt.Sprintf(`stroke="%s"`, s.Color),
			fmt.Sprintf(`stroke-width="%f"`, width),
			`fill="none"`)
	}
	canvas.Gend()
	canvas.End()
	return nil
}

func (p *SVGPainter) path(points []geom.Vec3) string {
	var b strings.Builder
	for i, pt := range points {
		x, y := p.View.project(pt)
		op := "L"
		if i == 0 {
			op = "M"
		}
		fmt.Fprintf(&b, "%s %f %f ", op, x, y)
	}
	return strings.TrimSpace(b.String())
}

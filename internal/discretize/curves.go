package discretize

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// bezierPoint evaluates a rational Bezier curve at t in [0, 1]. The
// numerator is the curve of the weighted points, the denominator the curve
// of the weights.
func bezierPoint(ctrl []geom.Vec4, t float64) geom.Vec3 {
	num := make([]geom.Vec3, len(ctrl))
	den := make([]geom.Vec3, len(ctrl))
	for i, p := range ctrl {
		num[i] = geom.Homogenize(p)
		den[i] = geom.Vec3{p[3], 0, 0}
	}
	return geom.Dehomogenize(mgl64.BezierCurve3D(t, num), mgl64.BezierCurve3D(t, den)[0])
}

func bezierPolyline(ctrl []geom.Vec4, stride int) []geom.Vec3 {
	out := make([]geom.Vec3, stride+1)
	for i := range out {
		out[i] = bezierPoint(ctrl, float64(i)/float64(stride))
	}
	return out
}

// findSpan returns the knot span holding u for n+1 control points.
func findSpan(n, degree int, u float64, knots []float64) int {
	if u >= knots[n+1] {
		return n
	}
	if u <= knots[degree] {
		return degree
	}
	low, high := degree, n+1
	mid := (low + high) / 2
	for u < knots[mid] || u >= knots[mid+1] {
		if u < knots[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// basisFuns returns the degree+1 non vanishing B-spline basis functions at u.
func basisFuns(span int, u float64, degree int, knots []float64) []float64 {
	n := make([]float64, degree+1)
	left := make([]float64, degree+1)
	right := make([]float64, degree+1)
	n[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			den := right[r+1] + left[j-r]
			tmp := 0.0
			if den != 0 {
				tmp = n[r] / den
			}
			n[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		n[j] = saved
	}
	return n
}

func nurbsPoint(ctrl []geom.Vec4, degree int, knots []float64, u float64) geom.Vec3 {
	span := findSpan(len(ctrl)-1, degree, u, knots)
	basis := basisFuns(span, u, degree, knots)
	var num geom.Vec3
	var w float64
	for k, b := range basis {
		p := ctrl[span-degree+k]
		num = num.Add(geom.Homogenize(p).Mul(b))
		w += p[3] * b
	}
	return geom.Dehomogenize(num, w)
}

func nurbsPolyline(ctrl []geom.Vec4, degree int, knots []float64, stride int) []geom.Vec3 {
	first, last := knots[degree], knots[len(ctrl)]
	out := make([]geom.Vec3, stride+1)
	for i := range out {
		out[i] = nurbsPoint(ctrl, degree, knots, first+(last-first)*float64(i)/float64(stride))
	}
	return out
}

func planar(points []geom.Vec3) []geom.Vec4 {
	out := make([]geom.Vec4, len(points))
	for i, p := range points {
		out[i] = geom.Vec4{p[0], p[1], 0, p[2]}
	}
	return out
}

func validNurbs(n, degree int, knots []float64) bool {
	return degree >= 1 && n > degree && len(knots) == n+degree+1
}

func (d *Discretizer) ProcessBezierCurve(_ *scene.State, n *scene.BezierCurve) bool {
	if len(n.CtrlPoints) < 2 {
		return false
	}
	return d.set(&scene.Polyline{Points: bezierPolyline(n.CtrlPoints, d.stride(n.Stride))})
}

func (d *Discretizer) ProcessBezierCurve2D(_ *scene.State, n *scene.BezierCurve2D) bool {
	if len(n.CtrlPoints) < 2 {
		return false
	}
	return d.set(&scene.Polyline{Points: bezierPolyline(planar(n.CtrlPoints), d.stride(n.Stride))})
}

func (d *Discretizer) ProcessNurbsCurve(_ *scene.State, n *scene.NurbsCurve) bool {
	if !validNurbs(len(n.CtrlPoints), n.Degree, n.Knots) {
		return false
	}
	return d.set(&scene.Polyline{Points: nurbsPolyline(n.CtrlPoints, n.Degree, n.Knots, d.stride(n.Stride))})
}

func (d *Discretizer) ProcessNurbsCurve2D(_ *scene.State, n *scene.NurbsCurve2D) bool {
	if !validNurbs(len(n.CtrlPoints), n.Degree, n.Knots) {
		return false
	}
	return d.set(&scene.Polyline{Points: nurbsPolyline(planar(n.CtrlPoints), n.Degree, n.Knots, d.stride(n.Stride))})
}

// curve2D discretizes a planar curve and returns its points in the XY plane.
func (d *Discretizer) curve2D(c scene.Curve2D) ([]geom.Vec3, bool) {
	if c == nil {
		return nil, false
	}
	pts, ok := d.Points(c)
	if !ok || len(pts) < 2 {
		return nil, false
	}
	out := make([]geom.Vec3, len(pts))
	copy(out, pts)
	return out, true
}

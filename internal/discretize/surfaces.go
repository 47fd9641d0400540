package discretize

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// patchPoint evaluates a rational Bezier patch: each row is evaluated at v,
// then the resulting column at u.
func patchPoint(m *geom.Point4Matrix, u, v float64) geom.Vec3 {
	num := make([]geom.Vec3, m.Rows())
	den := make([]geom.Vec3, m.Rows())
	rowNum := make([]geom.Vec3, m.Cols())
	rowDen := make([]geom.Vec3, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			p := m.At(i, j)
			rowNum[j] = geom.Homogenize(p)
			rowDen[j] = geom.Vec3{p[3], 0, 0}
		}
		num[i] = mgl64.BezierCurve3D(v, rowNum)
		den[i] = mgl64.BezierCurve3D(v, rowDen)
	}
	return geom.Dehomogenize(mgl64.BezierCurve3D(u, num), mgl64.BezierCurve3D(u, den)[0])
}

func nurbsPatchPoint(n *scene.NurbsPatch, u, v float64) geom.Vec3 {
	m := n.CtrlPoints
	uspan := findSpan(m.Rows()-1, n.UDegree, u, n.UKnots)
	vspan := findSpan(m.Cols()-1, n.VDegree, v, n.VKnots)
	nu := basisFuns(uspan, u, n.UDegree, n.UKnots)
	nv := basisFuns(vspan, v, n.VDegree, n.VKnots)
	var num geom.Vec3
	var w float64
	for k, bu := range nu {
		for l, bv := range nv {
			p := m.At(uspan-n.UDegree+k, vspan-n.VDegree+l)
			b := bu * bv
			num = num.Add(geom.Homogenize(p).Mul(b))
			w += p[3] * b
		}
	}
	return geom.Dehomogenize(num, w)
}

func (d *Discretizer) ProcessBezierPatch(_ *scene.State, n *scene.BezierPatch) bool {
	m := n.CtrlPoints
	if m == nil || m.Rows() < 2 || m.Cols() < 2 {
		return false
	}
	us, vs := d.stride(n.UStride), d.stride(n.VStride)
	return d.set(grid(us+1, vs+1, d.texCoord, func(i, j int) geom.Vec3 {
		return patchPoint(m, float64(i)/float64(us), float64(j)/float64(vs))
	}))
}

func (d *Discretizer) ProcessNurbsPatch(_ *scene.State, n *scene.NurbsPatch) bool {
	m := n.CtrlPoints
	if m == nil || !validNurbs(m.Rows(), n.UDegree, n.UKnots) || !validNurbs(m.Cols(), n.VDegree, n.VKnots) {
		return false
	}
	us, vs := d.stride(n.UStride), d.stride(n.VStride)
	u0, u1 := n.UKnots[n.UDegree], n.UKnots[m.Rows()]
	v0, v1 := n.VKnots[n.VDegree], n.VKnots[m.Cols()]
	return d.set(grid(us+1, vs+1, d.texCoord, func(i, j int) geom.Vec3 {
		u := u0 + (u1-u0)*float64(i)/float64(us)
		v := v0 + (v1-v0)*float64(j)/float64(vs)
		return nurbsPatchPoint(n, u, v)
	}))
}

func (d *Discretizer) ProcessElevationGrid(_ *scene.State, n *scene.ElevationGrid) bool {
	rows := len(n.Heights)
	if rows < 2 {
		return false
	}
	cols := len(n.Heights[0])
	for _, row := range n.Heights {
		if len(row) != cols {
			return false
		}
	}
	if cols < 2 {
		return false
	}
	return d.set(grid(rows, cols, d.texCoord, func(i, j int) geom.Vec3 {
		return geom.Vec3{float64(j) * n.XSpacing, float64(i) * n.YSpacing, n.Heights[i][j]}
	}))
}

// revolve turns a profile of (radius, height) points around Z.
func revolve(profile []geom.Vec3, slices int, texCoord bool) *scene.QuadSet {
	return grid(len(profile), slices+1, texCoord, func(i, j int) geom.Vec3 {
		a := 2 * math.Pi * float64(j%slices) / float64(slices)
		r, h := profile[i][0], profile[i][1]
		return geom.Vec3{r * math.Cos(a), r * math.Sin(a), h}
	})
}

func (d *Discretizer) ProcessRevolution(_ *scene.State, n *scene.Revolution) bool {
	profile, ok := d.curve2D(n.Profile)
	if !ok {
		return false
	}
	return d.set(revolve(profile, d.slices(n.Slices), d.texCoord))
}

// ProcessSwung revolves its profiles, blending linearly between the two
// profiles whose angles bracket the current one. All profiles must
// discretize to the same number of points.
func (d *Discretizer) ProcessSwung(_ *scene.State, n *scene.Swung) bool {
	if len(n.Profiles) == 0 || len(n.Profiles) != len(n.Angles) {
		return false
	}
	type section struct {
		angle  float64
		points []geom.Vec3
	}
	sections := make([]section, len(n.Profiles))
	for i, c := range n.Profiles {
		pts, ok := d.curve2D(c)
		if !ok || (i > 0 && len(pts) != len(sections[0].points)) {
			return false
		}
		sections[i] = section{angle: normAngle(n.Angles[i]), points: pts}
	}
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].angle < sections[j].angle })

	profileAt := func(a float64) []geom.Vec3 {
		if len(sections) == 1 {
			return sections[0].points
		}
		k := sort.Search(len(sections), func(i int) bool { return sections[i].angle > a })
		lo, hi := sections[(k-1+len(sections))%len(sections)], sections[k%len(sections)]
		span := normAngle(hi.angle - lo.angle)
		t := 0.0
		if span > geom.Epsilon {
			t = normAngle(a-lo.angle) / span
		}
		out := make([]geom.Vec3, len(lo.points))
		for i := range out {
			out[i] = lo.points[i].Mul(1 - t).Add(hi.points[i].Mul(t))
		}
		return out
	}

	slices := d.slices(n.Slices)
	profiles := make([][]geom.Vec3, slices)
	for j := range profiles {
		profiles[j] = profileAt(2 * math.Pi * float64(j) / float64(slices))
	}
	rows := len(sections[0].points)
	return d.set(grid(rows, slices+1, d.texCoord, func(i, j int) geom.Vec3 {
		a := 2 * math.Pi * float64(j%slices) / float64(slices)
		p := profiles[j%slices][i]
		return geom.Vec3{p[0] * math.Cos(a), p[0] * math.Sin(a), p[1]}
	}))
}

func normAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// ProcessExtrusion sweeps the cross-section along the axis with a frame
// transported from point to point so that it does not twist.
func (d *Discretizer) ProcessExtrusion(_ *scene.State, n *scene.Extrusion) bool {
	if n.Axis == nil {
		return false
	}
	axis, ok := d.Points(n.Axis)
	if !ok || len(axis) < 2 {
		return false
	}
	axis = append([]geom.Vec3(nil), axis...)
	section, ok := d.curve2D(n.CrossSection)
	if !ok {
		return false
	}

	frames := sweepFrames(axis)
	last := float64(len(axis) - 1)
	qs := grid(len(axis), len(section), d.texCoord, func(i, j int) geom.Vec3 {
		t := float64(i) / last
		s := interpolate2(n.Scale, t, geom.Vec2{1, 1})
		angle := interpolate1(n.Orientation, t)
		c := section[j]
		x := s[0] * (c[0]*math.Cos(angle) - c[1]*math.Sin(angle))
		y := s[1] * (c[0]*math.Sin(angle) + c[1]*math.Cos(angle))
		f := frames[i]
		return axis[i].Add(f.normal.Mul(x)).Add(f.binormal.Mul(y))
	})
	if !n.Solid {
		return d.set(qs)
	}
	fs := faceSet(qs)
	cols := len(section)
	fs.Indices = append(fs.Indices, ring(0, cols, cols, true), ring(len(axis)-1, cols, cols, false))
	fs.Solid = true
	return d.set(fs)
}

type frame struct {
	normal, binormal geom.Vec3
}

func sweepFrames(axis []geom.Vec3) []frame {
	tangents := make([]geom.Vec3, len(axis))
	for i := range axis {
		var t geom.Vec3
		switch {
		case i == 0:
			t = axis[1].Sub(axis[0])
		case i == len(axis)-1:
			t = axis[i].Sub(axis[i-1])
		default:
			t = axis[i+1].Sub(axis[i-1])
		}
		if t.Len() < geom.Epsilon {
			t = geom.Vec3{0, 0, 1}
		}
		tangents[i] = t.Normalize()
	}
	normal := anyPerpendicular(tangents[0])
	frames := make([]frame, len(axis))
	for i, t := range tangents {
		normal = normal.Sub(t.Mul(normal.Dot(t)))
		if normal.Len() < geom.Epsilon {
			normal = anyPerpendicular(t)
		}
		normal = normal.Normalize()
		frames[i] = frame{normal: normal, binormal: t.Cross(normal)}
	}
	return frames
}

func anyPerpendicular(t geom.Vec3) geom.Vec3 {
	ref := geom.Vec3{1, 0, 0}
	if math.Abs(t[0]) > 0.9 {
		ref = geom.Vec3{0, 1, 0}
	}
	return t.Cross(ref).Normalize()
}

func interpolate1(values []float64, t float64) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	x := t * float64(len(values)-1)
	k := min(int(x), len(values)-2)
	f := x - float64(k)
	return values[k]*(1-f) + values[k+1]*f
}

func interpolate2(values []geom.Vec2, t float64, def geom.Vec2) geom.Vec2 {
	switch len(values) {
	case 0:
		return def
	case 1:
		return values[0]
	}
	x := t * float64(len(values)-1)
	k := min(int(x), len(values)-2)
	f := x - float64(k)
	return values[k].Mul(1 - f).Add(values[k+1].Mul(f))
}

// ProcessExtrudedHull stacks copies of the horizontal section, one per
// point of the vertical silhouette on the side of positive x, each scaled
// so that its width matches the silhouette at that height.
func (d *Discretizer) ProcessExtrudedHull(_ *scene.State, n *scene.ExtrudedHull) bool {
	vertical, ok := d.curve2D(n.Vertical)
	if !ok {
		return false
	}
	horizontal, ok := d.curve2D(n.Horizontal)
	if !ok {
		return false
	}

	vbox, hbox := geom.Box{}, geom.Box{}
	for _, p := range vertical {
		vbox = vbox.Extend(p)
	}
	for _, p := range horizontal {
		hbox = hbox.Extend(p)
	}
	axis := vbox.Center()[0]
	hc := hbox.Center()
	halfWidth := hbox.Size()[0] / 2
	if halfWidth < geom.Epsilon {
		return false
	}

	var side []geom.Vec3
	for _, p := range vertical {
		if p[0] >= axis-geom.Epsilon {
			side = append(side, p)
		}
	}
	if len(side) < 2 {
		return false
	}
	sort.SliceStable(side, func(i, j int) bool { return side[i][1] < side[j][1] })

	return d.set(grid(len(side), len(horizontal), d.texCoord, func(i, j int) geom.Vec3 {
		s := (side[i][0] - axis) / halfWidth
		h := horizontal[j]
		return geom.Vec3{axis + (h[0]-hc[0])*s, hc[1] + (h[1]-hc[1])*s, side[i][1]}
	}))
}

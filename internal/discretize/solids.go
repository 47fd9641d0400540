package discretize

import (
	"math"

	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

func (d *Discretizer) ProcessSphere(_ *scene.State, n *scene.Sphere) bool {
	if n.Radius <= 0 {
		return false
	}
	slices, stacks := d.slices(n.Slices), d.stacks(n.Stacks)
	return d.set(grid(stacks+1, slices+1, d.texCoord, func(i, j int) geom.Vec3 {
		lat := -math.Pi/2 + math.Pi*float64(i)/float64(stacks)
		lon := 2 * math.Pi * float64(j%slices) / float64(slices)
		return geom.Vec3{
			n.Radius * math.Cos(lat) * math.Cos(lon),
			n.Radius * math.Cos(lat) * math.Sin(lon),
			n.Radius * math.Sin(lat),
		}
	}))
}

// frustum builds the side of a truncated cone, plus its caps when solid.
func (d *Discretizer) frustum(radius, height, taper float64, solid bool, slices int) scene.Geometry {
	slices = d.slices(slices)
	qs := grid(2, slices+1, d.texCoord, func(i, j int) geom.Vec3 {
		a := 2 * math.Pi * float64(j%slices) / float64(slices)
		r := radius
		if i == 1 {
			r *= taper
		}
		return geom.Vec3{r * math.Cos(a), r * math.Sin(a), float64(i) * height}
	})
	if !solid {
		return qs
	}
	fs := faceSet(qs)
	fs.Solid = true
	fs.Indices = append(fs.Indices, ring(0, slices+1, slices, true))
	if taper > geom.Epsilon {
		fs.Indices = append(fs.Indices, ring(1, slices+1, slices, false))
	}
	return fs
}

func (d *Discretizer) ProcessCylinder(_ *scene.State, n *scene.Cylinder) bool {
	if n.Radius <= 0 || n.Height <= 0 {
		return false
	}
	return d.set(d.frustum(n.Radius, n.Height, 1, n.Solid, n.Slices))
}

func (d *Discretizer) ProcessCone(_ *scene.State, n *scene.Cone) bool {
	if n.Radius <= 0 || n.Height <= 0 {
		return false
	}
	return d.set(d.frustum(n.Radius, n.Height, 0, n.Solid, n.Slices))
}

func (d *Discretizer) ProcessFrustum(_ *scene.State, n *scene.Frustum) bool {
	if n.Radius <= 0 || n.Height <= 0 || n.Taper < 0 {
		return false
	}
	return d.set(d.frustum(n.Radius, n.Height, n.Taper, n.Solid, n.Slices))
}

// ProcessParaboloid follows z = Height * (1 - (r/Radius)^Shape).
func (d *Discretizer) ProcessParaboloid(_ *scene.State, n *scene.Paraboloid) bool {
	if n.Radius <= 0 || n.Height <= 0 {
		return false
	}
	shape := n.Shape
	if shape <= 0 {
		shape = 2
	}
	slices, stacks := d.slices(n.Slices), d.stacks(n.Stacks)
	qs := grid(stacks+1, slices+1, d.texCoord, func(i, j int) geom.Vec3 {
		z := n.Height * float64(i) / float64(stacks)
		r := n.Radius * math.Pow(1-z/n.Height, 1/shape)
		a := 2 * math.Pi * float64(j%slices) / float64(slices)
		return geom.Vec3{r * math.Cos(a), r * math.Sin(a), z}
	})
	if !n.Solid {
		return d.set(qs)
	}
	fs := faceSet(qs)
	fs.Solid = true
	fs.Indices = append(fs.Indices, ring(0, slices+1, slices, true))
	return d.set(fs)
}

func (d *Discretizer) ProcessDisc(_ *scene.State, n *scene.Disc) bool {
	if n.Radius <= 0 {
		return false
	}
	slices := d.slices(n.Slices)
	fs := &scene.FaceSet{Points: []geom.Vec3{{}}}
	if d.texCoord {
		fs.TexCoords = []geom.Vec2{{0.5, 0.5}}
	}
	for j := 0; j < slices; j++ {
		a := 2 * math.Pi * float64(j) / float64(slices)
		fs.Points = append(fs.Points, geom.Vec3{n.Radius * math.Cos(a), n.Radius * math.Sin(a), 0})
		if d.texCoord {
			fs.TexCoords = append(fs.TexCoords, geom.Vec2{0.5 + math.Cos(a)/2, 0.5 + math.Sin(a)/2})
		}
		fs.Indices = append(fs.Indices, []int{0, j + 1, (j+1)%slices + 1})
	}
	return d.set(fs)
}

func (d *Discretizer) ProcessBox(_ *scene.State, n *scene.Box) bool {
	s := n.Size
	if s[0] < 0 || s[1] < 0 || s[2] < 0 || s.Len() < geom.Epsilon {
		return false
	}
	qs := &scene.QuadSet{Solid: true}
	for k := 0; k < 8; k++ {
		p := geom.Vec3{-s[0], -s[1], -s[2]}
		if k&1 != 0 {
			p[0] = s[0]
		}
		if k&2 != 0 {
			p[1] = s[1]
		}
		if k&4 != 0 {
			p[2] = s[2]
		}
		qs.Points = append(qs.Points, p)
	}
	qs.Indices = [][4]int{
		{0, 2, 3, 1}, // -z
		{4, 5, 7, 6}, // +z
		{0, 1, 5, 4}, // -y
		{2, 6, 7, 3}, // +y
		{0, 4, 6, 2}, // -x
		{1, 3, 7, 5}, // +x
	}
	return d.set(qs)
}

// ProcessAsymmetricHull builds the hull from its equator, where each
// quadrant has its own radius and height, down to Bottom and up to Top.
func (d *Discretizer) ProcessAsymmetricHull(_ *scene.State, n *scene.AsymmetricHull) bool {
	if n.NegXRadius <= 0 || n.PosXRadius <= 0 || n.NegYRadius <= 0 || n.PosYRadius <= 0 {
		return false
	}
	bottomShape, topShape := n.BottomShape, n.TopShape
	if bottomShape <= 0 {
		bottomShape = 2
	}
	if topShape <= 0 {
		topShape = 2
	}
	slices, stacks := d.slices(n.Slices), d.stacks(n.Stacks)

	equator := make([]geom.Vec3, slices)
	for j := range equator {
		a := 2 * math.Pi * float64(j) / float64(slices)
		c, s := math.Cos(a), math.Sin(a)
		rx, hx := n.PosXRadius, n.PosXHeight
		if c < 0 {
			rx, hx = n.NegXRadius, n.NegXHeight
		}
		ry, hy := n.PosYRadius, n.PosYHeight
		if s < 0 {
			ry, hy = n.NegYRadius, n.NegYHeight
		}
		r := 1 / math.Sqrt(c*c/(rx*rx)+s*s/(ry*ry))
		equator[j] = geom.Vec3{r * c, r * s, hx*c*c + hy*s*s}
	}

	return d.set(grid(2*stacks+1, slices+1, d.texCoord, func(i, j int) geom.Vec3 {
		e := equator[j%slices]
		if i <= stacks {
			t := float64(i) / float64(stacks)
			f := math.Pow(1-math.Pow(1-t, bottomShape), 1/bottomShape)
			return hullPoint(n.Bottom, e, f, t)
		}
		t := float64(i-stacks) / float64(stacks)
		f := math.Pow(1-math.Pow(t, topShape), 1/topShape)
		return hullPoint(n.Top, e, f, 1-t)
	}))
}

// hullPoint moves horizontally by f and vertically by t from end towards e.
func hullPoint(end, e geom.Vec3, f, t float64) geom.Vec3 {
	return geom.Vec3{
		end[0] + (e[0]-end[0])*f,
		end[1] + (e[1]-end[1])*f,
		end[2] + (e[2]-end[2])*t,
	}
}

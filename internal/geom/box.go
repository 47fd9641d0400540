package geom

import "math"

// Box is an axis-aligned bounding box. The zero value is empty.
type Box struct {
	Min   Vec3
	Max   Vec3
	valid bool
}

// NewBox returns the box spanning the two corners.
func NewBox(a, b Vec3) Box {
	return Box{}.Extend(a).Extend(b)
}

// IsEmpty reports whether the box contains no point.
func (b Box) IsEmpty() bool {
	return !b.valid
}

// Extend returns the smallest box containing b and p.
func (b Box) Extend(p Vec3) Box {
	if !b.valid {
		return Box{Min: p, Max: p, valid: true}
	}
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(other Box) Box {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return b.Extend(other.Min).Extend(other.Max)
}

// Contains checks if a point is inside the box.
func (b Box) Contains(p Vec3) bool {
	if !b.valid {
		return false
	}
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Center returns the center point of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Box) Size() Vec3 {
	if !b.valid {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

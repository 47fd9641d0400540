package measure

import (
	"github.com/phytogl/phytogl/internal/discretize"
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// SurfaceReport is the serializable outcome of a surface computation.
type SurfaceReport struct {
	Surface  float64            `json:"surface"`
	Shapes   map[uint32]float64 `json:"shapes"`
	Complete bool               `json:"complete"`
}

// Extent is a serializable bounding box.
type Extent struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

func extentOf(b geom.Box) *Extent {
	if b.IsEmpty() {
		return nil
	}
	return &Extent{Min: b.Min, Max: b.Max}
}

// BBoxReport is the serializable outcome of a bounding box computation.
// Box is nil when nothing in the scene has a position.
type BBoxReport struct {
	Box      *Extent            `json:"box"`
	Shapes   map[uint32]*Extent `json:"shapes"`
	Complete bool               `json:"complete"`
}

// Surface measures every shape of sc.
func Surface(sc *scene.Scene, opts ...discretize.Option) *SurfaceReport {
	c := NewSurfComputer(opts...)
	ok := c.Process(sc)
	return &SurfaceReport{Surface: c.Surface(), Shapes: c.ShapeSurfaces(), Complete: ok}
}

// BoundingBox bounds every shape of sc.
func BoundingBox(sc *scene.Scene, opts ...discretize.Option) *BBoxReport {
	c := NewBBoxComputer(opts...)
	ok := c.Process(sc)
	rep := &BBoxReport{Box: extentOf(c.BoundingBox()), Shapes: make(map[uint32]*Extent), Complete: ok}
	for id, b := range c.ShapeBoxes() {
		rep.Shapes[id] = extentOf(b)
	}
	return rep
}

// Bounds returns the box of the report, empty when Box is nil.
func (r *BBoxReport) Bounds() geom.Box {
	if r.Box == nil {
		return geom.Box{}
	}
	return geom.NewBox(r.Box.Min, r.Box.Max)
}

// Package engine keeps the interactive state of a loaded scene for viewers:
// the document, its built scene graph, the drawing view, the shape
// selection and the last projection for hit tests.
package engine

import (
	"encoding/json"
	"slices"

	"github.com/phytogl/phytogl/internal/ctrlpoint"
	"github.com/phytogl/phytogl/internal/discretize"
	"github.com/phytogl/phytogl/internal/document"
	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/measure"
	"github.com/phytogl/phytogl/internal/projection"
	"github.com/phytogl/phytogl/internal/scene"
)

// Engine owns a document and the scene built from it. It is not safe for
// concurrent use.
type Engine struct {
	doc   *document.Document
	scene *scene.Scene
	opts  []discretize.Option

	view      ctrlpoint.View
	selection []uint32

	// Last projection, for hit tests
	projected *projection.Result
}

func NewEngine(opts ...discretize.Option) *Engine {
	return &Engine{opts: opts, view: ctrlpoint.ViewFront}
}

// --- Commands ---

// LoadDocument parses and builds a JSON or YAML document, replacing the
// current one and clearing the selection.
func (e *Engine) LoadDocument(data string) error {
	doc, err := document.Parse([]byte(data))
	if err != nil {
		return err
	}
	if err := e.setDocument(doc); err != nil {
		return err
	}
	e.selection = nil
	return nil
}

// UpdateDocument replaces the document but keeps the selected shapes that
// still exist.
func (e *Engine) UpdateDocument(data string) error {
	doc, err := document.Parse([]byte(data))
	if err != nil {
		return err
	}
	if err := e.setDocument(doc); err != nil {
		return err
	}
	e.selection = slices.DeleteFunc(e.selection, func(id uint32) bool { return !e.hasShape(id) })
	return nil
}

// LoadSampleDocument loads the built-in sample plant.
func (e *Engine) LoadSampleDocument(sceneID string) error {
	e.selection = nil
	return e.setDocument(document.NewSampleDocument(sceneID))
}

func (e *Engine) setDocument(doc *document.Document) error {
	sc, err := document.Build(doc)
	if err != nil {
		return err
	}
	e.doc, e.scene = doc, sc
	e.projected = nil
	return nil
}

func (e *Engine) hasShape(id uint32) bool {
	for _, sh := range e.scene.Shapes() {
		if sh.ID == id {
			return true
		}
	}
	return false
}

// SetView selects the plane control polygons are drawn in.
func (e *Engine) SetView(name string) error {
	v, err := ctrlpoint.ParseView(name)
	if err != nil {
		return err
	}
	e.view = v
	return nil
}

// SetSelection selects shapes by id; unknown ids are dropped.
func (e *Engine) SetSelection(ids []uint32) {
	e.selection = nil
	for _, id := range ids {
		if e.scene != nil && e.hasShape(id) && !slices.Contains(e.selection, id) {
			e.selection = append(e.selection, id)
		}
	}
}

// --- Queries ---

// Render returns the control polygon draw commands of the scene as JSON.
func (e *Engine) Render() string {
	if e.scene == nil {
		return "[]"
	}
	rec := ctrlpoint.NewRecorder()
	e.scene.Apply(ctrlpoint.NewRenderer(rec, discretize.New(e.opts...)))
	result, _ := ctrlpoint.DrawCommandsToJSON(rec.Commands)
	return result
}

// Strips returns the world-space control polygons projected on the current
// view as JSON arrays of [x, y] pairs.
func (e *Engine) Strips() string {
	if e.scene == nil {
		return "[]"
	}
	painter := ctrlpoint.NewSVGPainter(e.view)
	e.scene.Apply(ctrlpoint.NewRenderer(painter, discretize.New(e.opts...)))
	out := make([][][2]float64, 0, len(painter.Strips()))
	for _, s := range painter.Strips() {
		out = append(out, painter.View.Plane(s.Points))
	}
	data, _ := json.Marshal(out)
	return string(data)
}

// Surface returns the surface report of the scene as JSON.
func (e *Engine) Surface() string {
	if e.scene == nil {
		return "{}"
	}
	data, _ := json.Marshal(measure.Surface(e.scene, e.opts...))
	return string(data)
}

// BoundingBox returns the bounding box report of the scene as JSON.
func (e *Engine) BoundingBox() string {
	if e.scene == nil {
		return "{}"
	}
	data, _ := json.Marshal(measure.BoundingBox(e.scene, e.opts...))
	return string(data)
}

// ProjectionSummary describes the last projection.
type ProjectionSummary struct {
	VisibleShapes []uint32 `json:"visibleShapes"`
	TotalArea     float64  `json:"totalArea"`
	Complete      bool     `json:"complete"`
}

// Project renders the scene at the given size with a camera framing its
// bounding box, and keeps the result for HitTest. It returns the summary
// as JSON.
func (e *Engine) Project(width, height int) string {
	if e.scene == nil || width <= 0 || height <= 0 {
		return "{}"
	}
	box := measure.BoundingBox(e.scene, e.opts...).Bounds()
	zbuf := projection.NewZBufferEngine(projection.FitOrthographic(box, width, height), nil)
	r := projection.NewRenderer(zbuf, discretize.NewTesselator(e.opts...), discretize.New(e.opts...), 0)
	ok := e.scene.Apply(r)
	e.projected = zbuf.Merge()
	data, _ := json.Marshal(ProjectionSummary{
		VisibleShapes: e.projected.VisibleShapes(),
		TotalArea:     e.projected.TotalArea(),
		Complete:      ok,
	})
	return string(data)
}

// Image returns the RGBA pixels of the last projection, nil if none.
func (e *Engine) Image() []byte {
	if e.projected == nil {
		return nil
	}
	return e.projected.Image().Pix
}

// HitTest returns the id of the shape visible at pixel (x, y) of the last
// projection, or scene.NOID.
func (e *Engine) HitTest(x, y int) uint32 {
	if e.projected == nil {
		return scene.NOID
	}
	return e.projected.IDAt(x, y)
}

// GetSelectionBounds returns the union of the selected shapes' boxes as JSON,
// null when nothing is selected.
func (e *Engine) GetSelectionBounds() string {
	if e.scene == nil || len(e.selection) == 0 {
		return "null"
	}
	boxes := measure.NewBBoxComputer(e.opts...)
	boxes.Process(e.scene)
	var union geom.Box
	for id, b := range boxes.ShapeBoxes() {
		if slices.Contains(e.selection, id) {
			union = union.Union(b)
		}
	}
	if union.IsEmpty() {
		return "null"
	}
	data, _ := json.Marshal(measure.Extent{Min: union.Min, Max: union.Max})
	return string(data)
}

// GetScene returns the scene metadata as JSON.
func (e *Engine) GetScene() string {
	if e.doc == nil {
		return "{}"
	}
	data, _ := json.Marshal(e.doc.Scene)
	return string(data)
}

// GetDocument returns the full document as JSON.
func (e *Engine) GetDocument() string {
	if e.doc == nil {
		return "{}"
	}
	data, _ := e.doc.JSON()
	return string(data)
}

// GetSelection returns the selected shape ids as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}

// ShapeIDs returns the ids of the loaded shapes in scene order.
func (e *Engine) ShapeIDs() []uint32 {
	var ids []uint32
	for _, sh := range e.scene.Shapes() {
		ids = append(ids, sh.ID)
	}
	return ids
}

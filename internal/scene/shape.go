package scene

// Shape binds a geometry to an appearance under an id.
type Shape struct {
	Name       string
	Geometry   Geometry
	Appearance Appearance
	ID         uint32
}

// NewShape returns a shape; a nil appearance becomes DefaultMaterial.
func NewShape(g Geometry, app Appearance, id uint32) *Shape {
	if app == nil {
		app = DefaultMaterial
	}
	return &Shape{Geometry: g, Appearance: app, ID: id}
}

// IsValid reports whether the shape has a geometry.
func (s *Shape) IsValid() bool {
	return s != nil && s.Geometry != nil
}

// Apply dispatches to the action's shape handler.
func (s *Shape) Apply(a Action, st *State) bool { return a.ProcessShape(st, s) }

// Scene is an ordered list of shapes.
type Scene struct {
	shapes []*Shape
}

// NewScene returns a scene holding shapes in order.
func NewScene(shapes ...*Shape) *Scene {
	return &Scene{shapes: shapes}
}

// Add appends shapes.
func (sc *Scene) Add(shapes ...*Shape) {
	sc.shapes = append(sc.shapes, shapes...)
}

// Len returns the number of shapes.
func (sc *Scene) Len() int {
	if sc == nil {
		return 0
	}
	return len(sc.shapes)
}

// Shapes returns the shapes in order. The slice must not be modified.
func (sc *Scene) Shapes() []*Shape {
	if sc == nil {
		return nil
	}
	return sc.shapes
}

// Apply runs a over every shape, each with a fresh state, between
// BeginProcess and EndProcess. Every shape is attempted; the result is
// false if any step failed.
func (sc *Scene) Apply(a Action) bool {
	if !a.BeginProcess() {
		return false
	}
	ok := true
	for _, sh := range sc.Shapes() {
		if !sh.Apply(a, NewState()) {
			ok = false
		}
	}
	return a.EndProcess() && ok
}

// ApplyShapes runs a over every shape with a state derived from st, without
// the begin and end brackets. It is the body of an Inline.
func (sc *Scene) ApplyShapes(a Action, st *State) bool {
	ok := true
	for _, sh := range sc.Shapes() {
		if !sh.Apply(a, st.Derive()) {
			ok = false
		}
	}
	return ok
}

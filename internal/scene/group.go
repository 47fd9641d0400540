package scene

import "github.com/phytogl/phytogl/internal/geom"

// Group aggregates geometries that share one appearance.
type Group struct {
	Children []Geometry
}

func (g *Group) Apply(a Action, st *State) bool { return a.ProcessGroup(st, g) }
func (*Group) geometry()                        {}

// Inline embeds a whole scene, optionally moved and scaled.
type Inline struct {
	ID          uint32
	Scene       *Scene
	Translation geom.Vec3
	Scale       geom.Vec3
}

// NewInline embeds sc with the default placement.
func NewInline(sc *Scene) *Inline {
	return &Inline{ID: NOID, Scene: sc, Scale: geom.Vec3{1, 1, 1}}
}

// IsTranslationToDefault reports whether the inline is not moved.
func (i *Inline) IsTranslationToDefault() bool {
	return geom.IsDefault(i.Translation, geom.Vec3{})
}

// IsScaleToDefault reports whether the inline is not scaled.
func (i *Inline) IsScaleToDefault() bool {
	return geom.IsDefault(i.Scale, geom.Vec3{1, 1, 1})
}

func (i *Inline) Apply(a Action, st *State) bool { return a.ProcessInline(st, i) }
func (*Inline) geometry()                        {}

// ScreenProjected draws its geometry in screen coordinates.
type ScreenProjected struct {
	Geometry        Geometry
	KeepAspectRatio bool
}

func (s *ScreenProjected) Apply(a Action, st *State) bool { return a.ProcessScreenProjected(st, s) }
func (*ScreenProjected) geometry()                        {}

// Font describes how a Text is drawn.
type Font struct {
	Family string
	Size   int
	Bold   bool
	Italic bool
}

func (f *Font) Apply(a Action, st *State) bool { return a.ProcessFont(st, f) }

// Text is a string anchored at a position.
type Text struct {
	String            string
	Position          geom.Vec3
	ScreenCoordinates bool
	Font              *Font
}

func (t *Text) Apply(a Action, st *State) bool { return a.ProcessText(st, t) }
func (*Text) geometry()                        {}

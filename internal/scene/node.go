// Package scene defines the geometric scene graph: shapes, the closed set of
// node variants, and the Action interface that dispatches on them.
package scene

import "github.com/phytogl/phytogl/internal/geom"

// Node is any scene-graph entity an Action can visit. Apply calls the one
// handler of a that matches the concrete node type.
type Node interface {
	Apply(a Action, st *State) bool
}

// Geometry is a node that contributes shape to a scene.
type Geometry interface {
	Node
	geometry()
}

// Appearance is a node that describes how geometry looks.
type Appearance interface {
	Node
	IsTexture() bool
	appearance()
}

// LineicModel is a 3D curve.
type LineicModel interface {
	Geometry
	lineic()
}

// Curve2D is a planar curve.
type Curve2D interface {
	Geometry
	curve2D()
}

// ParametricCurve is a 3D curve defined by weighted control points.
type ParametricCurve interface {
	LineicModel
	CtrlPointList() []geom.Vec4
}

// ParametricCurve2D is a planar curve defined by weighted control points
// stored as (x, y, w).
type ParametricCurve2D interface {
	Curve2D
	CtrlPointList2D() []geom.Vec3
}

// ParametricPatch is a surface defined by a grid of weighted control points.
type ParametricPatch interface {
	Geometry
	CtrlPointMatrix() *geom.Point4Matrix
}

// ExplicitModel is a geometry given directly by its points.
type ExplicitModel interface {
	Geometry
	PointList() []geom.Vec3
}

// Matrix4Transformed is a single-child wrapper whose transformation is one matrix.
type Matrix4Transformed interface {
	Geometry
	Matrix() geom.Mat4
	Child() Geometry
}

package ctrlpoint

import (
	"encoding/json"

	"github.com/phytogl/phytogl/internal/geom"
	"github.com/phytogl/phytogl/internal/scene"
)

// Painter receives the drawing primitives of the renderer. Matrices apply
// to the strips drawn after them until the matching PopMatrix.
type Painter interface {
	SetAppearance(app scene.Appearance)
	LineStrip(points []geom.Vec3)
	PushMatrix()
	PopMatrix()
	MultMatrix(m geom.Mat4)
}

// DrawCommand is a single recorded painter call.
type DrawCommand struct {
	Op     string       `json:"op"`               // "appearance", "strip", "push", "pop", "mult"
	Color  string       `json:"color,omitempty"`  // For "appearance"
	Points [][3]float64 `json:"points,omitempty"` // Local coordinates, for "strip"
	Matrix []float64    `json:"matrix,omitempty"` // Column-major, for "mult"
}

// Strip is a drawn polyline in world coordinates.
type Strip struct {
	Color  string      `json:"color"`
	Points []geom.Vec3 `json:"points"`
}

// Recorder is a Painter that keeps every call, and the world-space strips
// they produce.
type Recorder struct {
	Commands []DrawCommand
	strips   []Strip
	stack    *geom.MatrixStack
	color    string
}

var _ Painter = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{stack: geom.NewMatrixStack(), color: colorOf(nil)}
}

func (r *Recorder) SetAppearance(app scene.Appearance) {
	r.color = colorOf(app)
	r.Commands = append(r.Commands, DrawCommand{Op: "appearance", Color: r.color})
}

func (r *Recorder) LineStrip(points []geom.Vec3) {
	local := make([][3]float64, len(points))
	world := make([]geom.Vec3, len(points))
	for i, p := range points {
		local[i] = p
		world[i] = geom.TransformPoint(r.stack.Top(), p)
	}
	r.Commands = append(r.Commands, DrawCommand{Op: "strip", Points: local})
	r.strips = append(r.strips, Strip{Color: r.color, Points: world})
}

func (r *Recorder) PushMatrix() {
	r.stack.Push()
	r.Commands = append(r.Commands, DrawCommand{Op: "push"})
}

func (r *Recorder) PopMatrix() {
	r.stack.Pop()
	r.Commands = append(r.Commands, DrawCommand{Op: "pop"})
}

func (r *Recorder) MultMatrix(m geom.Mat4) {
	r.stack.Mult(m)
	r.Commands = append(r.Commands, DrawCommand{Op: "mult", Matrix: m[:]})
}

// Depth returns the number of pushed matrices not yet popped.
func (r *Recorder) Depth() int { return r.stack.Depth() }

// Strips returns the drawn strips in world coordinates, in drawing order.
func (r *Recorder) Strips() []Strip { return r.strips }

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.Commands = nil
	r.strips = nil
	r.stack = geom.NewMatrixStack()
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

func colorOf(app scene.Appearance) string {
	switch a := app.(type) {
	case *scene.Material:
		return a.Ambient.Hex()
	case *scene.Texture2D:
		return a.BaseColor.RGB().Hex()
	}
	return scene.Black.Hex()
}

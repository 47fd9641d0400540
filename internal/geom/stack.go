package geom

import "errors"

// ErrStackUnderflow is the panic value raised when popping past the base frame.
var ErrStackUnderflow = errors.New("geom: matrix stack underflow")

// MatrixStack is a LIFO of model matrices. The top starts as the identity
// and is never popped.
type MatrixStack struct {
	frames []Mat4
}

// NewMatrixStack returns a stack holding the identity.
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{frames: []Mat4{Identity()}}
}

// Push duplicates the current top.
func (s *MatrixStack) Push() {
	s.frames = append(s.frames, s.Top())
}

// Pop discards the current top. Unbalanced pops are programming errors.
func (s *MatrixStack) Pop() {
	if len(s.frames) <= 1 {
		panic(ErrStackUnderflow)
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Top returns the current matrix.
func (s *MatrixStack) Top() Mat4 {
	if len(s.frames) == 0 {
		return Identity()
	}
	return s.frames[len(s.frames)-1]
}

// Mult post-multiplies the current matrix: top = top * m.
func (s *MatrixStack) Mult(m Mat4) {
	if len(s.frames) == 0 {
		s.frames = []Mat4{Identity()}
	}
	s.frames[len(s.frames)-1] = s.frames[len(s.frames)-1].Mul4(m)
}

// Depth returns the number of pushed frames above the base.
func (s *MatrixStack) Depth() int {
	return len(s.frames) - 1
}

// Clone returns an independent copy of the stack.
func (s *MatrixStack) Clone() *MatrixStack {
	frames := make([]Mat4, len(s.frames))
	copy(frames, s.frames)
	return &MatrixStack{frames: frames}
}

package geom

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec3(t *testing.T, want, got Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestMatrixStackPushPop(t *testing.T) {
	s := NewMatrixStack()
	assert.Equal(t, 0, s.Depth())

	s.Push()
	s.Mult(Translation(Vec3{1, 2, 3}))
	assert.Equal(t, 1, s.Depth())
	assertVec3(t, Vec3{1, 2, 3}, TransformPoint(s.Top(), Vec3{}))

	s.Push()
	s.Mult(Scaling(Vec3{2, 2, 2}))
	assertVec3(t, Vec3{3, 4, 5}, TransformPoint(s.Top(), Vec3{1, 1, 1}))

	s.Pop()
	s.Pop()
	assert.True(t, IsIdentity(s.Top()))
	assert.PanicsWithValue(t, ErrStackUnderflow, s.Pop)
}

func TestMatrixStackClone(t *testing.T) {
	s := NewMatrixStack()
	s.Push()
	c := s.Clone()
	c.Mult(Translation(Vec3{1, 0, 0}))
	assert.True(t, IsIdentity(s.Top()))
	assert.Equal(t, 1, c.Depth())
}

func TestBox(t *testing.T) {
	var b Box
	assert.True(t, b.IsEmpty())
	assert.False(t, b.Contains(Vec3{}))

	b = NewBox(Vec3{1, 1, 1}, Vec3{-1, 0, 2})
	assert.Equal(t, Vec3{-1, 0, 1}, b.Min)
	assert.Equal(t, Vec3{1, 1, 2}, b.Max)
	assert.True(t, b.Contains(Vec3{0, 0.5, 1.5}))
	assert.Equal(t, Vec3{2, 1, 1}, b.Size())

	u := b.Union(Box{})
	assert.Equal(t, b, u)
	u = Box{}.Union(b)
	assert.Equal(t, b, u)
}

func TestTransformBox(t *testing.T) {
	b := NewBox(Vec3{-1, -1, -1}, Vec3{1, 1, 1})
	moved := TransformBox(Translation(Vec3{10, 0, 0}), b)
	assertVec3(t, Vec3{9, -1, -1}, moved.Min)
	assertVec3(t, Vec3{11, 1, 1}, moved.Max)

	rotated := TransformBox(AxisRotation(Vec3{0, 0, 1}, math.Pi/4), b)
	assert.InDelta(t, math.Sqrt2, rotated.Max[0], 1e-9)
}

func TestRotations(t *testing.T) {
	assertVec3(t, Vec3{0, 1, 0}, TransformPoint(AxisRotation(Vec3{0, 0, 2}, math.Pi/2), Vec3{1, 0, 0}))
	assert.True(t, IsIdentity(AxisRotation(Vec3{}, 1)))
	assertVec3(t, Vec3{0, 1, 0}, TransformPoint(EulerRotation(math.Pi/2, 0, 0), Vec3{1, 0, 0}))
	assertVec3(t, Vec3{0, 0, -1}, TransformPoint(EulerRotation(0, math.Pi/2, 0), Vec3{1, 0, 0}))

	o := Orientation(Vec3{0, 1, 0}, Vec3{0, 0, 1})
	assertVec3(t, Vec3{0, 1, 0}, TransformPoint(o, Vec3{1, 0, 0}))
	assertVec3(t, Vec3{0, 0, 1}, TransformPoint(o, Vec3{0, 1, 0}))
	assertVec3(t, Vec3{1, 0, 0}, TransformPoint(o, Vec3{0, 0, 1}))
}

func TestTaperKeepsWeight(t *testing.T) {
	tp := Taper{Base: 1, Top: 0.5}
	assert.Equal(t, Vec4{2, 4, 1, 3}.Vec3(), Vec3{2, 4, 1})
	got := tp.Transform4(Vec4{2, 4, 1, 3})
	assert.Equal(t, Vec4{1, 2, 1, 3}, got)
	assertVec3(t, Vec3{1, 1, 0}, tp.Transform(Vec3{1, 1, 0}))
}

func TestMatrixTransformationKeepsWeight(t *testing.T) {
	tr := NewMatrixTransformation(Translation(Vec3{1, 0, 0}))
	got := tr.Transform4(Vec4{1, 1, 1, 0.5})
	assert.InDelta(t, 2.0, got[0], 1e-12)
	assert.InDelta(t, 0.5, got[3], 1e-12)
}

func TestITCompositions(t *testing.T) {
	it := IT{
		Transfos: []Mat4{Translation(Vec3{1, 0, 0}), Translation(Vec3{0, 1, 0}), Scaling(Vec3{0.5, 0.5, 0.5})},
		Depth:    2,
	}
	all := it.AllTransfo()
	require.Len(t, all, 9)
	assertVec3(t, Vec3{2, 0, 0}, TransformPoint(all[0], Vec3{}))
	assertVec3(t, Vec3{1, 1, 0}, TransformPoint(all[1], Vec3{}))

	assert.Len(t, IT{Transfos: it.Transfos}.AllTransfo(), 3)
	assert.Empty(t, IT{Depth: 3}.AllTransfo())
}

func TestITInstancesBounded(t *testing.T) {
	two := []Mat4{Identity(), Identity()}

	n, err := IT{Transfos: two, Depth: 16}.Instances()
	require.NoError(t, err)
	assert.Equal(t, MaxInstances, n)

	_, err = IT{Transfos: two, Depth: 17}.Instances()
	assert.ErrorIs(t, err, ErrTooManyInstances)
	assert.Empty(t, IT{Transfos: two, Depth: 70}.AllTransfo())

	_, err = IT{Transfos: two, Depth: -1}.Instances()
	assert.ErrorIs(t, err, ErrTooManyInstances)
	assert.Empty(t, IT{Transfos: two, Depth: -1}.AllTransfo())
}

func TestPoint4Matrix(t *testing.T) {
	m, err := NewPoint4Matrix([][]Vec4{
		{{0, 0, 0, 1}, {1, 0, 0, 1}, {2, 0, 0, 1}},
		{{0, 1, 0, 1}, {1, 1, 0, 1}, {2, 1, 0, 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, Vec4{1, 1, 0, 1}, m.At(1, 1))
	assert.Equal(t, []Vec4{{2, 0, 0, 1}, {2, 1, 0, 1}}, m.Col(2))

	moved := TransformMatrix4(NewMatrixTransformation(Translation(Vec3{0, 0, 1})), m)
	assert.InDelta(t, 1.0, moved.At(0, 0)[2], 1e-12)
	assert.Equal(t, 0.0, m.At(0, 0)[2])

	_, err = NewPoint4Matrix([][]Vec4{{{}}, {{}, {}}})
	assert.ErrorIs(t, err, ErrRaggedMatrix)
}

func TestVectorHelpers(t *testing.T) {
	assert.Equal(t, Vec3{2, 4, 6}, Homogenize(Vec4{1, 2, 3, 2}))
	assert.Equal(t, Vec3{1, 2, 3}, Dehomogenize(Vec3{2, 4, 6}, 2))
	assert.Equal(t, Vec3{1, 0, 2}, SwapYZ(Vec3{1, 2, 0}))
	assert.InDelta(t, 0.5, TriangleArea(Vec3{}, Vec3{1, 0, 0}, Vec3{0, 1, 0}), 1e-12)

	loop := ClosedLoop([]Vec3{{0, 0, 0}, {1, 0, 0}})
	assert.Equal(t, []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 0}}, loop)
	assert.Nil(t, ClosedLoop(nil))
}

func TestPoint4MatrixJSON(t *testing.T) {
	var m Point4Matrix
	require.NoError(t, json.Unmarshal([]byte(`[[[0,0,0,1],[1,0,0,1]],[[0,1,0,1],[1,1,0,2]]]`), &m))
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 2, m.Cols())
	assert.Equal(t, Vec4{1, 1, 0, 2}, m.At(1, 1))

	out, err := json.Marshal(&m)
	require.NoError(t, err)
	assert.JSONEq(t, `[[[0,0,0,1],[1,0,0,1]],[[0,1,0,1],[1,1,0,2]]]`, string(out))

	assert.ErrorIs(t, json.Unmarshal([]byte(`[[[0,0,0,1]],[]]`), &m), ErrRaggedMatrix)
}

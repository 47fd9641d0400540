package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phytogl/phytogl/internal/ctrlpoint"
	"github.com/phytogl/phytogl/internal/measure"
	"github.com/phytogl/phytogl/internal/scene"
)

const twoBoxes = `
version: "1.0"
scene: {id: scene_boxes, name: boxes}
shapes:
  - {id: 1, geometry: left}
  - {id: 2, geometry: right}
objects:
  box: {id: box, type: Box, data: {size: [1, 1, 1]}}
  left: {id: left, type: Translated, children: [box], data: {translation: [-2, 0, 0]}}
  right: {id: right, type: Translated, children: [box], data: {translation: [2, 0, 0]}}
`

func loaded(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine()
	require.NoError(t, e.LoadDocument(twoBoxes))
	return e
}

func TestEmptyEngine(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, "[]", e.Render())
	assert.Equal(t, "{}", e.Surface())
	assert.Equal(t, "{}", e.Project(10, 10))
	assert.Equal(t, scene.NOID, e.HitTest(0, 0))
	assert.Nil(t, e.Image())
	assert.Equal(t, "null", e.GetSelectionBounds())
	assert.Empty(t, e.ShapeIDs())
}

func TestLoadDocument(t *testing.T) {
	e := loaded(t)
	assert.Equal(t, []uint32{1, 2}, e.ShapeIDs())
	assert.JSONEq(t, `{"id":"scene_boxes","name":"boxes"}`, e.GetScene())

	assert.Error(t, e.LoadDocument(`{"version": "9.0"}`))
	assert.Equal(t, []uint32{1, 2}, e.ShapeIDs(), "failed load keeps the previous scene")
}

func TestSurfaceAndBoundingBox(t *testing.T) {
	e := loaded(t)

	var surf measure.SurfaceReport
	require.NoError(t, json.Unmarshal([]byte(e.Surface()), &surf))
	assert.InDelta(t, 48, surf.Surface, 1e-9)

	var box measure.BBoxReport
	require.NoError(t, json.Unmarshal([]byte(e.BoundingBox()), &box))
	assert.Equal(t, [3]float64{-3, -1, -1}, box.Box.Min)
	assert.Equal(t, [3]float64{3, 1, 1}, box.Box.Max)
}

func TestSelection(t *testing.T) {
	e := loaded(t)
	e.SetSelection([]uint32{2, 2, 9})
	assert.JSONEq(t, `[2]`, e.GetSelection())
	assert.JSONEq(t, `{"min":[1,-1,-1],"max":[3,1,1]}`, e.GetSelectionBounds())

	require.NoError(t, e.UpdateDocument(twoBoxes))
	assert.JSONEq(t, `[2]`, e.GetSelection())

	require.NoError(t, e.LoadSampleDocument("scene_sample"))
	assert.JSONEq(t, `null`, e.GetSelection())
}

func TestProjectAndHitTest(t *testing.T) {
	e := loaded(t)
	rep := e.Project(120, 40)
	assert.Contains(t, rep, `"visibleShapes":[1,2]`)
	assert.Len(t, e.Image(), 120*40*4)

	assert.Equal(t, uint32(1), e.HitTest(30, 20))
	assert.Equal(t, uint32(2), e.HitTest(90, 20))
	assert.Equal(t, scene.NOID, e.HitTest(60, 20))
}

func TestRenderAndStrips(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.LoadSampleDocument("scene_sample"))

	var commands []ctrlpoint.DrawCommand
	require.NoError(t, json.Unmarshal([]byte(e.Render()), &commands))
	require.NotEmpty(t, commands)
	assert.Equal(t, "appearance", commands[0].Op)

	require.NoError(t, e.SetView("top"))
	var strips [][][2]float64
	require.NoError(t, json.Unmarshal([]byte(e.Strips()), &strips))
	assert.NotEmpty(t, strips)
	assert.Error(t, e.SetView("sideways"))
}

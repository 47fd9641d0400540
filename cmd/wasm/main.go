//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/phytogl/phytogl/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	phytogl := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	phytogl.Set("loadDocument", js.FuncOf(loadDocument))
	phytogl.Set("updateDocument", js.FuncOf(updateDocument))
	phytogl.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	phytogl.Set("setView", js.FuncOf(setView))
	phytogl.Set("setSelection", js.FuncOf(setSelection))

	// --- Queries (frontend ← backend) ---
	phytogl.Set("ctrlPoints", js.FuncOf(ctrlPoints))
	phytogl.Set("strips", js.FuncOf(strips))
	phytogl.Set("surface", js.FuncOf(surface))
	phytogl.Set("boundingBox", js.FuncOf(boundingBox))
	phytogl.Set("project", js.FuncOf(project))
	phytogl.Set("image", js.FuncOf(image))
	phytogl.Set("hitTest", js.FuncOf(hitTest))
	phytogl.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	phytogl.Set("getScene", js.FuncOf(getScene))
	phytogl.Set("getDocument", js.FuncOf(getDocument))
	phytogl.Set("getSelection", js.FuncOf(getSelection))

	js.Global().Set("phytogl", phytogl)
	js.Global().Set("phytoglWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document"})
	}
	return result(eng.LoadDocument(args[0].String()))
}

func updateDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document"})
	}
	return result(eng.UpdateDocument(args[0].String()))
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	sceneID := "scene_sample"
	if len(args) > 0 {
		sceneID = args[0].String()
	}
	return result(eng.LoadSampleDocument(sceneID))
}

func setView(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing view"})
	}
	return result(eng.SetView(args[0].String()))
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		eng.SetSelection(nil)
		return js.Undefined()
	}
	arr := args[0]
	ids := make([]uint32, arr.Length())
	for i := range ids {
		ids[i] = uint32(arr.Index(i).Int())
	}
	eng.SetSelection(ids)
	return js.Undefined()
}

// --- Query Handlers ---

func ctrlPoints(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func strips(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Strips())
}

func surface(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Surface())
}

func boundingBox(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.BoundingBox())
}

func project(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("{}")
	}
	return js.ValueOf(eng.Project(args[0].Int(), args[1].Int()))
}

// image copies the RGBA pixels of the last projection into a Uint8ClampedArray.
func image(this js.Value, args []js.Value) interface{} {
	pix := eng.Image()
	if pix == nil {
		return js.Null()
	}
	arr := js.Global().Get("Uint8ClampedArray").New(len(pix))
	js.CopyBytesToJS(arr, pix)
	return arr
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(0)
	}
	return js.ValueOf(int(eng.HitTest(args[0].Int(), args[1].Int())))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getScene(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetScene())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}

package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phytogl/phytogl/internal/ctrlpoint"
	"github.com/phytogl/phytogl/internal/discretize"
	"github.com/phytogl/phytogl/internal/scene"
)

// CtrlPoints draws the control polygons of every shape of sc. The returned
// flag is false when some shape could not be drawn; the painter still holds
// everything that was.
func CtrlPoints(sc *scene.Scene, view ctrlpoint.View, opts ...discretize.Option) (*ctrlpoint.SVGPainter, bool) {
	painter := ctrlpoint.NewSVGPainter(view)
	r := ctrlpoint.NewRenderer(painter, discretize.New(opts...))
	ok := sc.Apply(r)
	if !ok {
		slog.Warn("control point drawing incomplete", "shapes", sc.Len())
	}
	return painter, ok
}

// WriteSVG draws sc's control polygons as SVG.
func WriteSVG(w io.Writer, sc *scene.Scene, view ctrlpoint.View, opts ...discretize.Option) error {
	painter, _ := CtrlPoints(sc, view, opts...)
	if err := painter.Render(w); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	return nil
}

// WriteCommands writes the recorded painter calls for sc as JSON.
func WriteCommands(w io.Writer, sc *scene.Scene, opts ...discretize.Option) error {
	painter, _ := CtrlPoints(sc, ctrlpoint.ViewFront, opts...)
	commands := painter.Commands
	if commands == nil {
		commands = []ctrlpoint.DrawCommand{}
	}
	return WriteJSON(w, commands)
}

package commands

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/urfave/cli"

	"github.com/phytogl/phytogl/internal/asset"
	"github.com/phytogl/phytogl/internal/batch"
	"github.com/phytogl/phytogl/internal/export"
	"github.com/phytogl/phytogl/internal/projection"
)

// Project renders a scene file into a z-buffer framed on its bounding box,
// writes the image and prints the visible area of every shape.
func Project(ctx *cli.Context) error {
	l, err := loadArg(ctx)
	if err != nil {
		return err
	}
	kind, err := export.ParseImageKind(ctx.String("kind"))
	if err != nil {
		return err
	}
	width, height := ctx.Int("width"), ctx.Int("height")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}

	var textures projection.TextureSource
	if dir := ctx.String("assets"); dir != "" {
		textures = asset.NewLibrary(dir, asset.DefaultTextureSize)
	}
	opts := discretizeOptions(ctx)
	eng := batch.FitEngine(l.scene, width, height, textures, opts...)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, rep, err := batch.Project(runCtx, l.scene, eng, batch.Options{
		Workers:    ctx.Int("workers"),
		Discretize: opts,
		Progress: func(ev batch.Event) {
			slog.Debug("shape projected", "shape", ev.ShapeID, "ok", ev.OK, "done", ev.Done, "total", ev.Total)
		},
	})
	if err != nil {
		return err
	}

	if err := writeImage(ctx.String("out"), export.ProjectionImage(res, kind), ctx.Int("thumb")); err != nil {
		return err
	}
	slog.Info("projection written", "file", ctx.String("out"), "duration", rep.Duration)

	if ctx.Bool("json") {
		return export.WriteJSON(ctx.App.Writer, rep)
	}
	printProjection(ctx.App.Writer, rep)
	return nil
}

func writeImage(path string, img image.Image, thumb int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WritePNG(f, img, thumb); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printProjection(w io.Writer, rep *batch.Report) {
	table := newTable(w, "Shape", "Projected area")
	for _, id := range sortedIDs(rep.ProjectedArea) {
		table.Append([]string{strconv.FormatUint(uint64(id), 10), formatFloat(rep.ProjectedArea[id])})
	}
	table.SetFooter([]string{"Total", formatFloat(rep.TotalArea)})
	table.Render()
	fmt.Fprintf(w, "%d of %d shapes visible\n", len(rep.VisibleShapes), rep.Shapes)
	if len(rep.FailedShapes) > 0 {
		fmt.Fprintf(w, "failed shapes: %v\n", rep.FailedShapes)
	}
}

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/phytogl/phytogl/internal/export"
	"github.com/phytogl/phytogl/internal/measure"
)

// Surface prints the surface of every shape of a scene file.
func Surface(ctx *cli.Context) error {
	l, err := loadArg(ctx)
	if err != nil {
		return err
	}
	rep := surfaceReport(ctx, l)
	if ctx.Bool("json") {
		return export.WriteJSON(ctx.App.Writer, rep)
	}
	printSurface(ctx.App.Writer, rep)
	return nil
}

// BoundingBox prints the bounding box of every shape of a scene file.
func BoundingBox(ctx *cli.Context) error {
	l, err := loadArg(ctx)
	if err != nil {
		return err
	}
	rep := bboxReport(ctx, l)
	if ctx.Bool("json") {
		return export.WriteJSON(ctx.App.Writer, rep)
	}
	printBBox(ctx.App.Writer, rep)
	return nil
}

func surfaceReport(ctx *cli.Context, l *loaded) *measure.SurfaceReport {
	return cached(ctx, "surface", l.data, func() *measure.SurfaceReport {
		slog.Info("computing surface", "file", l.path, "shapes", l.scene.Len())
		return measure.Surface(l.scene, discretizeOptions(ctx)...)
	})
}

func bboxReport(ctx *cli.Context, l *loaded) *measure.BBoxReport {
	return cached(ctx, "bbox", l.data, func() *measure.BBoxReport {
		slog.Info("computing bounding box", "file", l.path, "shapes", l.scene.Len())
		return measure.BoundingBox(l.scene, discretizeOptions(ctx)...)
	})
}

func sortedIDs[V any](m map[uint32]V) []uint32 {
	ids := make([]uint32, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	return table
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

func formatExtent(e *measure.Extent) (string, string) {
	if e == nil {
		return "-", "-"
	}
	return fmt.Sprintf("%s %s %s", formatFloat(e.Min[0]), formatFloat(e.Min[1]), formatFloat(e.Min[2])),
		fmt.Sprintf("%s %s %s", formatFloat(e.Max[0]), formatFloat(e.Max[1]), formatFloat(e.Max[2]))
}

func printSurface(w io.Writer, rep *measure.SurfaceReport) {
	table := newTable(w, "Shape", "Surface")
	for _, id := range sortedIDs(rep.Shapes) {
		table.Append([]string{strconv.FormatUint(uint64(id), 10), formatFloat(rep.Shapes[id])})
	}
	table.SetFooter([]string{"Total", formatFloat(rep.Surface)})
	table.Render()
	if !rep.Complete {
		fmt.Fprintln(w, "warning: some shapes could not be measured")
	}
}

func printBBox(w io.Writer, rep *measure.BBoxReport) {
	table := newTable(w, "Shape", "Min", "Max")
	for _, id := range sortedIDs(rep.Shapes) {
		lo, hi := formatExtent(rep.Shapes[id])
		table.Append([]string{strconv.FormatUint(uint64(id), 10), lo, hi})
	}
	lo, hi := formatExtent(rep.Box)
	table.SetFooter([]string{"Scene", lo, hi})
	table.Render()
	if !rep.Complete {
		fmt.Fprintln(w, "warning: some shapes could not be bounded")
	}
}

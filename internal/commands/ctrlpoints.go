package commands

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/phytogl/phytogl/internal/ctrlpoint"
	"github.com/phytogl/phytogl/internal/export"
)

// CtrlPoints draws the control polygons of a scene file as SVG, or as JSON
// draw commands with --json.
func CtrlPoints(ctx *cli.Context) error {
	l, err := loadArg(ctx)
	if err != nil {
		return err
	}
	view, err := ctrlpoint.ParseView(ctx.String("view"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if ctx.Bool("json") {
		err = export.WriteCommands(&buf, l.scene, discretizeOptions(ctx)...)
	} else {
		err = export.WriteSVG(&buf, l.scene, view, discretizeOptions(ctx)...)
	}
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "-" {
		_, err = ctx.App.Writer.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return err
	}
	slog.Info("control polygons written", "file", out, "bytes", buf.Len())
	return nil
}

package commands

import (
	"os"

	"github.com/urfave/cli"

	"github.com/phytogl/phytogl/internal/document"
	"github.com/phytogl/phytogl/internal/typeid"
)

// Sample writes the sample plant document to the given file, or to the
// app's writer when none is given.
func Sample(ctx *cli.Context) error {
	doc := document.NewSampleDocument(typeid.NewSceneID())
	var (
		data []byte
		err  error
	)
	if ctx.Bool("yaml") {
		data, err = doc.YAML()
	} else {
		data, err = doc.JSON()
	}
	if err != nil {
		return err
	}
	if out := ctx.Args().First(); out != "" {
		return os.WriteFile(out, data, 0644)
	}
	_, err = ctx.App.Writer.Write(data)
	return err
}

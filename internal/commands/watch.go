package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli"
)

// Watch prints the surface and bounding box of a scene file, then again
// each time the file is written, until interrupted.
func Watch(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errMissingFile
	}
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watchFile(runCtx, ctx, ctx.Args().First(), nil)
}

// watchFile reports on path and re-reports on every write. ready, when
// set, is closed once the watcher is in place.
func watchFile(runCtx context.Context, ctx *cli.Context, path string, ready chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	report(ctx, path)
	if ready != nil {
		close(ready)
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-runCtx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			slog.Debug("scene file changed", "file", event.Name, "op", event.Op.String())
			report(ctx, path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}

func report(ctx *cli.Context, path string) {
	l, err := loadFile(path)
	if err != nil {
		slog.Warn("cannot load scene", "error", err)
		return
	}
	w := ctx.App.Writer
	fmt.Fprintf(w, "== %s (%d shapes)\n", path, l.scene.Len())
	printSurface(w, surfaceReport(ctx, l))
	printBBox(w, bboxReport(ctx, l))
}

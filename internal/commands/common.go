package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/urfave/cli"

	"github.com/phytogl/phytogl/internal/cache"
	"github.com/phytogl/phytogl/internal/config"
	"github.com/phytogl/phytogl/internal/discretize"
	"github.com/phytogl/phytogl/internal/document"
	"github.com/phytogl/phytogl/internal/scene"
)

var errMissingFile = errors.New("missing scene file argument")

func setupLogging(ctx *cli.Context, cfg *config.Config) {
	level := cfg.Level()
	if ctx.GlobalBool("v") {
		level = slog.LevelInfo
	}
	if ctx.GlobalBool("vv") {
		level = slog.LevelDebug
	}
	w := ctx.App.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// loaded is a scene file read from disk.
type loaded struct {
	path  string
	data  []byte
	doc   *document.Document
	scene *scene.Scene
}

func loadFile(path string) (*loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc, err := document.Build(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &loaded{path: path, data: data, doc: doc, scene: sc}, nil
}

func loadArg(ctx *cli.Context) (*loaded, error) {
	if ctx.NArg() != 1 {
		return nil, errMissingFile
	}
	return loadFile(ctx.Args().First())
}

func discretizeOptions(ctx *cli.Context) []discretize.Option {
	return []discretize.Option{
		discretize.WithStride(ctx.GlobalInt("stride")),
		discretize.WithSlices(ctx.GlobalInt("slices")),
	}
}

// cacheKeyParams are the settings a measurement depends on besides the
// document bytes.
func cacheKeyParams(ctx *cli.Context) []string {
	return []string{strconv.Itoa(ctx.GlobalInt("stride")), strconv.Itoa(ctx.GlobalInt("slices"))}
}

// cached returns the report under kind from the cache, or computes and
// stores it. Cache failures are logged and fall back to computing.
func cached[T any](ctx *cli.Context, kind string, data []byte, compute func() *T) *T {
	if ctx.GlobalBool("no-cache") || ctx.GlobalString("cache") == "" {
		return compute()
	}
	c, err := cache.Open(ctx.GlobalString("cache"))
	if err != nil {
		slog.Warn("cache unavailable", "error", err)
		return compute()
	}
	defer c.Close()

	key := cache.Key(kind, data, cacheKeyParams(ctx)...)
	var rep T
	if hit, err := c.Get(key, &rep); err != nil {
		slog.Warn("cache read failed", "error", err)
	} else if hit {
		slog.Debug("cache hit", "key", string(key))
		return &rep
	}

	out := compute()
	if err := c.Put(key, out); err != nil {
		slog.Warn("cache write failed", "error", err)
	}
	return out
}

// Package batch projects the shapes of a scene with a pool of workers
// sharing one z-buffer engine.
package batch

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phytogl/phytogl/internal/discretize"
	"github.com/phytogl/phytogl/internal/measure"
	"github.com/phytogl/phytogl/internal/projection"
	"github.com/phytogl/phytogl/internal/scene"
)

// Options configures a batch projection.
type Options struct {
	// Workers is the number of concurrent renderers, at least 1.
	Workers int
	// Discretize configures the discretizer and tesselator of every worker.
	Discretize []discretize.Option
	// Progress, when set, is called after each shape. Calls may come from
	// several goroutines at once.
	Progress func(Event)
}

// Event reports the outcome of one shape.
type Event struct {
	ShapeID uint32 `json:"shapeId"`
	OK      bool   `json:"ok"`
	Done    int    `json:"done"`
	Total   int    `json:"total"`
	Worker  int    `json:"worker"`
}

// Report summarizes a batch projection.
type Report struct {
	Shapes        int                `json:"shapes"`
	FailedShapes  []uint32           `json:"failedShapes"`
	VisibleShapes []uint32           `json:"visibleShapes"`
	ProjectedArea map[uint32]float64 `json:"projectedArea"`
	TotalArea     float64            `json:"totalArea"`
	Duration      time.Duration      `json:"duration"`
}

// Project renders every shape of sc into eng and merges the per-worker
// buffers. Shapes whose traversal fails are logged and listed in the
// report; they are not errors. Cancelling ctx stops the workers between
// shapes and returns ctx's error.
func Project(ctx context.Context, sc *scene.Scene, eng *projection.ZBufferEngine, opts Options) (*projection.Result, *Report, error) {
	start := time.Now()
	shapes := sc.Shapes()
	workers := max(opts.Workers, 1)

	jobs := make(chan *scene.Shape)
	var (
		mu     sync.Mutex
		failed []uint32
		done   int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for _, sh := range shapes {
			select {
			case jobs <- sh:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			cam := eng.ProjectionCamera().Clone()
			r := projection.NewRenderer(eng,
				discretize.NewTesselator(opts.Discretize...),
				discretize.New(opts.Discretize...),
				i, projection.WithCamera(cam))
			for sh := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				ok := sh.Apply(r, scene.NewState())
				shapesProjected.Inc()

				mu.Lock()
				if !ok {
					shapesFailed.Inc()
					failed = append(failed, sh.ID)
					slog.Warn("shape projection failed", "shape", sh.ID, "name", sh.Name, "worker", i)
				}
				done++
				ev := Event{ShapeID: sh.ID, OK: ok, Done: done, Total: len(shapes), Worker: i}
				mu.Unlock()

				if opts.Progress != nil {
					opts.Progress(ev)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	res := eng.Merge()
	slices.Sort(failed)
	rep := &Report{
		Shapes:        len(shapes),
		FailedShapes:  failed,
		VisibleShapes: res.VisibleShapes(),
		ProjectedArea: make(map[uint32]float64),
		TotalArea:     res.TotalArea(),
		Duration:      time.Since(start),
	}
	for _, id := range rep.VisibleShapes {
		rep.ProjectedArea[id] = res.ProjectedArea(id)
	}
	projectionSeconds.Observe(rep.Duration.Seconds())
	slog.Debug("batch projection done", "shapes", rep.Shapes, "failed", len(failed), "workers", workers, "duration", rep.Duration)
	return res, rep, nil
}

// FitEngine returns an engine whose orthographic camera frames the bounding
// box of sc, looking along +Y.
func FitEngine(sc *scene.Scene, width, height int, textures projection.TextureSource, opts ...discretize.Option) *projection.ZBufferEngine {
	box := measure.BoundingBox(sc, opts...).Bounds()
	return projection.NewZBufferEngine(projection.FitOrthographic(box, width, height), textures)
}

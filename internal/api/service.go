package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/phytogl/phytogl/internal/batch"
	"github.com/phytogl/phytogl/internal/ctrlpoint"
	"github.com/phytogl/phytogl/internal/discretize"
	"github.com/phytogl/phytogl/internal/document"
	"github.com/phytogl/phytogl/internal/export"
	"github.com/phytogl/phytogl/internal/measure"
	"github.com/phytogl/phytogl/internal/projection"
	"github.com/phytogl/phytogl/internal/scene"
	"github.com/phytogl/phytogl/internal/store"
	"github.com/phytogl/phytogl/internal/typeid"
)

var ErrInvalidDocument = errors.New("invalid scene document")

// Report kinds stored alongside scenes.
const (
	KindSurface    = "surface"
	KindBBox       = "bbox"
	KindProjection = "projection"
)

// SceneStore persists scene documents and their reports.
type SceneStore interface {
	CreateScene(ctx context.Context, doc *document.Document) (*store.Scene, error)
	GetScene(ctx context.Context, id string) (*store.Scene, error)
	ListScenes(ctx context.Context) ([]store.Scene, error)
	DeleteScene(ctx context.Context, id string) error
	SaveReport(ctx context.Context, sceneID, kind string, body any) (*store.Report, error)
	ListReports(ctx context.Context, sceneID string) ([]store.Report, error)
}

// Broadcaster receives the progress of streamed projection jobs.
type Broadcaster interface {
	Progress(sceneID, jobID string) func(batch.Event)
	Done(sceneID string, report any)
	Fail(sceneID string, err error)
}

type Settings struct {
	ImageWidth  int
	ImageHeight int
	Workers     int
	Discretize  []discretize.Option
}

type Service struct {
	store    SceneStore
	textures projection.TextureSource
	settings Settings
}

func NewService(st SceneStore, textures projection.TextureSource, settings Settings) *Service {
	return &Service{store: st, textures: textures, settings: settings}
}

// JobReport is a projection report tagged with the job that produced it.
type JobReport struct {
	JobID string `json:"jobId"`
	*batch.Report
}

func (s *Service) Create(ctx context.Context, data []byte) (*store.Scene, error) {
	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if _, err := document.Build(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return s.store.CreateScene(ctx, doc)
}

func (s *Service) Get(ctx context.Context, id string) (*store.Scene, error) {
	return s.store.GetScene(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]store.Scene, error) {
	scenes, err := s.store.ListScenes(ctx)
	if err != nil {
		return nil, err
	}
	if scenes == nil {
		scenes = []store.Scene{}
	}
	return scenes, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteScene(ctx, id)
}

func (s *Service) Reports(ctx context.Context, id string) ([]store.Report, error) {
	if _, err := s.store.GetScene(ctx, id); err != nil {
		return nil, err
	}
	reports, err := s.store.ListReports(ctx, id)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []store.Report{}
	}
	return reports, nil
}

func (s *Service) load(ctx context.Context, id string) (*scene.Scene, error) {
	stored, err := s.store.GetScene(ctx, id)
	if err != nil {
		return nil, err
	}
	sc, err := document.Build(stored.Document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return sc, nil
}

func (s *Service) save(ctx context.Context, id, kind string, body any) {
	if _, err := s.store.SaveReport(ctx, id, kind, body); err != nil {
		slog.Error("save report failed", "error", err, "scene", id, "kind", kind)
	}
}

func (s *Service) Surface(ctx context.Context, id string) (*measure.SurfaceReport, error) {
	sc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	rep := measure.Surface(sc, s.settings.Discretize...)
	if !rep.Complete {
		slog.Warn("surface computation incomplete", "scene", id)
	}
	s.save(ctx, id, KindSurface, rep)
	return rep, nil
}

func (s *Service) BoundingBox(ctx context.Context, id string) (*measure.BBoxReport, error) {
	sc, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	rep := measure.BoundingBox(sc, s.settings.Discretize...)
	if !rep.Complete {
		slog.Warn("bounding box computation incomplete", "scene", id)
	}
	s.save(ctx, id, KindBBox, rep)
	return rep, nil
}

// Project renders the scene with a camera fitted on its bounding box.
func (s *Service) Project(ctx context.Context, id string, progress func(batch.Event)) (*projection.Result, *JobReport, error) {
	return s.project(ctx, id, typeid.NewJobID(), progress)
}

func (s *Service) project(ctx context.Context, id, jobID string, progress func(batch.Event)) (*projection.Result, *JobReport, error) {
	sc, err := s.load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	eng := batch.FitEngine(sc, s.settings.ImageWidth, s.settings.ImageHeight, s.textures, s.settings.Discretize...)
	res, rep, err := batch.Project(ctx, sc, eng, batch.Options{
		Workers:    s.settings.Workers,
		Discretize: s.settings.Discretize,
		Progress:   progress,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("project scene %s: %w", id, err)
	}
	job := &JobReport{JobID: jobID, Report: rep}
	s.save(ctx, id, KindProjection, job)
	return res, job, nil
}

// StreamProjection runs a projection job, publishing its progress and
// outcome through b.
func (s *Service) StreamProjection(ctx context.Context, id string, b Broadcaster) {
	jobID := typeid.NewJobID()
	_, rep, err := s.project(ctx, id, jobID, b.Progress(id, jobID))
	if err != nil {
		slog.Warn("projection job failed", "error", err, "scene", id, "job", jobID)
		b.Fail(id, err)
		return
	}
	b.Done(id, rep)
}

// CtrlPoints writes the control polygons of the scene as SVG.
func (s *Service) CtrlPoints(ctx context.Context, id string, view ctrlpoint.View, w io.Writer) error {
	sc, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	return export.WriteSVG(w, sc, view, s.settings.Discretize...)
}

// Package store keeps scene documents and the reports computed from them
// in PostgreSQL.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phytogl/phytogl/internal/document"
	"github.com/phytogl/phytogl/internal/typeid"
)

var ErrNotFound = errors.New("scene not found")

const schema = `
CREATE TABLE IF NOT EXISTS scenes (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS reports (
	id         TEXT PRIMARY KEY,
	scene_id   TEXT NOT NULL REFERENCES scenes(id) ON DELETE CASCADE,
	kind       TEXT NOT NULL,
	body       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS reports_scene_idx ON reports (scene_id, created_at DESC);
`

type Store struct {
	pool *pgxpool.Pool
}

// NewPool connects to the database at url and checks the connection.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate creates the tables when they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

type Scene struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Document  *document.Document `json:"document,omitempty"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
}

type Report struct {
	ID        string          `json:"id"`
	SceneID   string          `json:"sceneId"`
	Kind      string          `json:"kind"`
	Body      json.RawMessage `json:"body"`
	CreatedAt string          `json:"createdAt"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// CreateScene stores doc under a new scene id, which is also written to
// the document's scene metadata.
func (s *Store) CreateScene(ctx context.Context, doc *document.Document) (*Scene, error) {
	doc.Scene.ID = typeid.NewSceneID()
	if doc.Scene.Name == "" {
		doc.Scene.Name = "Untitled"
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	var created, updated time.Time
	err = s.pool.QueryRow(ctx,
		`INSERT INTO scenes (id, name, document) VALUES ($1, $2, $3) RETURNING created_at, updated_at`,
		doc.Scene.ID, doc.Scene.Name, docJSON,
	).Scan(&created, &updated)
	if err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}
	return &Scene{
		ID:        doc.Scene.ID,
		Name:      doc.Scene.Name,
		Document:  doc,
		CreatedAt: formatTime(created),
		UpdatedAt: formatTime(updated),
	}, nil
}

func (s *Store) GetScene(ctx context.Context, id string) (*Scene, error) {
	var (
		sc               Scene
		raw              []byte
		created, updated time.Time
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, document, created_at, updated_at FROM scenes WHERE id = $1`, id,
	).Scan(&sc.ID, &sc.Name, &raw, &created, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get scene: %w", err)
	}
	doc, err := document.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("decode stored scene %s: %w", id, err)
	}
	sc.Document = doc
	sc.CreatedAt, sc.UpdatedAt = formatTime(created), formatTime(updated)
	return &sc, nil
}

// ListScenes returns every scene without its document, newest first.
func (s *Store) ListScenes(ctx context.Context) ([]Scene, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, created_at, updated_at FROM scenes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	scenes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Scene, error) {
		var (
			sc               Scene
			created, updated time.Time
		)
		err := row.Scan(&sc.ID, &sc.Name, &created, &updated)
		sc.CreatedAt, sc.UpdatedAt = formatTime(created), formatTime(updated)
		return sc, err
	})
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	return scenes, nil
}

func (s *Store) DeleteScene(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM scenes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete scene: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveReport stores body as a report of the given kind on scene sceneID.
func (s *Store) SaveReport(ctx context.Context, sceneID, kind string, body any) (*Report, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	rep := &Report{ID: typeid.NewReportID(), SceneID: sceneID, Kind: kind, Body: data}
	var created time.Time
	err = s.pool.QueryRow(ctx,
		`INSERT INTO reports (id, scene_id, kind, body) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		rep.ID, sceneID, kind, data,
	).Scan(&created)
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	rep.CreatedAt = formatTime(created)
	return rep, nil
}

// ListReports returns the reports of a scene, newest first.
func (s *Store) ListReports(ctx context.Context, sceneID string) ([]Report, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, scene_id, kind, body, created_at FROM reports WHERE scene_id = $1 ORDER BY created_at DESC`, sceneID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	reports, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Report, error) {
		var (
			r       Report
			created time.Time
		)
		err := row.Scan(&r.ID, &r.SceneID, &r.Kind, &r.Body, &created)
		r.CreatedAt = formatTime(created)
		return r, err
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phytogl/phytogl/internal/document"
)

// openTestStore connects to PGL_TEST_DATABASE_URL, skipping the test when
// it is not set.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("PGL_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PGL_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	s := New(pool)
	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestSceneLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateScene(ctx, document.NewSampleDocument(""))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := s.GetScene(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.Document.Scene.ID)
	assert.Len(t, got.Document.Shapes, 6)

	list, err := s.ListScenes(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	rep, err := s.SaveReport(ctx, created.ID, "surface", map[string]float64{"surface": 1.5})
	require.NoError(t, err)
	reports, err := s.ListReports(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, rep.ID, reports[0].ID)
	assert.JSONEq(t, `{"surface": 1.5}`, string(reports[0].Body))

	require.NoError(t, s.DeleteScene(ctx, created.ID))
	_, err = s.GetScene(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteScene(ctx, created.ID), ErrNotFound)
}

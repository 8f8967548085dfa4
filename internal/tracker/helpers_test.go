package tracker

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/researchhub/internal/ids"
	"github.com/roach88/researchhub/internal/metrics"
	"github.com/roach88/researchhub/internal/model"
	"github.com/roach88/researchhub/internal/store"
	"github.com/roach88/researchhub/internal/testutil"
)

type harness struct {
	tracker *Store
	slot    *store.Memory
	clock   *testutil.FixedClock
	metrics *metrics.Recorder
}

// newHarness builds a tracker over a memory slot with sequential ids and a
// fixed clock.
func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		slot:    store.NewMemory(),
		clock:   testutil.NewFixedClock(testutil.DefaultTime),
		metrics: metrics.New(),
	}
	h.tracker = New(h.slot, ids.NewSequenceGenerator(),
		WithClock(h.clock.Now),
		WithMetrics(h.metrics),
	)
	return h
}

// newSQLiteTracker builds a tracker over a real database file.
func newSQLiteTracker(t *testing.T, driver string) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "researchhub.db")
	slot, err := store.Open(path, driver)
	require.NoError(t, err)
	t.Cleanup(func() { slot.Close() })
	return New(slot, ids.UUIDv7Generator{}), path
}

func (h *harness) project(t *testing.T, title string) model.Project {
	t.Helper()
	p, err := h.tracker.CreateProject(context.Background(), model.Project{Title: title})
	require.NoError(t, err)
	return p
}

func (h *harness) task(t *testing.T, projectID, title string, status model.Status, due string) model.Task {
	t.Helper()
	task, err := h.tracker.CreateTask(context.Background(), model.Task{
		ProjectID: projectID, Title: title, Status: status, Due: due,
	})
	require.NoError(t, err)
	return task
}

func (h *harness) load(t *testing.T) model.Document {
	t.Helper()
	doc, err := h.tracker.Load(context.Background())
	require.NoError(t, err)
	return doc
}

// persisted returns the raw slot payload.
func (h *harness) persisted(t *testing.T) string {
	t.Helper()
	raw, ok, err := h.slot.Get(context.Background(), DocumentKey)
	require.NoError(t, err)
	require.True(t, ok, "document key must exist")
	return string(raw)
}
